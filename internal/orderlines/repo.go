// Package orderlines reads the raw order-line records that feed reporting.
package orderlines

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ristorapos/backoffice-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles order-line reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to order-line queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForRange returns every order line for the business whose created_at
// falls inside the inclusive calendar-day range. Soft-deleted rows are
// excluded by the gorm soft-delete scope. The result is a snapshot: the
// report pipeline does no further filtering.
func (r *Repository) ListForRange(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]models.OrderLine, error) {
	from := dayStart(start)
	until := dayStart(end).Add(24 * time.Hour)

	var lines []models.OrderLine
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Where("created_at >= ? AND created_at < ?", from, until).
		Order("created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func dayStart(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
