package vat

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ristorapos/backoffice-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns the catalog-backed rate reader.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// DeclaredRate returns the rate of the first active product carrying the
// name. Products sharing a printed name share a report row, so they share a
// rate here too.
func (r *repository) DeclaredRate(ctx context.Context, businessID uuid.UUID, productName string) (*decimal.Decimal, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND name = ? AND is_active = ?", businessID, productName, true).
		Order("created_at ASC").
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product.VATRatePercent, nil
}
