package orderlines

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ristorapos/backoffice-backend/pkg/db/models"
	"github.com/ristorapos/backoffice-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderLinesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.OrderLine{}))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})

	return db
}

func seedLine(t *testing.T, db *gorm.DB, businessID uuid.UUID, createdAt time.Time) models.OrderLine {
	t.Helper()
	line := models.OrderLine{
		ID:          uuid.New(),
		BusinessID:  businessID,
		TableID:     "3",
		ProductName: "Latte",
		UnitPrice:   decimal.NewFromInt(50),
		Quantity:    1,
		Status:      enums.FulfillmentStatusPaid,
	}
	require.NoError(t, db.Create(&line).Error)
	require.NoError(t, db.Model(&line).Update("created_at", createdAt).Error)
	return line
}

func TestListForRangeFiltersByBusinessAndDay(t *testing.T) {
	db := setupOrderLinesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	business := uuid.New()
	other := uuid.New()
	day := time.Date(2026, 3, 10, 13, 30, 0, 0, time.UTC)

	inRange := seedLine(t, db, business, day)
	seedLine(t, db, business, day.AddDate(0, 0, -2))
	seedLine(t, db, other, day)

	got, err := repo.ListForRange(ctx, business, day, day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inRange.ID, got[0].ID)
}

func TestListForRangeIsInclusiveOfBothEndpoints(t *testing.T) {
	db := setupOrderLinesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	business := uuid.New()
	start := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)
	end := time.Date(2026, 3, 12, 23, 59, 59, 0, time.UTC)

	seedLine(t, db, business, start)
	seedLine(t, db, business, end)
	seedLine(t, db, business, end.Add(2*time.Second)) // next day

	got, err := repo.ListForRange(ctx, business, start, time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListForRangeSkipsSoftDeleted(t *testing.T) {
	db := setupOrderLinesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	business := uuid.New()
	day := time.Date(2026, 3, 10, 13, 30, 0, 0, time.UTC)
	line := seedLine(t, db, business, day)
	require.NoError(t, db.Delete(&models.OrderLine{}, "id = ?", line.ID).Error)

	got, err := repo.ListForRange(ctx, business, day, day)
	require.NoError(t, err)
	assert.Empty(t, got)
}
