package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a menu item as maintained in the back office. Price is
// tax-inclusive; VATRatePercent is the declared rate used to decompose it.
type Product struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID     uuid.UUID        `gorm:"column:business_id;type:uuid;not null;index"`
	Name           string           `gorm:"column:name;not null"`
	Category       *string          `gorm:"column:category"`
	Price          decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	VATRatePercent *decimal.Decimal `gorm:"column:vat_rate_percent;type:numeric(5,2)"`
	IsActive       bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt   `gorm:"column:deleted_at;index"`
}
