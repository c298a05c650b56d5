package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ristorapos/backoffice-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderLine is one product line or one applied-discount line inside a
// checkout. Discount lines carry IsDiscount=true and a negative UnitPrice;
// they are never purchasable products.
type OrderLine struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID      uuid.UUID               `gorm:"column:business_id;type:uuid;not null;index"`
	PaymentID       *string                 `gorm:"column:payment_id;index"`
	TableID         string                  `gorm:"column:table_id;not null"`
	ProductID       *uuid.UUID              `gorm:"column:product_id;type:uuid"`
	ProductName     string                  `gorm:"column:product_name;not null"`
	IsDiscount      bool                    `gorm:"column:is_discount;not null;default:false"`
	UnitPrice       decimal.Decimal         `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity        int                     `gorm:"column:quantity;not null;default:1"`
	ModifierAmounts []decimal.Decimal       `gorm:"column:modifier_amounts;type:jsonb;serializer:json"`
	VATRatePercent  *decimal.Decimal        `gorm:"column:vat_rate_percent;type:numeric(5,2)"`
	Status          enums.FulfillmentStatus `gorm:"column:status;not null;default:'sent'"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt          `gorm:"column:deleted_at;index"`
}
