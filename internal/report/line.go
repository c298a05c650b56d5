package report

import (
	"github.com/ristorapos/backoffice-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// DefaultVATRatePercent is applied when neither the line nor the product
// catalog declares a rate.
var DefaultVATRatePercent = decimal.NewFromInt(18)

// Line is one normalized order line fed into the report pipeline. Discount
// lines carry IsDiscount=true and a non-positive UnitPrice; normalization
// enforces both conventions so the pipeline never re-checks them.
type Line struct {
	PaymentID       string
	TableID         string
	ProductName     string
	IsDiscount      bool
	UnitPrice       decimal.Decimal
	Quantity        int
	ModifierAmounts []decimal.Decimal
	// VATRatePercent is nil when no rate was declared anywhere; a declared
	// zero rate is a real rate and must not fall back to the default.
	VATRatePercent *decimal.Decimal
	Status         enums.FulfillmentStatus
}

// Normalize applies the ingestion defaults: quantity floors to 1, an absent
// VAT rate falls back to DefaultVATRatePercent, and discount amounts are
// coerced to the internal signed convention (<= 0 for a real discount).
// Product lines keep their price untouched.
func Normalize(line Line) Line {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	if line.VATRatePercent == nil {
		rate := DefaultVATRatePercent
		line.VATRatePercent = &rate
	}
	if line.IsDiscount && line.UnitPrice.IsPositive() {
		line.UnitPrice = line.UnitPrice.Neg()
	}
	return line
}

// NormalizeAll maps Normalize over a batch.
func NormalizeAll(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, line := range lines {
		out[i] = Normalize(line)
	}
	return out
}

// baseUnitAmount is the tax-inclusive per-unit amount with modifiers folded
// in. It is the redistribution input for product lines.
func (l Line) baseUnitAmount() decimal.Decimal {
	amount := l.UnitPrice
	for _, modifier := range l.ModifierAmounts {
		amount = amount.Add(modifier)
	}
	return amount
}
