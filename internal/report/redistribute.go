package report

import (
	"github.com/ristorapos/backoffice-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// AdjustedLine is a product line whose per-unit amount has absorbed the
// session discount and any modifiers. Quantity multiplication happens at
// classification, not here.
type AdjustedLine struct {
	ProductName    string
	UnitAmount     decimal.Decimal
	Quantity       int
	VATRatePercent decimal.Decimal
	Status         enums.FulfillmentStatus
}

// totalDiscount sums the session's discount lines. With normalized input
// this is <= 0 for a real discount.
func (s session) totalDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.discountLines {
		total = total.Add(line.UnitPrice)
	}
	return total
}

// grossTotal sums unit-with-modifiers times quantity over the product
// lines, regardless of fulfillment status. Gift and waste lines keep their
// share of the denominator so a session discount spreads over everything
// that left the kitchen.
func (s session) grossTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.productLines {
		total = total.Add(line.baseUnitAmount().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// redistribute rescales every product line in the session so the discount
// is absorbed proportionally. When there is nothing to redistribute, or the
// gross is non-positive, lines pass through at factor 1. The factor is not
// clamped: a discount larger than gross surfaces as negative amounts rather
// than being hidden.
func redistribute(s session) []AdjustedLine {
	discount := s.totalDiscount()
	gross := s.grossTotal()

	factor := decimal.NewFromInt(1)
	if !discount.IsZero() && gross.IsPositive() {
		factor = gross.Add(discount).Div(gross)
	}

	adjusted := make([]AdjustedLine, 0, len(s.productLines))
	for _, line := range s.productLines {
		adjusted = append(adjusted, AdjustedLine{
			ProductName:    line.ProductName,
			UnitAmount:     line.baseUnitAmount().Mul(factor),
			Quantity:       line.Quantity,
			VATRatePercent: *line.VATRatePercent,
			Status:         line.Status,
		})
	}
	return adjusted
}
