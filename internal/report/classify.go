package report

import (
	"github.com/ristorapos/backoffice-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

type bucket int

const (
	bucketSold bucket = iota
	bucketGift
	bucketWaste
)

// classifiedLine carries the per-line aggregation inputs. Monetary amounts
// are only present for sold lines; gift and waste contribute unit counts.
type classifiedLine struct {
	productName    string
	bucket         bucket
	quantity       int
	grossAmount    decimal.Decimal
	netAmount      decimal.Decimal
	vatRatePercent decimal.Decimal
}

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// classify assigns the line to a fulfillment bucket and, for sold lines,
// splits the tax-inclusive amount into gross and net. Lines in a status
// outside the three buckets are dropped: the second return is false and the
// line contributes nothing downstream.
func classify(line AdjustedLine) (classifiedLine, bool) {
	out := classifiedLine{
		productName:    line.ProductName,
		quantity:       line.Quantity,
		vatRatePercent: line.VATRatePercent,
	}

	switch line.Status {
	case enums.FulfillmentStatusGift:
		out.bucket = bucketGift
		return out, true
	case enums.FulfillmentStatusWaste:
		out.bucket = bucketWaste
		return out, true
	case enums.FulfillmentStatusPaid, enums.FulfillmentStatusSent:
		out.bucket = bucketSold
		out.grossAmount = line.UnitAmount.Mul(decimal.NewFromInt(int64(line.Quantity)))
		out.netAmount = out.grossAmount.Div(one.Add(line.VATRatePercent.Div(hundred)))
		return out, true
	default:
		return classifiedLine{}, false
	}
}
