package report

import "github.com/shopspring/decimal"

// ProductAggregate accumulates everything reported for one printed product
// name. Distinct products sharing a name merge into one row; the VAT rate
// is the first one seen for that name and is not re-validated against later
// lines.
type ProductAggregate struct {
	ProductName    string          `json:"product_name"`
	SoldCount      int             `json:"sold_count"`
	GiftCount      int             `json:"gift_count"`
	WasteCount     int             `json:"waste_count"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	NetTotal       decimal.Decimal `json:"net_total"`
	VATRatePercent decimal.Decimal `json:"vat_rate_percent"`
}

// aggregate folds classified lines into per-product totals. Addition only,
// so input order never changes the result.
func aggregate(lines []classifiedLine) map[string]*ProductAggregate {
	aggs := make(map[string]*ProductAggregate)

	for _, line := range lines {
		agg, ok := aggs[line.productName]
		if !ok {
			agg = &ProductAggregate{
				ProductName:    line.productName,
				GrossTotal:     decimal.Zero,
				NetTotal:       decimal.Zero,
				VATRatePercent: line.vatRatePercent,
			}
			aggs[line.productName] = agg
		}

		switch line.bucket {
		case bucketSold:
			agg.SoldCount += line.quantity
			agg.GrossTotal = agg.GrossTotal.Add(line.grossAmount)
			agg.NetTotal = agg.NetTotal.Add(line.netAmount)
		case bucketGift:
			agg.GiftCount += line.quantity
		case bucketWaste:
			agg.WasteCount += line.quantity
		}
	}

	return aggs
}
