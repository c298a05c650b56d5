package report

import (
	"sort"
	"strings"

	"github.com/ristorapos/backoffice-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Options control the presentation pass over the aggregates.
type Options struct {
	Sort       enums.ReportSort
	NameFilter string
}

// Summary carries the whole-report totals shown above the product table.
// DiscountTotal is the absolute magnitude of every discount line in scope,
// independent of how redistribution spread it across products.
type Summary struct {
	GrossTotal    decimal.Decimal `json:"gross_total"`
	NetTotal      decimal.Decimal `json:"net_total"`
	GiftCount     int             `json:"gift_count"`
	WasteCount    int             `json:"waste_count"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
}

// Report is the finished sales report for one date range.
type Report struct {
	Rows    []ProductAggregate `json:"rows"`
	Summary Summary            `json:"summary"`
}

// ExportRow is the flat projection handed to the spreadsheet writer.
type ExportRow struct {
	ProductName    string          `json:"product_name"`
	SoldCount      int             `json:"sold_count"`
	VATRatePercent decimal.Decimal `json:"vat_rate_percent"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	NetTotal       decimal.Decimal `json:"net_total"`
	GiftCount      int             `json:"gift_count"`
	WasteCount     int             `json:"waste_count"`
}

// format filters, orders, and totals the aggregates for presentation.
func format(aggs map[string]*ProductAggregate, discountTotal decimal.Decimal, opts Options) Report {
	filter := strings.ToLower(strings.TrimSpace(opts.NameFilter))

	rows := make([]ProductAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if filter != "" && !strings.Contains(strings.ToLower(agg.ProductName), filter) {
			continue
		}
		rows = append(rows, *agg)
	}

	switch opts.Sort {
	case enums.ReportSortNameAsc:
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].ProductName < rows[j].ProductName
		})
	default:
		// count desc, name breaks ties so the order is total
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].SoldCount != rows[j].SoldCount {
				return rows[i].SoldCount > rows[j].SoldCount
			}
			return rows[i].ProductName < rows[j].ProductName
		})
	}

	summary := Summary{
		GrossTotal:    decimal.Zero,
		NetTotal:      decimal.Zero,
		DiscountTotal: discountTotal.Abs(),
	}
	for _, row := range rows {
		summary.GrossTotal = summary.GrossTotal.Add(row.GrossTotal)
		summary.NetTotal = summary.NetTotal.Add(row.NetTotal)
		summary.GiftCount += row.GiftCount
		summary.WasteCount += row.WasteCount
	}

	return Report{Rows: rows, Summary: summary}
}

// Export flattens the ordered rows into the tabular record set consumed by
// the spreadsheet writer.
func Export(r Report) []ExportRow {
	rows := make([]ExportRow, 0, len(r.Rows))
	for _, agg := range r.Rows {
		rows = append(rows, ExportRow{
			ProductName:    agg.ProductName,
			SoldCount:      agg.SoldCount,
			VATRatePercent: agg.VATRatePercent,
			GrossTotal:     agg.GrossTotal,
			NetTotal:       agg.NetTotal,
			GiftCount:      agg.GiftCount,
			WasteCount:     agg.WasteCount,
		})
	}
	return rows
}
