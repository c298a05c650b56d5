// Package report implements the session-based discount-attribution and
// sales-aggregation engine behind the back-office sales screens. It is a
// pure pipeline: group lines into checkout sessions, spread each session's
// discount proportionally over its product lines, split tax-inclusive
// amounts into net and VAT, fold into per-product totals, then order and
// filter for presentation. It holds no state and performs no I/O; callers
// hand it a snapshot of order lines and get a finished report back.
package report

import "github.com/shopspring/decimal"

// Build runs the full pipeline over raw lines. Input is normalized first,
// so callers may pass records straight from the store. Running Build twice
// on the same input yields an identical Report.
func Build(lines []Line, opts Options) Report {
	normalized := NormalizeAll(lines)
	sessions := groupSessions(normalized)

	discountTotal := decimal.Zero
	classified := make([]classifiedLine, 0, len(normalized))
	for _, s := range sessions {
		discountTotal = discountTotal.Add(s.totalDiscount())
		for _, adjusted := range redistribute(s) {
			if line, ok := classify(adjusted); ok {
				classified = append(classified, line)
			}
		}
	}

	return format(aggregate(classified), discountTotal, opts)
}
