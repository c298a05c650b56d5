package report

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ristorapos/backoffice-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func TestRedistributeConservesSessionTotal(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		s := session{key: fmt.Sprintf("pay-%d", trial)}
		gross := decimal.Zero
		lineCount := 1 + rng.Intn(6)
		for i := 0; i < lineCount; i++ {
			line := Line{
				ProductName:    fmt.Sprintf("item-%d", i),
				UnitPrice:      decimal.NewFromFloat(float64(rng.Intn(9000)+1) / 100),
				Quantity:       1 + rng.Intn(4),
				VATRatePercent: decPtr("18"),
				Status:         enums.FulfillmentStatusPaid,
			}
			if rng.Intn(3) == 0 {
				line.ModifierAmounts = []decimal.Decimal{decimal.NewFromFloat(float64(rng.Intn(500)) / 100)}
			}
			s.productLines = append(s.productLines, line)
			gross = gross.Add(line.baseUnitAmount().Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		// discount between 0 and ~120% of gross, so negative factors occur
		discount := gross.Mul(decimal.NewFromFloat(-1.2 * rng.Float64())).Round(2)
		s.discountLines = []Line{{IsDiscount: true, UnitPrice: discount}}

		adjusted := redistribute(s)
		sum := decimal.Zero
		for _, line := range adjusted {
			sum = sum.Add(line.UnitAmount.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		want := gross.Add(discount)
		if sum.Sub(want).Abs().GreaterThan(tolerance) {
			t.Fatalf("trial %d: conservation broken: sum=%s want=%s gross=%s discount=%s",
				trial, sum, want, gross, discount)
		}
	}
}

func TestRedistributeIdentityWhenNoDiscount(t *testing.T) {
	t.Parallel()
	s := session{
		key: "pay-1",
		productLines: []Line{
			{
				ProductName:     "Latte",
				UnitPrice:       dec("50"),
				Quantity:        2,
				ModifierAmounts: []decimal.Decimal{dec("5")},
				VATRatePercent:  decPtr("18"),
				Status:          enums.FulfillmentStatusPaid,
			},
		},
	}

	adjusted := redistribute(s)
	if len(adjusted) != 1 {
		t.Fatalf("expected 1 line, got %d", len(adjusted))
	}
	if !adjusted[0].UnitAmount.Equal(dec("55")) {
		t.Fatalf("expected folded unit amount 55, got %s", adjusted[0].UnitAmount)
	}
	if adjusted[0].Quantity != 2 {
		t.Fatalf("expected quantity preserved, got %d", adjusted[0].Quantity)
	}
}

func TestRedistributeNegativeGrossPassesThrough(t *testing.T) {
	t.Parallel()
	s := session{
		key: "pay-1",
		productLines: []Line{
			{ProductName: "Correction", UnitPrice: dec("-10"), Quantity: 1, VATRatePercent: decPtr("18"), Status: enums.FulfillmentStatusPaid},
		},
		discountLines: []Line{
			{IsDiscount: true, UnitPrice: dec("-5")},
		},
	}

	adjusted := redistribute(s)
	if !adjusted[0].UnitAmount.Equal(dec("-10")) {
		t.Fatalf("non-positive gross must not be rescaled, got %s", adjusted[0].UnitAmount)
	}
}

func TestClassifyBucketExclusivity(t *testing.T) {
	t.Parallel()
	statuses := []enums.FulfillmentStatus{
		enums.FulfillmentStatusPaid,
		enums.FulfillmentStatusSent,
		enums.FulfillmentStatusGift,
		enums.FulfillmentStatusWaste,
		enums.FulfillmentStatusCancelled,
		enums.FulfillmentStatus("mystery"),
	}

	for _, status := range statuses {
		line := AdjustedLine{
			ProductName:    "Latte",
			UnitAmount:     dec("45"),
			Quantity:       2,
			VATRatePercent: dec("18"),
			Status:         status,
		}
		classified, ok := classify(line)
		switch status {
		case enums.FulfillmentStatusPaid, enums.FulfillmentStatusSent:
			if !ok || classified.bucket != bucketSold {
				t.Fatalf("status %s: expected sold bucket", status)
			}
			if classified.grossAmount.IsZero() {
				t.Fatalf("status %s: sold line must carry money", status)
			}
		case enums.FulfillmentStatusGift:
			if !ok || classified.bucket != bucketGift {
				t.Fatalf("status %s: expected gift bucket", status)
			}
			if !classified.grossAmount.IsZero() {
				t.Fatalf("status %s: gift line must not carry money", status)
			}
		case enums.FulfillmentStatusWaste:
			if !ok || classified.bucket != bucketWaste {
				t.Fatalf("status %s: expected waste bucket", status)
			}
		default:
			if ok {
				t.Fatalf("status %s: expected line to be dropped", status)
			}
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	t.Parallel()
	got := Normalize(Line{ProductName: "Tea"})
	if got.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", got.Quantity)
	}
	if !got.VATRatePercent.Equal(DefaultVATRatePercent) {
		t.Fatalf("expected fallback vat rate, got %s", got.VATRatePercent)
	}

	discount := Normalize(Line{IsDiscount: true, UnitPrice: dec("15")})
	if !discount.UnitPrice.Equal(dec("-15")) {
		t.Fatalf("expected discount sign normalized to -15, got %s", discount.UnitPrice)
	}
}

func TestNormalizeKeepsDeclaredZeroVATRate(t *testing.T) {
	t.Parallel()
	got := Normalize(Line{ProductName: "Water", VATRatePercent: decPtr("0")})
	if !got.VATRatePercent.IsZero() {
		t.Fatalf("expected declared zero rate to survive, got %s", got.VATRatePercent)
	}

	report := Build([]Line{{
		PaymentID:      "pay-1",
		ProductName:    "Water",
		UnitPrice:      dec("30"),
		Quantity:       1,
		VATRatePercent: decPtr("0"),
		Status:         enums.FulfillmentStatusPaid,
	}}, Options{})
	row := report.Rows[0]
	if !row.NetTotal.Equal(row.GrossTotal) {
		t.Fatalf("zero-rated line must have net == gross, got net=%s gross=%s", row.NetTotal, row.GrossTotal)
	}
}

func TestGroupSessionsSplitsDiscountsAndKeysDeterministically(t *testing.T) {
	t.Parallel()
	lines := []Line{
		{PaymentID: "pay-1", ProductName: "Latte", UnitPrice: dec("50"), Quantity: 1},
		{PaymentID: "pay-1", IsDiscount: true, UnitPrice: dec("-5")},
		{TableID: "4", ProductName: "Tea", UnitPrice: dec("20"), Quantity: 1},
	}

	sessions := groupSessions(lines)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].key != "pay-1" || sessions[1].key != "table_4" {
		t.Fatalf("unexpected session keys: %q, %q", sessions[0].key, sessions[1].key)
	}
	if len(sessions[0].productLines) != 1 || len(sessions[0].discountLines) != 1 {
		t.Fatalf("discount split wrong: %+v", sessions[0])
	}
	if len(groupSessions(nil)) != 0 {
		t.Fatal("empty input must yield no sessions")
	}
}
