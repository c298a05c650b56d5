package validators

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ristorapos/backoffice-backend/pkg/enums"
	pkgerrors "github.com/ristorapos/backoffice-backend/pkg/errors"
)

func TestParseQueryDate(t *testing.T) {
	req := httptest.NewRequest("GET", "/?start=2026-03-15", nil)
	got, err := ParseQueryDate(req, "start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestParseQueryDateMissing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, err := ParseQueryDate(req, "start")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryDateMalformed(t *testing.T) {
	req := httptest.NewRequest("GET", "/?start=15-03-2026", nil)
	if _, err := ParseQueryDate(req, "start"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestParseQuerySortDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	sort, err := ParseQuerySort(req, "sort")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sort != enums.ReportSortCountDesc {
		t.Fatalf("expected default count_desc, got %s", sort)
	}
}

func TestParseQuerySortRejectsUnknown(t *testing.T) {
	req := httptest.NewRequest("GET", "/?sort=price_desc", nil)
	if _, err := ParseQuerySort(req, "sort"); err == nil {
		t.Fatal("expected error for unknown sort")
	}
}

func TestParseQueryStringTrimsAndCaps(t *testing.T) {
	req := httptest.NewRequest("GET", "/?q=%20%20latte%20%20", nil)
	if got := ParseQueryString(req, "q", 3); got != "lat" {
		t.Fatalf("got %q want %q", got, "lat")
	}
}
