package validators

import (
	"net/http"
	"strings"
	"time"

	"github.com/ristorapos/backoffice-backend/pkg/enums"
	pkgerrors "github.com/ristorapos/backoffice-backend/pkg/errors"
)

const queryDateLayout = "2006-01-02"

// ParseQueryDate reads a required YYYY-MM-DD parameter as a UTC midnight time.
func ParseQueryDate(r *http.Request, key string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": key})
	}
	value, err := time.ParseInLocation(queryDateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a YYYY-MM-DD date").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseQueryString reads an optional free-text parameter, trimming and
// capping its length.
func ParseQueryString(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.URL.Query().Get(key), maxLen)
}

// ParseQuerySort reads the optional sort parameter, defaulting when absent.
func ParseQuerySort(r *http.Request, key string) (enums.ReportSort, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	sort, err := enums.ParseReportSort(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid sort value").WithDetails(map[string]any{"field": key})
	}
	return sort, nil
}
