package enums

import "fmt"

// ReportSort selects the ordering of a formatted sales report.
type ReportSort string

const (
	ReportSortCountDesc ReportSort = "count_desc"
	ReportSortNameAsc   ReportSort = "name_asc"
)

var validReportSorts = []ReportSort{
	ReportSortCountDesc,
	ReportSortNameAsc,
}

// String implements fmt.Stringer.
func (r ReportSort) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReportSort.
func (r ReportSort) IsValid() bool {
	for _, candidate := range validReportSorts {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReportSort converts raw input into a ReportSort, defaulting to
// count_desc for empty input.
func ParseReportSort(value string) (ReportSort, error) {
	if value == "" {
		return ReportSortCountDesc, nil
	}
	for _, candidate := range validReportSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report sort %q", value)
}
