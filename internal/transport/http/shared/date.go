package shared

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParsePeriod reads month and year query parameters, defaulting to the
// current period when both are absent.
func ParsePeriod(r *http.Request, now time.Time) (int, int, error) {
	rawMonth := r.URL.Query().Get("month")
	rawYear := r.URL.Query().Get("year")
	if rawMonth == "" && rawYear == "" {
		return int(now.Month()), now.Year(), nil
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return 0, 0, fmt.Errorf("month must be a number")
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return 0, 0, fmt.Errorf("year must be a number")
	}
	return month, year, nil
}
