// Package validation holds the input predicates for the analysis form.
package validation

import (
	"regexp"
	"time"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// ValidTicker reports whether ticker is one to five uppercase Latin letters.
func ValidTicker(ticker string) bool {
	return tickerPattern.MatchString(ticker)
}

// ValidDate reports whether s is a real calendar date written as YYYY-MM-DD.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ParseDate parses s as YYYY-MM-DD in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
