// pkg/dataset/coerce.go
package dataset

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when coercing a cell to a calendar date
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// IsBlank reports whether a cell is null or contains only whitespace
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParseNumber attempts to coerce a cell to a number.
// Blank and unparseable cells report false rather than an error; the caller
// decides whether that means "null" or "violation".
func ParseNumber(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInt attempts to coerce a cell to an integer
func ParseInt(s string) (int64, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, false
	}
	i, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// ParseDate attempts to coerce a cell to a calendar date, trying each of the
// accepted layouts in turn
func ParseDate(s string) (time.Time, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatNumber renders a coerced number back to its minimal textual form,
// so integral values round-trip without a trailing ".0"
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
