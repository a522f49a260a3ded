// pkg/schema/checks.go
package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/marketops/customer-quality/pkg/dataset"
)

// Rule names for the structural rules evaluated on every column
const (
	RuleColumnPresent = "column_present"
	RuleNotNullable   = "not_nullable"
	RuleUnique        = "unique"
)

// InRange builds a check requiring a numeric value within [min, max] inclusive
func InRange(min, max int64) Check {
	return Check{
		Rule: fmt.Sprintf("in_range[%d,%d]", min, max),
		Fn: func(value string) bool {
			n, ok := dataset.ParseNumber(value)
			if !ok {
				return false
			}
			return n >= float64(min) && n <= float64(max)
		},
	}
}

// OneOf builds a check requiring membership in a fixed value set
func OneOf(allowed ...string) Check {
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return Check{
		Rule: fmt.Sprintf("one_of[%s]", strings.Join(allowed, ",")),
		Fn: func(value string) bool {
			_, ok := set[value]
			return ok
		},
	}
}

// Contains builds a check requiring the value to contain a substring
func Contains(substr string) Check {
	return Check{
		Rule: fmt.Sprintf("contains[%s]", substr),
		Fn: func(value string) bool {
			return strings.Contains(value, substr)
		},
	}
}

// Matches builds a check requiring the value to match a regular expression
func Matches(pattern string) Check {
	re := regexp.MustCompile(pattern)
	return Check{
		Rule: fmt.Sprintf("matches[%s]", pattern),
		Fn:   re.MatchString,
	}
}
