// pkg/schema/violation.go
package schema

import (
	"fmt"
	"strings"
)

// Violation identifies a single failed rule: the offending column, the rule
// that failed, and the rows it failed on. Structural violations (missing
// column) carry no row indices.
type Violation struct {
	Column string
	Rule   string
	Rows   []int
	Reason string
}

// String renders the violation in a form suitable for logs and errors
func (v Violation) String() string {
	if len(v.Rows) == 0 {
		return fmt.Sprintf("column %q: %s (%s)", v.Column, v.Rule, v.Reason)
	}
	return fmt.Sprintf("column %q: %s failed for rows %v (%s)", v.Column, v.Rule, v.Rows, v.Reason)
}

// ValidationError aggregates every violation found during a validation pass
type ValidationError struct {
	Violations []Violation
}

// Error summarizes all violations, naming each offending column and rule
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("schema validation failed: %s", strings.Join(parts, "; "))
}

// ForColumn returns the violations attributed to the named column
func (e *ValidationError) ForColumn(name string) []Violation {
	var out []Violation
	for _, v := range e.Violations {
		if v.Column == name {
			out = append(out, v)
		}
	}
	return out
}
