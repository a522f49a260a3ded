// pkg/schema/schema.go
package schema

import (
	"github.com/marketops/customer-quality/pkg/dataset"
)

// ColumnType is the semantic type declared for a column
type ColumnType int

const (
	// TypeText accepts any textual value
	TypeText ColumnType = iota
	// TypeInteger requires non-null values to coerce to an integer
	TypeInteger
	// TypeDate requires non-null values to parse as a calendar date
	TypeDate
)

// String returns a string representation of the column type
func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeDate:
		return "date"
	default:
		return "unknown"
	}
}

// Check is a named per-value predicate. Checks only see non-null values;
// nullable columns bypass them entirely when the cell is null.
type Check struct {
	Rule string
	Fn   func(value string) bool
}

// Column declares the expected shape of a single column: nullability, a
// semantic type, and an ordered list of independent value checks
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Unique   bool
	Checks   []Check
}

// Schema declares the expected shape of a table
type Schema struct {
	Columns []Column
}

// Validate checks the dataset against the schema. It performs no mutation
// and is safe to call repeatedly and concurrently on read-only tables.
//
// Columns are evaluated one by one without short-circuiting, so every
// violation in the returned error is attributable to a specific column,
// rule, and set of row indices. A nil return means every declared rule
// holds and the table can be used as-is.
func (s Schema) Validate(ds *dataset.Dataset) error {
	var violations []Violation

	for _, col := range s.Columns {
		violations = append(violations, s.validateColumn(ds, col)...)
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// validateColumn evaluates presence, nullability, type, and value checks
// for a single declared column
func (s Schema) validateColumn(ds *dataset.Dataset, col Column) []Violation {
	idx := ds.ColumnIndex(col.Name)
	if idx < 0 {
		return []Violation{{
			Column: col.Name,
			Rule:   RuleColumnPresent,
			Reason: "required column is missing from the table",
		}}
	}

	var violations []Violation
	var nullRows, typeRows []int
	checkRows := make([][]int, len(col.Checks))

	for i, row := range ds.Rows {
		value := row[idx]

		if value == "" {
			if !col.Nullable {
				nullRows = append(nullRows, i)
			}
			continue
		}

		if !coercible(value, col.Type) {
			typeRows = append(typeRows, i)
			continue
		}

		for ci, chk := range col.Checks {
			if !chk.Fn(value) {
				checkRows[ci] = append(checkRows[ci], i)
			}
		}
	}

	if len(nullRows) > 0 {
		violations = append(violations, Violation{
			Column: col.Name,
			Rule:   RuleNotNullable,
			Rows:   nullRows,
			Reason: "null value in non-nullable column",
		})
	}
	if len(typeRows) > 0 {
		violations = append(violations, Violation{
			Column: col.Name,
			Rule:   "type_" + col.Type.String(),
			Rows:   typeRows,
			Reason: "value cannot be coerced to " + col.Type.String(),
		})
	}
	for ci, rows := range checkRows {
		if len(rows) > 0 {
			violations = append(violations, Violation{
				Column: col.Name,
				Rule:   col.Checks[ci].Rule,
				Rows:   rows,
				Reason: "value fails check " + col.Checks[ci].Rule,
			})
		}
	}

	if col.Unique {
		if rows := duplicateRows(ds, idx); len(rows) > 0 {
			violations = append(violations, Violation{
				Column: col.Name,
				Rule:   RuleUnique,
				Rows:   rows,
				Reason: "duplicate value in unique column",
			})
		}
	}

	return violations
}

// coercible reports whether a non-null value satisfies the declared type
func coercible(value string, t ColumnType) bool {
	switch t {
	case TypeInteger:
		_, ok := dataset.ParseInt(value)
		return ok
	case TypeDate:
		_, ok := dataset.ParseDate(value)
		return ok
	default:
		return true
	}
}

// duplicateRows returns the indices of rows whose non-blank value in the
// given column repeats an earlier row's value. The first occurrence is
// never reported; blank values never collide with each other.
func duplicateRows(ds *dataset.Dataset, idx int) []int {
	seen := make(map[string]struct{})
	var dups []int
	for i, row := range ds.Rows {
		value := row[idx]
		if dataset.IsBlank(value) {
			continue
		}
		if _, ok := seen[value]; ok {
			dups = append(dups, i)
			continue
		}
		seen[value] = struct{}{}
	}
	return dups
}
