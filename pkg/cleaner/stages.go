// pkg/cleaner/stages.go
package cleaner

import (
	"strings"

	"github.com/marketops/customer-quality/pkg/dataset"
	"github.com/marketops/customer-quality/pkg/model"
)

// removal builds the operation record for a dropped row
func removal(column string, row int, original, reason string) model.CleaningOperation {
	return model.CleaningOperation{
		ColumnName:    column,
		RowIndex:      row,
		OriginalValue: original,
		Operation:     model.OpRowRemoved,
		Reason:        reason,
	}
}

// NameFilter removes records whose name is null or blank. It runs before any
// trimming so a genuinely missing name is never normalized into a retained
// value.
func NameFilter() Stage { return nameFilter{} }

type nameFilter struct{}

func (nameFilter) Name() string       { return "name_filter" }
func (nameFilter) Requires() []string { return []string{model.ColFullName} }

func (nameFilter) Apply(ds *dataset.Dataset) (*dataset.Dataset, []model.CleaningOperation) {
	idx := ds.ColumnIndex(model.ColFullName)
	var ops []model.CleaningOperation

	out := ds.Filter(func(i int, row []string) bool {
		if dataset.IsBlank(row[idx]) {
			ops = append(ops, removal(model.ColFullName, i, row[idx], model.ReasonMissingName))
			return false
		}
		return true
	})
	return out, ops
}

// TrimWhitespace strips leading and trailing whitespace from the name and
// location fields on all surviving records. Either column may be absent.
func TrimWhitespace() Stage { return trimWhitespace{} }

type trimWhitespace struct{}

func (trimWhitespace) Name() string       { return "trim_whitespace" }
func (trimWhitespace) Requires() []string { return []string{model.ColFullName, model.ColLocation} }

func (trimWhitespace) Apply(ds *dataset.Dataset) (*dataset.Dataset, []model.CleaningOperation) {
	var cols []int
	for _, name := range []string{model.ColFullName, model.ColLocation} {
		if idx := ds.ColumnIndex(name); idx >= 0 {
			cols = append(cols, idx)
		}
	}

	var ops []model.CleaningOperation
	out := dataset.New(ds.Columns)

	for i, row := range ds.Rows {
		newRow := row
		copied := false
		for _, c := range cols {
			trimmed := strings.TrimSpace(row[c])
			if trimmed == row[c] {
				continue
			}
			if !copied {
				newRow = append([]string(nil), row...)
				copied = true
			}
			newRow[c] = trimmed
			ops = append(ops, model.CleaningOperation{
				ColumnName:    ds.Columns[c],
				RowIndex:      i,
				OriginalValue: row[c],
				NewValue:      trimmed,
				Operation:     model.OpValueTrimmed,
				Reason:        model.ReasonWhitespace,
			})
		}
		out.AppendRow(newRow)
	}
	return out, ops
}

// AgeFilter coerces the age column to a number and removes records whose
// coerced age falls outside [AgeMin, AgeMax]. Coercion happens first and
// explicitly: an unparseable age becomes null and the record is kept, so
// only a present, numeric, out-of-range age is a rejection reason.
func AgeFilter() Stage { return ageFilter{} }

type ageFilter struct{}

func (ageFilter) Name() string       { return "age_filter" }
func (ageFilter) Requires() []string { return []string{model.ColAge} }

func (ageFilter) Apply(ds *dataset.Dataset) (*dataset.Dataset, []model.CleaningOperation) {
	idx := ds.ColumnIndex(model.ColAge)
	var ops []model.CleaningOperation
	out := dataset.New(ds.Columns)

	for i, row := range ds.Rows {
		value := row[idx]
		if value == "" {
			out.AppendRow(row)
			continue
		}

		age, ok := dataset.ParseNumber(value)
		if !ok {
			newRow := append([]string(nil), row...)
			newRow[idx] = ""
			ops = append(ops, model.CleaningOperation{
				ColumnName:    model.ColAge,
				RowIndex:      i,
				OriginalValue: value,
				Operation:     model.OpValueCoerced,
				Reason:        model.ReasonAgeNotNumeric,
			})
			out.AppendRow(newRow)
			continue
		}

		if age < model.AgeMin || age > model.AgeMax {
			ops = append(ops, removal(model.ColAge, i, value, model.ReasonAgeOutOfRange))
			continue
		}

		formatted := dataset.FormatNumber(age)
		if formatted == value {
			out.AppendRow(row)
			continue
		}
		newRow := append([]string(nil), row...)
		newRow[idx] = formatted
		ops = append(ops, model.CleaningOperation{
			ColumnName:    model.ColAge,
			RowIndex:      i,
			OriginalValue: value,
			NewValue:      formatted,
			Operation:     model.OpValueCoerced,
			Reason:        model.ReasonAgeNormalized,
		})
		out.AppendRow(newRow)
	}
	return out, ops
}

// EmailFormatFilter removes records whose email is present but contains no
// "@" separator. Blank and null emails pass through.
func EmailFormatFilter() Stage { return emailFormatFilter{} }

type emailFormatFilter struct{}

func (emailFormatFilter) Name() string       { return "email_format_filter" }
func (emailFormatFilter) Requires() []string { return []string{model.ColEmailAddress} }

func (emailFormatFilter) Apply(ds *dataset.Dataset) (*dataset.Dataset, []model.CleaningOperation) {
	idx := ds.ColumnIndex(model.ColEmailAddress)
	var ops []model.CleaningOperation

	out := ds.Filter(func(i int, row []string) bool {
		value := row[idx]
		if !dataset.IsBlank(value) && !strings.Contains(value, "@") {
			ops = append(ops, removal(model.ColEmailAddress, i, value, model.ReasonEmailMissingAt))
			return false
		}
		return true
	})
	return out, ops
}

// EmailDedup keeps only the first occurrence of each distinct non-blank
// email, preserving original row order. Blank and null emails are never
// deduplicated against each other.
func EmailDedup() Stage { return emailDedup{} }

type emailDedup struct{}

func (emailDedup) Name() string       { return "email_dedup" }
func (emailDedup) Requires() []string { return []string{model.ColEmailAddress} }

func (emailDedup) Apply(ds *dataset.Dataset) (*dataset.Dataset, []model.CleaningOperation) {
	idx := ds.ColumnIndex(model.ColEmailAddress)
	var ops []model.CleaningOperation
	seen := make(map[string]struct{})

	out := ds.Filter(func(i int, row []string) bool {
		value := row[idx]
		if dataset.IsBlank(value) {
			return true
		}
		if _, dup := seen[value]; dup {
			ops = append(ops, removal(model.ColEmailAddress, i, value, model.ReasonDuplicateEmail))
			return false
		}
		seen[value] = struct{}{}
		return true
	})
	return out, ops
}

// DateFilter removes records whose signup date fails to parse as a real
// calendar date. An empty date fails to parse and is removed.
func DateFilter() Stage { return dateFilter{} }

type dateFilter struct{}

func (dateFilter) Name() string       { return "date_filter" }
func (dateFilter) Requires() []string { return []string{model.ColDateJoined} }

func (dateFilter) Apply(ds *dataset.Dataset) (*dataset.Dataset, []model.CleaningOperation) {
	idx := ds.ColumnIndex(model.ColDateJoined)
	var ops []model.CleaningOperation

	out := ds.Filter(func(i int, row []string) bool {
		if _, ok := dataset.ParseDate(row[idx]); !ok {
			ops = append(ops, removal(model.ColDateJoined, i, row[idx], model.ReasonInvalidDate))
			return false
		}
		return true
	})
	return out, ops
}
