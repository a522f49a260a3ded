// pkg/schema/schema_test.go
package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketops/customer-quality/pkg/dataset"
	"github.com/marketops/customer-quality/pkg/model"
)

// customerColumns is the full declared column set in schema order
var customerColumns = []string{
	model.ColFullName, model.ColEmailAddress, model.ColAge, model.ColGender,
	model.ColPhoneNumber, model.ColLocation, model.ColCountry, model.ColDateJoined,
	model.ColLeadSource, model.ColUTMCampaign, model.ColUTMMedium, model.ColNotes,
	model.ColIsSubscribed,
}

// validRow returns a fully conforming record, with overrides applied by
// column name
func validRow(t *testing.T, overrides map[string]string) []string {
	t.Helper()
	row := map[string]string{
		model.ColFullName:     "Alice Jones",
		model.ColEmailAddress: "alice@gmail.com",
		model.ColAge:          "30",
		model.ColGender:       "F",
		model.ColPhoneNumber:  "555-0100",
		model.ColLocation:     "Seattle",
		model.ColCountry:      "USA",
		model.ColDateJoined:   "2023-01-15",
		model.ColLeadSource:   "web",
		model.ColUTMCampaign:  "spring_launch",
		model.ColUTMMedium:    "email",
		model.ColNotes:        "",
		model.ColIsSubscribed: "true",
	}
	for col, v := range overrides {
		row[col] = v
	}

	out := make([]string, len(customerColumns))
	for i, col := range customerColumns {
		out[i] = row[col]
	}
	return out
}

func customerTable(t *testing.T, rows ...[]string) *dataset.Dataset {
	t.Helper()
	ds := dataset.New(customerColumns)
	for _, row := range rows {
		ds.AppendRow(row)
	}
	return ds
}

func TestValidateAcceptsConformingTable(t *testing.T) {
	ds := customerTable(t,
		validRow(t, nil),
		validRow(t, map[string]string{
			model.ColFullName:     "Bob Smith",
			model.ColEmailAddress: "bob@gmail.com",
			model.ColAge:          "", // nullable
			model.ColGender:       "Other",
		}),
	)

	require.NoError(t, CustomerSchema().Validate(ds))

	// validation is a predicate, not a transform
	assert.Equal(t, "Alice Jones", ds.Rows[0][0])
	require.NoError(t, CustomerSchema().Validate(ds))
}

func TestValidateNamesAgeColumnForNegativeAge(t *testing.T) {
	ds := customerTable(t, validRow(t, map[string]string{model.ColAge: "-5"}))

	err := CustomerSchema().Validate(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age")

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	violations := vErr.ForColumn(model.ColAge)
	require.Len(t, violations, 1)
	assert.Equal(t, "in_range[0,120]", violations[0].Rule)
	assert.Equal(t, []int{0}, violations[0].Rows)
}

func TestValidateMissingColumn(t *testing.T) {
	ds := dataset.New([]string{model.ColFullName, model.ColEmailAddress})
	ds.AppendRow([]string{"Alice", "alice@gmail.com"})

	err := CustomerSchema().Validate(ds)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))

	violations := vErr.ForColumn(model.ColCountry)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleColumnPresent, violations[0].Rule)
	assert.Empty(t, violations[0].Rows)
}

func TestValidateNonNullableColumn(t *testing.T) {
	ds := customerTable(t,
		validRow(t, nil),
		validRow(t, map[string]string{
			model.ColEmailAddress: "bob@gmail.com",
			model.ColLocation:     "",
		}),
	)

	err := CustomerSchema().Validate(ds)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	violations := vErr.ForColumn(model.ColLocation)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleNotNullable, violations[0].Rule)
	assert.Equal(t, []int{1}, violations[0].Rows)
}

func TestValidateNullableColumnBypassesChecks(t *testing.T) {
	// a null email skips both the "@" check and uniqueness
	ds := customerTable(t,
		validRow(t, map[string]string{model.ColEmailAddress: ""}),
		validRow(t, map[string]string{model.ColEmailAddress: ""}),
	)

	assert.NoError(t, CustomerSchema().Validate(ds))
}

func TestValidateGenderSet(t *testing.T) {
	ds := customerTable(t, validRow(t, map[string]string{model.ColGender: "X"}))

	err := CustomerSchema().Validate(ds)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	violations := vErr.ForColumn(model.ColGender)
	require.Len(t, violations, 1)
	assert.Equal(t, "one_of[M,F,Other]", violations[0].Rule)
}

func TestValidateEmailFormat(t *testing.T) {
	ds := customerTable(t, validRow(t, map[string]string{model.ColEmailAddress: "not-an-email"}))

	err := CustomerSchema().Validate(ds)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	violations := vErr.ForColumn(model.ColEmailAddress)
	require.Len(t, violations, 1)
	assert.Equal(t, "contains[@]", violations[0].Rule)
}

func TestValidateEmailUniqueness(t *testing.T) {
	ds := customerTable(t,
		validRow(t, nil),
		validRow(t, map[string]string{model.ColFullName: "Alice Clone"}),
	)

	err := CustomerSchema().Validate(ds)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	violations := vErr.ForColumn(model.ColEmailAddress)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleUnique, violations[0].Rule)
	// only the later duplicate is reported
	assert.Equal(t, []int{1}, violations[0].Rows)
}

func TestValidateAgeType(t *testing.T) {
	tests := []struct {
		name string
		age  string
		rule string
	}{
		{name: "not numeric", age: "unknown", rule: "type_integer"},
		{name: "decimal", age: "30.5", rule: "type_integer"},
		{name: "out of range high", age: "999", rule: "in_range[0,120]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := customerTable(t, validRow(t, map[string]string{model.ColAge: tt.age}))

			err := CustomerSchema().Validate(ds)
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			violations := vErr.ForColumn(model.ColAge)
			require.Len(t, violations, 1)
			assert.Equal(t, tt.rule, violations[0].Rule)
		})
	}
}

func TestValidateDateColumn(t *testing.T) {
	t.Run("pattern violation", func(t *testing.T) {
		// parses as a date, but not in the fixed 4-2-2 pattern
		ds := customerTable(t, validRow(t, map[string]string{model.ColDateJoined: "2023-01-15T10:30:00Z"}))

		err := CustomerSchema().Validate(ds)
		require.Error(t, err)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		violations := vErr.ForColumn(model.ColDateJoined)
		require.Len(t, violations, 1)
		assert.Equal(t, `matches[^\d{4}-\d{2}-\d{2}$]`, violations[0].Rule)
	})

	t.Run("not a calendar date", func(t *testing.T) {
		ds := customerTable(t, validRow(t, map[string]string{model.ColDateJoined: "2023-13-01"}))

		err := CustomerSchema().Validate(ds)
		require.Error(t, err)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		violations := vErr.ForColumn(model.ColDateJoined)
		require.Len(t, violations, 1)
		assert.Equal(t, "type_date", violations[0].Rule)
	})
}

func TestValidateReportsEveryColumn(t *testing.T) {
	// two independent violations in one pass, no short-circuit
	ds := customerTable(t, validRow(t, map[string]string{
		model.ColAge:    "-5",
		model.ColGender: "X",
	}))

	err := CustomerSchema().Validate(ds)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.ForColumn(model.ColAge), 1)
	assert.Len(t, vErr.ForColumn(model.ColGender), 1)
}
