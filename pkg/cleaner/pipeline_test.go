// pkg/cleaner/pipeline_test.go
package cleaner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketops/customer-quality/pkg/dataset"
	"github.com/marketops/customer-quality/pkg/model"
	"github.com/marketops/customer-quality/pkg/schema"
)

var scenarioColumns = []string{
	model.ColFullName, model.ColEmailAddress, model.ColAge,
	model.ColLocation, model.ColDateJoined,
}

// scenarioTable is a raw batch exercising every default stage at once
func scenarioTable() *dataset.Dataset {
	ds := dataset.New(scenarioColumns)
	for _, row := range [][]string{
		{"Alice", "alice@gmail.com", "30", "Seattle", "2023-01-15"},
		{"Bob", "bob@gmail.com", "-1", "Austin", "2023-01-16"},
		{"", "carol@gmail.com", "25", "Denver", "2023-01-17"},
		{"Dan", "dan@gmail.com", "999", "Boston", "2023-01-18"},
		{"Eve", "", "41", "Miami", "2023-01-19"},
		{"Sara", "sara@gmail.com", "33", "Portland", "2023-01-20"},
		{"  Rahul Kumar  ", "rahul@gmail.com", "28", " Mumbai ", "2023-01-21"},
		{"Grace", "grace@gmail.com", "", "Oslo", "2023-01-22"},
		{"Henry", "henry@gmail.com", "52", "Cairo", "not-a-date"},
		{"Sara Again", "sara@gmail.com", "35", "Lisbon", "2023-01-23"},
		{"Ivy", "ivy@gmail.com", "unknown", "Tokyo", "2023-01-24"},
		{"Jack", "jack.at.gmail.com", "44", "Rome", "2023-01-25"},
	} {
		ds.AppendRow(row)
	}
	return ds
}

func TestPipelineCustomerScenario(t *testing.T) {
	p := New(zap.NewNop())

	cleaned, report, ops := p.Apply(scenarioTable())

	assert.Equal(t, 12, report.RowsBefore)
	assert.Equal(t, 6, report.RowsAfter)
	assert.Equal(t, 6, report.RowsRemoved())
	assert.Equal(t, map[string]int{
		"name_filter":         1,
		"age_filter":          2,
		"email_format_filter": 1,
		"email_dedup":         1,
		"date_filter":         1,
	}, report.RemovedByStage)

	assert.Equal(t, []string{"Alice", "Eve", "Sara", "Rahul Kumar", "Grace", "Ivy"},
		column(cleaned, model.ColFullName))

	// whitespace contraction and age coercion on survivors
	assert.Equal(t, "Mumbai", cleaned.Rows[3][cleaned.ColumnIndex(model.ColLocation)])
	assert.Equal(t, "", cleaned.Rows[5][cleaned.ColumnIndex(model.ColAge)])

	// the record whose email is null survives both email stages
	assert.Equal(t, "", cleaned.Rows[1][cleaned.ColumnIndex(model.ColEmailAddress)])

	for _, op := range ops {
		assert.Equal(t, "customers", op.Dataset)
		assert.False(t, op.AppliedAt.IsZero())
	}
}

func TestPipelineIsIdempotent(t *testing.T) {
	p := New(zap.NewNop())

	once, first, _ := p.Apply(scenarioTable())
	twice, second, ops := p.Apply(once)

	assert.Equal(t, once.Rows, twice.Rows)
	assert.Equal(t, first.RowsAfter, second.RowsBefore)
	assert.Equal(t, second.RowsBefore, second.RowsAfter)
	assert.Empty(t, ops)
}

func TestPipelineInputIsNotMutated(t *testing.T) {
	p := New(zap.NewNop())
	raw := scenarioTable()
	before := raw.Clone()

	_, _, _ = p.Apply(raw)

	assert.Equal(t, before.Rows, raw.Rows)
}

func TestPipelineSkipsStagesForMissingColumns(t *testing.T) {
	p := New(zap.NewNop())
	ds := dataset.New([]string{model.ColNotes, model.ColCountry})
	ds.AppendRow([]string{"first contact", "India"})
	ds.AppendRow([]string{"", ""})

	cleaned, report, ops := p.Apply(ds)

	assert.Equal(t, ds.Rows, cleaned.Rows)
	assert.Equal(t, 2, report.RowsAfter)
	assert.Empty(t, report.RemovedByStage)
	assert.Empty(t, ops)
}

func TestPipelineWithCustomStages(t *testing.T) {
	p := New(zap.NewNop(), WithStages(NameFilter()))
	ds := dataset.New(scenarioColumns)
	ds.AppendRow([]string{"", "dup@gmail.com", "999", "X", "bad-date"})
	ds.AppendRow([]string{"Keep", "dup@gmail.com", "999", "X", "bad-date"})

	cleaned, report, _ := p.Apply(ds)

	// only the configured stage runs, so the second row survives untouched
	assert.Equal(t, 1, cleaned.RowCount())
	assert.Equal(t, map[string]int{"name_filter": 1}, report.RemovedByStage)
}

func TestCleanRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "raw_customers.csv")
	output := filepath.Join(dir, "cleaned_customers.csv")
	require.NoError(t, dataset.WriteFile(input, scenarioTable()))

	p := New(zap.NewNop())
	report, err := p.Clean(context.Background(), input, output)

	require.NoError(t, err)
	assert.Equal(t, 12, report.RowsBefore)
	assert.Equal(t, 6, report.RowsAfter)

	cleaned, err := dataset.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, scenarioColumns, cleaned.Columns)
	assert.Equal(t, 6, cleaned.RowCount())
}

func TestCleanMissingInput(t *testing.T) {
	p := New(zap.NewNop())

	_, err := p.Clean(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), "out.csv")

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCleanUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "raw.csv")
	require.NoError(t, dataset.WriteFile(input, scenarioTable()))

	p := New(zap.NewNop())
	_, err := p.Clean(context.Background(), input, filepath.Join(dir, "no-such-dir", "out.csv"))

	assert.Error(t, err)
}

func TestCleanedTablePassesValidation(t *testing.T) {
	cols := []string{
		model.ColFullName, model.ColEmailAddress, model.ColAge, model.ColGender,
		model.ColPhoneNumber, model.ColLocation, model.ColCountry,
		model.ColDateJoined, model.ColLeadSource, model.ColUTMCampaign,
		model.ColUTMMedium, model.ColNotes, model.ColIsSubscribed,
	}
	ds := dataset.New(cols)
	ds.AppendRow([]string{"Alice", "alice@gmail.com", "30", "F", "555-0100",
		"Seattle", "USA", "2023-01-15", "web", "spring", "email", "", "true"})
	ds.AppendRow([]string{"  Bob  ", "bob@work.org", " 47 ", "M", "",
		" Austin ", "USA", "2023-02-01", "referral", "", "", "vip", "false"})
	ds.AppendRow([]string{"", "ghost@gmail.com", "31", "M", "",
		"Nowhere", "USA", "2023-03-01", "web", "", "", "", "true"})
	ds.AppendRow([]string{"Carol", "alice@gmail.com", "oops", "Other", "",
		"Denver", "USA", "2023-13-99", "web", "", "", "", "false"})

	p := New(zap.NewNop())
	cleaned, report, _ := p.Apply(ds)

	assert.Equal(t, 2, report.RowsAfter)
	assert.NoError(t, schema.CustomerSchema().Validate(cleaned))

	// rerunning validation after a second cleaning pass changes nothing
	again, _, ops := p.Apply(cleaned)
	assert.Equal(t, cleaned.Rows, again.Rows)
	assert.Empty(t, ops)
}
