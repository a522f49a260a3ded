// pkg/cleaner/pipeline.go
package cleaner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketops/customer-quality/pkg/dataset"
	"github.com/marketops/customer-quality/pkg/model"
)

// Stage is one ordered filtering or normalization step. A stage is a pure
// transform: it never mutates its input dataset and only ever removes rows
// or rewrites cell values, never adds rows.
//
// Requires lists the columns a stage operates on; the pipeline skips a stage
// entirely when none of them is present in the table. A stage whose columns
// are partially present handles the missing ones itself.
type Stage interface {
	Name() string
	Requires() []string
	Apply(ds *dataset.Dataset) (*dataset.Dataset, []model.CleaningOperation)
}

// Pipeline applies an ordered sequence of repair/removal stages to a table
type Pipeline struct {
	stages      []Stage
	logger      *zap.Logger
	audit       *AuditStore
	datasetName string
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithStages replaces the default stage sequence
func WithStages(stages ...Stage) Option {
	return func(p *Pipeline) {
		p.stages = stages
	}
}

// WithAuditStore enables recording of cleaning operations after each run
func WithAuditStore(store *AuditStore) Option {
	return func(p *Pipeline) {
		p.audit = store
	}
}

// WithDatasetName sets the logical dataset name stamped on audit records
func WithDatasetName(name string) Option {
	return func(p *Pipeline) {
		p.datasetName = name
	}
}

// New creates a cleaning pipeline with the default customer stage sequence
func New(logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pipeline{
		stages:      DefaultStages(),
		logger:      logger,
		datasetName: "customers",
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// DefaultStages returns the fixed customer cleaning sequence. Order matters:
// missing names are filtered before any trimming so a null name is never
// normalized into a retained value.
func DefaultStages() []Stage {
	return []Stage{
		NameFilter(),
		TrimWhitespace(),
		AgeFilter(),
		EmailFormatFilter(),
		EmailDedup(),
		DateFilter(),
	}
}

// Apply runs every stage in order over an in-memory table and returns the
// cleaned table, the before/after report, and the operations performed.
// Malformed individual values never produce an error; they are resolved by
// value rewrites or row removal.
func (p *Pipeline) Apply(ds *dataset.Dataset) (*dataset.Dataset, model.Report, []model.CleaningOperation) {
	start := time.Now()
	report := model.Report{
		RowsBefore:     ds.RowCount(),
		RemovedByStage: make(map[string]int),
	}

	var operations []model.CleaningOperation
	current := ds

	for _, stage := range p.stages {
		if !anyColumnPresent(current, stage.Requires()) {
			p.logger.Debug("Skipping stage, required column absent",
				zap.String("stage", stage.Name()),
				zap.Strings("requires", stage.Requires()))
			continue
		}

		rowsIn := current.RowCount()
		next, stageOps := stage.Apply(current)

		if removed := rowsIn - next.RowCount(); removed > 0 {
			report.RemovedByStage[stage.Name()] = removed
		}

		now := time.Now()
		for i := range stageOps {
			stageOps[i].Dataset = p.datasetName
			stageOps[i].AppliedAt = now
		}
		operations = append(operations, stageOps...)

		p.logger.Debug("Stage applied",
			zap.String("stage", stage.Name()),
			zap.Int("rows_in", rowsIn),
			zap.Int("rows_out", next.RowCount()),
			zap.Int("operations", len(stageOps)))

		current = next
	}

	report.RowsAfter = current.RowCount()
	report.Duration = time.Since(start)
	return current, report, operations
}

// Clean reads a raw CSV table, applies every stage, writes the cleaned table
// to the output path, and returns the before/after report. Only structural
// failures (unreadable source, unwritable sink, failed audit write) produce
// an error.
func (p *Pipeline) Clean(ctx context.Context, inputPath, outputPath string) (model.Report, error) {
	ds, err := dataset.ReadFile(inputPath)
	if err != nil {
		return model.Report{}, err
	}
	return p.CleanDataset(ctx, ds, outputPath)
}

// CleanDataset applies every stage to an already-loaded table, writes the
// cleaned table to the output path, and records the operations performed
// when an audit store is configured
func (p *Pipeline) CleanDataset(ctx context.Context, ds *dataset.Dataset, outputPath string) (model.Report, error) {
	cleaned, report, operations := p.Apply(ds)

	if err := dataset.WriteFile(outputPath, cleaned); err != nil {
		return report, err
	}

	if p.audit != nil && len(operations) > 0 {
		runID := uuid.New().String()
		if err := p.audit.Record(ctx, runID, operations); err != nil {
			return report, fmt.Errorf("failed to record cleaning operations: %w", err)
		}
	}

	p.logger.Info("Cleaning run complete",
		zap.String("output", outputPath),
		zap.Int("rows_before", report.RowsBefore),
		zap.Int("rows_after", report.RowsAfter),
		zap.Int("operations", len(operations)),
		zap.Duration("duration", report.Duration))

	return report, nil
}

// anyColumnPresent reports whether at least one of the named columns exists
func anyColumnPresent(ds *dataset.Dataset, columns []string) bool {
	for _, col := range columns {
		if ds.HasColumn(col) {
			return true
		}
	}
	return false
}
