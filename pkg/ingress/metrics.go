// pkg/ingress/metrics.go
package ingress

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// RunSummary is a point-in-time copy of the metrics for one batch run
type RunSummary struct {
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
	JobsSucceeded     int
	JobsFailed        int
	TotalRowsBefore   int
	TotalRowsAfter    int
	RemovedByStage    map[string]int
	WorkerUtilization map[int]time.Duration
}

// RunMetrics aggregates results across the workers of one batch run
type RunMetrics struct {
	mu                sync.Mutex
	logger            *zap.Logger
	startTime         time.Time
	endTime           time.Time
	jobsSucceeded     int
	jobsFailed        int
	totalRowsBefore   int
	totalRowsAfter    int
	removedByStage    map[string]int
	workerUtilization map[int]time.Duration
}

// NewRunMetrics creates a metrics aggregator for a run starting now
func NewRunMetrics(logger *zap.Logger) *RunMetrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunMetrics{
		logger:            logger,
		startTime:         time.Now(),
		removedByStage:    make(map[string]int),
		workerUtilization: make(map[int]time.Duration),
	}
}

// RecordResult folds one job result into the aggregate
func (m *RunMetrics) RecordResult(res JobResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res.Success {
		m.jobsSucceeded++
	} else {
		m.jobsFailed++
	}

	m.totalRowsBefore += res.Report.RowsBefore
	m.totalRowsAfter += res.Report.RowsAfter
	for stage, removed := range res.Report.RemovedByStage {
		m.removedByStage[stage] += removed
	}
	m.workerUtilization[res.WorkerID] += res.Duration
}

// Finish marks the end of the run
func (m *RunMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endTime = time.Now()
}

// Summary returns a copy of the current aggregate
func (m *RunMetrics) Summary() RunSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	end := m.endTime
	if end.IsZero() {
		end = time.Now()
	}

	removed := make(map[string]int, len(m.removedByStage))
	for k, v := range m.removedByStage {
		removed[k] = v
	}
	utilization := make(map[int]time.Duration, len(m.workerUtilization))
	for k, v := range m.workerUtilization {
		utilization[k] = v
	}

	return RunSummary{
		StartTime:         m.startTime,
		EndTime:           end,
		Duration:          end.Sub(m.startTime),
		JobsSucceeded:     m.jobsSucceeded,
		JobsFailed:        m.jobsFailed,
		TotalRowsBefore:   m.totalRowsBefore,
		TotalRowsAfter:    m.totalRowsAfter,
		RemovedByStage:    removed,
		WorkerUtilization: utilization,
	}
}

// LogSummary emits the aggregate at the end of a run
func (m *RunMetrics) LogSummary() {
	s := m.Summary()
	m.logger.Info("Batch run complete",
		zap.Int("jobs_succeeded", s.JobsSucceeded),
		zap.Int("jobs_failed", s.JobsFailed),
		zap.Int("rows_before", s.TotalRowsBefore),
		zap.Int("rows_after", s.TotalRowsAfter),
		zap.Any("removed_by_stage", s.RemovedByStage),
		zap.Duration("duration", s.Duration))
}
