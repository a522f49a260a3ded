// pkg/ingress/runner.go
package ingress

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/marketops/customer-quality/pkg/cleaner"
	"github.com/marketops/customer-quality/pkg/model"
	"github.com/marketops/customer-quality/pkg/source"
)

// Runner drives the cleaning pipeline: either one table fetched from a
// source, or a batch of file jobs over a worker pool
type Runner struct {
	pipeline   *cleaner.Pipeline
	verifier   *Verifier
	logger     *zap.Logger
	poolSize   int
	retryDelay time.Duration
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithPoolSize sets the number of workers; zero means use runtime.NumCPU()
func WithPoolSize(n int) RunnerOption {
	return func(r *Runner) {
		r.poolSize = n
	}
}

// WithVerifier enables schema validation of every cleaned output
func WithVerifier(v *Verifier) RunnerOption {
	return func(r *Runner) {
		r.verifier = v
	}
}

// WithRetryDelay sets the pause between retries of a failed job
func WithRetryDelay(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.retryDelay = d
	}
}

// NewRunner creates a runner around a cleaning pipeline
func NewRunner(pipeline *cleaner.Pipeline, logger *zap.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Runner{
		pipeline:   pipeline,
		logger:     logger,
		retryDelay: time.Second,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RunSource fetches one raw table, cleans it, writes the result, and
// optionally verifies the output
func (r *Runner) RunSource(ctx context.Context, src source.Source, outputPath string) (model.Report, *VerificationReport, error) {
	r.logger.Info("Fetching raw table",
		zap.String("source", src.Name()),
		zap.String("output", outputPath))

	ds, err := src.Fetch(ctx)
	if err != nil {
		return model.Report{}, nil, err
	}

	report, err := r.pipeline.CleanDataset(ctx, ds, outputPath)
	if err != nil {
		return report, nil, err
	}

	if r.verifier == nil {
		return report, nil, nil
	}

	verification, err := r.verifier.VerifyFile(outputPath)
	if err != nil {
		return report, nil, err
	}
	return report, verification, nil
}

// RunFiles processes a batch of file jobs over a worker pool and returns the
// aggregated metrics. Each job writes to its own output path, so jobs never
// contend on a sink.
func (r *Runner) RunFiles(ctx context.Context, jobs []FileJob) RunSummary {
	poolSize := r.poolSize
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}
	if poolSize > len(jobs) {
		poolSize = len(jobs)
	}

	r.logger.Info("Starting batch run",
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", poolSize))

	metrics := NewRunMetrics(r.logger)
	jobCh := make(chan FileJob)
	resultCh := make(chan JobResult)

	var wg sync.WaitGroup
	for i := 0; i < poolSize; i++ {
		worker := NewWorker(i, r.pipeline, r.verifier, r.logger).WithRetryDelay(r.retryDelay)
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx, jobCh, resultCh)
		}()
	}

	go func() {
		for _, job := range jobs {
			jobCh <- job
		}
		close(jobCh)
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for res := range resultCh {
		metrics.RecordResult(res)
	}

	metrics.Finish()
	metrics.LogSummary()
	return metrics.Summary()
}
