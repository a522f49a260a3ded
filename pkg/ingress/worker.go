// pkg/ingress/worker.go
package ingress

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/marketops/customer-quality/pkg/cleaner"
)

// Worker processes file jobs from a shared queue. Each worker owns one job
// end-to-end, so workers share no mutable state with each other.
type Worker struct {
	ID         int
	pipeline   *cleaner.Pipeline
	verifier   *Verifier
	logger     *zap.Logger
	retryDelay time.Duration
}

// NewWorker creates a worker. verifier may be nil to skip post-clean
// verification.
func NewWorker(id int, pipeline *cleaner.Pipeline, verifier *Verifier, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		ID:         id,
		pipeline:   pipeline,
		verifier:   verifier,
		logger:     logger.With(zap.Int("worker_id", id)),
		retryDelay: time.Second,
	}
}

// WithRetryDelay sets the pause between retries of a failed job
func (w *Worker) WithRetryDelay(d time.Duration) *Worker {
	w.retryDelay = d
	return w
}

// Run consumes jobs until the channel closes, emitting one result per job.
// After cancellation the remaining jobs are reported as failed without being
// processed.
func (w *Worker) Run(ctx context.Context, jobs <-chan FileJob, results chan<- JobResult) {
	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- JobResult{
				JobID:    job.ID,
				Input:    job.Input,
				Output:   job.Output,
				Err:      ctx.Err(),
				WorkerID: w.ID,
			}
			continue
		default:
		}
		results <- w.process(ctx, job)
	}
}

// process runs one job, retrying structural failures up to the job's limit
func (w *Worker) process(ctx context.Context, job FileJob) JobResult {
	start := time.Now()
	result := JobResult{
		JobID:     job.ID,
		Input:     job.Input,
		Output:    job.Output,
		StartTime: start,
		WorkerID:  w.ID,
	}

	report, err := w.pipeline.Clean(ctx, job.Input, job.Output)
retry:
	for err != nil && Retryable(err) && job.IsRetryable() {
		job = job.Retry()
		w.logger.Warn("Retrying job",
			zap.String("job_id", job.ID),
			zap.String("input", job.Input),
			zap.Int("attempt", job.RetryCount),
			zap.Error(err))

		select {
		case <-time.After(w.retryDelay):
		case <-ctx.Done():
			err = ctx.Err()
			break retry
		}
		report, err = w.pipeline.Clean(ctx, job.Input, job.Output)
	}

	if err == nil && w.verifier != nil {
		var verification *VerificationReport
		verification, err = w.verifier.VerifyFile(job.Output)
		result.Verification = verification
	}

	result.Report = report
	result.Err = err
	result.Success = err == nil
	result.RetryCount = job.RetryCount
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)

	if err != nil {
		w.logger.Error("Job failed",
			zap.String("job_id", job.ID),
			zap.String("input", job.Input),
			zap.String("failure_kind", Classify(err).String()),
			zap.Error(err))
	}
	return result
}
