// pkg/ingress/job.go
package ingress

import (
	"time"

	"github.com/google/uuid"

	"github.com/marketops/customer-quality/pkg/model"
)

// FileJob represents one raw-to-cleaned file pair to process. Each job is
// given a distinct output path; concurrent writers to the same destination
// are undefined behavior the runner does not manage.
type FileJob struct {
	ID         string    // Unique job identifier
	Input      string    // Raw table path
	Output     string    // Cleaned table path
	CreatedAt  time.Time // Job creation timestamp
	RetryCount int       // Number of retries attempted
	MaxRetries int       // Maximum allowed retries
}

// NewFileJob creates a new file job with defaults
func NewFileJob(input, output string) FileJob {
	return FileJob{
		ID:         uuid.New().String(),
		Input:      input,
		Output:     output,
		CreatedAt:  time.Now(),
		RetryCount: 0,
		MaxRetries: 3,
	}
}

// WithMaxRetries sets the maximum retry count and returns the modified job
func (j FileJob) WithMaxRetries(maxRetries int) FileJob {
	j.MaxRetries = maxRetries
	return j
}

// IsRetryable checks if the job can be retried
func (j FileJob) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// Retry increments the retry count and returns the modified job
func (j FileJob) Retry() FileJob {
	j.RetryCount++
	return j
}

// JobResult represents the outcome of one file job
type JobResult struct {
	JobID        string
	Input        string
	Output       string
	Success      bool
	Report       model.Report
	Verification *VerificationReport
	Err          error
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	RetryCount   int
	WorkerID     int
}
