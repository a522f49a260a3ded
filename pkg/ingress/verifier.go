// pkg/ingress/verifier.go
package ingress

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/marketops/customer-quality/pkg/dataset"
	"github.com/marketops/customer-quality/pkg/schema"
)

// VerificationReport contains the result of validating a cleaned table
type VerificationReport struct {
	Path       string
	RowCount   int
	Valid      bool
	Violations []schema.Violation
	Duration   time.Duration
}

// Verifier confirms that cleaned output conforms to the declared schema.
// It is the strict counterpart of the tolerant cleaning stages: it never
// repairs anything, only reports.
type Verifier struct {
	schema schema.Schema
	logger *zap.Logger
}

// NewVerifier creates a verifier for the given schema
func NewVerifier(s schema.Schema, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		schema: s,
		logger: logger,
	}
}

// VerifyDataset validates an in-memory table and reports every violation
func (v *Verifier) VerifyDataset(ds *dataset.Dataset) *VerificationReport {
	start := time.Now()
	report := &VerificationReport{
		RowCount: ds.RowCount(),
	}

	if err := v.schema.Validate(ds); err != nil {
		var vErr *schema.ValidationError
		if errors.As(err, &vErr) {
			report.Violations = vErr.Violations
		}
		v.logger.Warn("Verification found schema violations",
			zap.Int("rows", report.RowCount),
			zap.Int("violations", len(report.Violations)))
	} else {
		report.Valid = true
	}

	report.Duration = time.Since(start)
	return report
}

// VerifyFile reads a cleaned table from disk and validates it. The returned
// error is structural only; schema violations land in the report.
func (v *Verifier) VerifyFile(path string) (*VerificationReport, error) {
	ds, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}

	report := v.VerifyDataset(ds)
	report.Path = path
	return report, nil
}
