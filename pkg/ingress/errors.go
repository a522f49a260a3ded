// pkg/ingress/errors.go
package ingress

import (
	"errors"
	"fmt"

	"github.com/marketops/customer-quality/pkg/schema"
)

// FailureKind classifies a job failure for retry decisions
type FailureKind int

const (
	// FailureStructural is an I/O-level failure (unreadable source,
	// unwritable sink); worth retrying
	FailureStructural FailureKind = iota
	// FailureSchema means the cleaned output still violated the schema;
	// retrying the same input cannot fix it
	FailureSchema
)

// String returns a string representation of the failure kind
func (k FailureKind) String() string {
	switch k {
	case FailureStructural:
		return "Structural"
	case FailureSchema:
		return "Schema"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Classify maps an error to its failure kind
func Classify(err error) FailureKind {
	var vErr *schema.ValidationError
	if errors.As(err, &vErr) {
		return FailureSchema
	}
	return FailureStructural
}

// Retryable reports whether re-running the job could succeed
func Retryable(err error) bool {
	return Classify(err) == FailureStructural
}
