// pkg/source/csvfile.go
package source

import (
	"context"

	"github.com/marketops/customer-quality/pkg/dataset"
)

// CSVSource reads the raw table from a delimited file on disk
type CSVSource struct {
	path string
}

// NewCSVSource creates a source backed by the file at path
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name identifies the source kind
func (s *CSVSource) Name() string {
	return "csv"
}

// Fetch loads the file into memory. The read is synchronous; callers needing
// cancellation wrap the call in their own timeout boundary.
func (s *CSVSource) Fetch(_ context.Context) (*dataset.Dataset, error) {
	return dataset.ReadFile(s.path)
}

// Close is a no-op; the file handle never outlives Fetch
func (s *CSVSource) Close() error {
	return nil
}
