// pkg/source/source.go
package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/marketops/customer-quality/pkg/dataset"
)

// Source produces one raw customer table per fetch. Implementations own
// their underlying resources; callers close the source after use.
type Source interface {
	// Name identifies the source kind for logs
	Name() string

	// Fetch reads the complete raw table into memory
	Fetch(ctx context.Context) (*dataset.Dataset, error)

	// Close releases the underlying resources
	Close() error
}

// PingWithTimeout attempts to ping a database with a timeout
func PingWithTimeout(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- db.PingContext(pingCtx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-pingCtx.Done():
		return fmt.Errorf("ping timed out after %v: %w", timeout, pingCtx.Err())
	}
}

// ApplyConnectionSettings configures database connection pool settings
func ApplyConnectionSettings(db *sql.DB, maxOpen, maxIdle int, maxLifetime, maxIdleTime time.Duration) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}
	if maxIdleTime > 0 {
		db.SetConnMaxIdleTime(maxIdleTime)
	}
}

// scanDataset drains a result set into an in-memory dataset, rendering every
// database value back to its textual cell form
func scanDataset(rows *sqlx.Rows) (*dataset.Dataset, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	ds := dataset.New(cols)
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", ds.RowCount(), err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			row[i] = cellString(v)
		}
		ds.AppendRow(row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating rows: %w", err)
	}
	return ds, nil
}

// cellString converts a scanned database value to its cell representation.
// SQL NULL becomes the empty cell, matching the dataset's null convention.
func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02")
	case float64:
		return dataset.FormatNumber(val)
	case int64:
		return fmt.Sprintf("%d", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
