// pkg/cleaner/audit.go
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/marketops/customer-quality/pkg/model"
)

// AuditStore persists cleaning operations to a tracking table so every
// repair and removal stays attributable after the run
type AuditStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAuditStore creates an AuditStore and ensures the tracking table exists
func NewAuditStore(db *sqlx.DB, logger *zap.Logger) (*AuditStore, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	store := &AuditStore{
		db:     db,
		logger: logger,
	}

	if err := store.ensureAuditTable(); err != nil {
		return nil, fmt.Errorf("failed to setup audit table: %w", err)
	}

	return store, nil
}

// ensureAuditTable ensures the customer_cleaning_audit tracking table exists
func (s *AuditStore) ensureAuditTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS public.customer_cleaning_audit (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			dataset_name TEXT NOT NULL,
			column_name TEXT NOT NULL,
			row_index INTEGER NOT NULL,
			original_value TEXT,
			new_value TEXT,
			operation TEXT NOT NULL,
			reason TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := s.db.ExecContext(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create tracking table: %w", err)
	}

	s.logger.Info("Ensured customer_cleaning_audit table exists")
	return nil
}

// Record batch inserts the operations of one cleaning run in a single
// transaction
func (s *AuditStore) Record(ctx context.Context, runID string, operations []model.CleaningOperation) error {
	if len(operations) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("Failed to rollback transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO public.customer_cleaning_audit
		(run_id, dataset_name, column_name, row_index, original_value,
		 new_value, operation, reason, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, op := range operations {
		_, err = stmt.ExecContext(ctx,
			runID,
			op.Dataset,
			op.ColumnName,
			op.RowIndex,
			op.OriginalValue,
			op.NewValue,
			op.Operation,
			op.Reason,
			op.AppliedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cleaning operation: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Recorded cleaning operations",
		zap.String("run_id", runID),
		zap.Int("count", len(operations)))
	return nil
}
