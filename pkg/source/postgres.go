// pkg/source/postgres.go
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/marketops/customer-quality/pkg/config"
	"github.com/marketops/customer-quality/pkg/dataset"
)

// PostgresSource reads the raw customer table from a PostgreSQL database
type PostgresSource struct {
	db     *sqlx.DB
	cfg    *config.PostgresConfig
	logger *zap.Logger
}

// NewPostgresSource creates and verifies a PostgreSQL-backed source
func NewPostgresSource(ctx context.Context, cfg *config.PostgresConfig) (*PostgresSource, error) {
	logger := zap.L().Named("postgres-source")

	logger.Info("Connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("table", cfg.Table))

	db, err := sqlx.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL connection: %w", err)
	}

	ApplyConnectionSettings(
		db.DB,
		cfg.MaxOpenConns,
		cfg.MaxIdleConns,
		cfg.ConnMaxLifetime,
		cfg.ConnMaxIdleTime,
	)

	if err := PingWithTimeout(ctx, db.DB, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return &PostgresSource{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Name identifies the source kind
func (s *PostgresSource) Name() string {
	return "postgres"
}

// Fetch reads the configured table in full
func (s *PostgresSource) Fetch(ctx context.Context) (*dataset.Dataset, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(s.cfg.Table))
	rows, err := s.db.QueryxContext(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", s.cfg.Table, err)
	}

	ds, err := scanDataset(rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Fetched raw rows from PostgreSQL",
		zap.String("table", s.cfg.Table),
		zap.Int("rows", ds.RowCount()))
	return ds, nil
}

// Close closes the connection pool
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
