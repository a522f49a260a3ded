// pkg/source/snowflake.go
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"

	"github.com/marketops/customer-quality/pkg/config"
	"github.com/marketops/customer-quality/pkg/dataset"
)

// SnowflakeSource reads the raw customer table from a Snowflake warehouse
type SnowflakeSource struct {
	db     *sqlx.DB
	cfg    *config.SnowflakeConfig
	logger *zap.Logger
}

// NewSnowflakeSource creates and verifies a Snowflake-backed source
func NewSnowflakeSource(ctx context.Context, cfg *config.SnowflakeConfig) (*SnowflakeSource, error) {
	logger := zap.L().Named("snowflake-source")

	logger.Info("Connecting to Snowflake",
		zap.String("account", cfg.Account),
		zap.String("database", cfg.Database),
		zap.String("warehouse", cfg.Warehouse))

	db, err := sqlx.Open("snowflake", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Snowflake connection: %w", err)
	}

	ApplyConnectionSettings(
		db.DB,
		cfg.MaxOpenConns,
		cfg.MaxIdleConns,
		cfg.ConnMaxLifetime,
		cfg.ConnMaxIdleTime,
	)

	if err := PingWithTimeout(ctx, db.DB, 10*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to Snowflake: %w", err)
	}

	return &SnowflakeSource{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Name identifies the source kind
func (s *SnowflakeSource) Name() string {
	return "snowflake"
}

// Fetch runs the configured query and drains the full result set
func (s *SnowflakeSource) Fetch(ctx context.Context) (*dataset.Dataset, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.db.QueryxContext(queryCtx, s.cfg.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to run source query: %w", err)
	}

	ds, err := scanDataset(rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Fetched raw rows from Snowflake",
		zap.Int("rows", ds.RowCount()))
	return ds, nil
}

// Close closes the connection pool
func (s *SnowflakeSource) Close() error {
	return s.db.Close()
}
