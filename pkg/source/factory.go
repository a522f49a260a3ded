// pkg/source/factory.go
package source

import (
	"context"
	"fmt"

	"github.com/marketops/customer-quality/pkg/config"
)

// New creates the source the configuration asks for
func New(ctx context.Context, cfg *config.Config) (Source, error) {
	switch cfg.SourceKind {
	case config.SourceCSV:
		return NewCSVSource(cfg.InputPath), nil
	case config.SourcePostgres:
		src, err := NewPostgresSource(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres source: %w", err)
		}
		return src, nil
	case config.SourceSnowflake:
		src, err := NewSnowflakeSource(ctx, cfg.Snowflake)
		if err != nil {
			return nil, fmt.Errorf("failed to create snowflake source: %w", err)
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.SourceKind)
	}
}
