// cmd/customer-quality/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/marketops/customer-quality/pkg/cleaner"
	"github.com/marketops/customer-quality/pkg/config"
	"github.com/marketops/customer-quality/pkg/ingress"
	"github.com/marketops/customer-quality/pkg/schema"
	"github.com/marketops/customer-quality/pkg/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("Run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	opts := []cleaner.Option{cleaner.WithDatasetName(cfg.DatasetName)}

	if cfg.AuditEnabled {
		db, err := sqlx.Open("postgres", cfg.Postgres.ConnectionString())
		if err != nil {
			return fmt.Errorf("failed to open audit database: %w", err)
		}
		defer db.Close()

		store, err := cleaner.NewAuditStore(db, logger.Named("audit"))
		if err != nil {
			return err
		}
		opts = append(opts, cleaner.WithAuditStore(store))
	}

	pipeline := cleaner.New(logger.Named("cleaner"), opts...)

	runnerOpts := []ingress.RunnerOption{
		ingress.WithPoolSize(cfg.WorkerPoolSize),
		ingress.WithRetryDelay(cfg.RetryDelay),
	}
	if cfg.VerifyOutput {
		verifier := ingress.NewVerifier(schema.CustomerSchema(), logger.Named("verifier"))
		runnerOpts = append(runnerOpts, ingress.WithVerifier(verifier))
	}
	runner := ingress.NewRunner(pipeline, logger.Named("ingress"), runnerOpts...)

	// A csv input path may be a glob; several matches become a batch run
	// with the output path treated as a directory.
	if cfg.SourceKind == config.SourceCSV {
		matches, err := filepath.Glob(cfg.InputPath)
		if err != nil {
			return fmt.Errorf("invalid input pattern %q: %w", cfg.InputPath, err)
		}
		if len(matches) > 1 {
			return runBatch(ctx, cfg, runner, matches)
		}
		if len(matches) == 1 {
			cfg.InputPath = matches[0]
		}
	}

	src, err := source.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	report, verification, err := runner.RunSource(ctx, src, cfg.OutputPath)
	if err != nil {
		return err
	}

	logger.Info("Pipeline finished",
		zap.Int("rows_before", report.RowsBefore),
		zap.Int("rows_after", report.RowsAfter),
		zap.Int("rows_removed", report.RowsRemoved()))

	if verification != nil && !verification.Valid {
		return fmt.Errorf("cleaned output failed schema validation with %d violation(s)",
			len(verification.Violations))
	}
	return nil
}

func runBatch(ctx context.Context, cfg *config.Config, runner *ingress.Runner, inputs []string) error {
	jobs := make([]ingress.FileJob, 0, len(inputs))
	for _, input := range inputs {
		output := filepath.Join(cfg.OutputPath, "cleaned_"+filepath.Base(input))
		jobs = append(jobs, ingress.NewFileJob(input, output).WithMaxRetries(cfg.RetryAttempts))
	}

	summary := runner.RunFiles(ctx, jobs)
	if summary.JobsFailed > 0 {
		return fmt.Errorf("%d of %d jobs failed", summary.JobsFailed, len(jobs))
	}
	return nil
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
