// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Source kinds for raw customer data
const (
	SourceCSV       = "csv"
	SourcePostgres  = "postgres"
	SourceSnowflake = "snowflake"
)

// Config represents the application configuration
type Config struct {
	// Pipeline I/O
	SourceKind  string
	InputPath   string
	OutputPath  string
	DatasetName string

	// Batch settings
	WorkerPoolSize int
	RetryAttempts  int
	RetryDelay     time.Duration

	// Audit trail and post-clean verification
	AuditEnabled bool
	VerifyOutput bool

	// Logging
	LogLevel  string
	LogFormat string

	// Database connections, loaded only when a source or the audit
	// trail needs them
	Postgres  *PostgresConfig
	Snowflake *SnowflakeConfig
}

// Load loads configuration from the environment, reading a .env file first
// when one is present
func Load() (*Config, error) {
	// A missing .env file is fine; explicit environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		SourceKind:  getEnv("SOURCE_KIND", SourceCSV),
		InputPath:   getEnv("INPUT_PATH", "data/raw_customers.csv"),
		OutputPath:  getEnv("OUTPUT_PATH", "data/cleaned_customers.csv"),
		DatasetName: getEnv("DATASET_NAME", "customers"),

		WorkerPoolSize: getEnvAsInt("WORKER_POOL_SIZE", 0), // 0 means use runtime.NumCPU()
		RetryAttempts:  getEnvAsInt("RETRY_ATTEMPTS", 3),
		RetryDelay:     time.Duration(getEnvAsInt("RETRY_DELAY_MS", 1000)) * time.Millisecond,

		AuditEnabled: getEnvAsBool("AUDIT_ENABLED", false),
		VerifyOutput: getEnvAsBool("VERIFY_OUTPUT", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if cfg.SourceKind == SourcePostgres || cfg.AuditEnabled {
		pgConfig, err := LoadPostgresConfig()
		if err != nil {
			return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
		}
		cfg.Postgres = pgConfig
	}

	if cfg.SourceKind == SourceSnowflake {
		snowConfig, err := LoadSnowflakeConfig()
		if err != nil {
			return nil, errors.New("failed to load Snowflake configuration: " + err.Error())
		}
		cfg.Snowflake = snowConfig
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	switch c.SourceKind {
	case SourceCSV, SourcePostgres, SourceSnowflake:
	default:
		return fmt.Errorf("unknown source kind %q", c.SourceKind)
	}

	if c.SourceKind == SourceCSV && c.InputPath == "" {
		return errors.New("input path is required for the csv source")
	}

	if c.OutputPath == "" {
		return errors.New("output path is required")
	}

	if c.RetryAttempts < 0 {
		return errors.New("retry attempts cannot be negative")
	}

	if c.SourceKind == SourcePostgres && c.Postgres == nil {
		return errors.New("postgreSQL configuration is required for the postgres source")
	}

	if c.SourceKind == SourceSnowflake && c.Snowflake == nil {
		return errors.New("snowflake configuration is required for the snowflake source")
	}

	if c.AuditEnabled && c.Postgres == nil {
		return errors.New("postgreSQL configuration is required when auditing is enabled")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
