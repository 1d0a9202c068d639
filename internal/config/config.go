package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store backends
const (
	StoreBackendBolt     = "bolt"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	Ledger    LedgerConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StoreConfig struct {
	Backend string
	Path    string
	Bucket  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	URL string
}

type SchedulerConfig struct {
	ResetCron string
	Timezone  string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type LedgerConfig struct {
	DuesAmount string
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("STORE_BACKEND", StoreBackendBolt)
	viper.SetDefault("BOLT_PATH", "data/ledger.db")
	viper.SetDefault("BOLT_BUCKET", "snapshots")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("DUES_AMOUNT", "50")
	// First day of every month at midnight (with seconds field)
	viper.SetDefault("RESET_CRON", "0 0 0 1 * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "America/Sao_Paulo")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	// The env keys are flat, so the nested sections are assembled field by
	// field instead of through viper.Unmarshal.
	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Store: StoreConfig{
			Backend: viper.GetString("STORE_BACKEND"),
			Path:    viper.GetString("BOLT_PATH"),
			Bucket:  viper.GetString("BOLT_BUCKET"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Database: DatabaseConfig{
			URL: viper.GetString("DATABASE_URL"),
		},
		Scheduler: SchedulerConfig{
			ResetCron: viper.GetString("RESET_CRON"),
			Timezone:  viper.GetString("SCHEDULER_TIMEZONE"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Ledger: LedgerConfig{
			DuesAmount: viper.GetString("DUES_AMOUNT"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Store.Backend {
	case StoreBackendBolt:
		if c.Store.Path == "" {
			return fmt.Errorf("BOLT_PATH is required for the bolt backend")
		}
	case StoreBackendRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis backend")
		}
	case StoreBackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case StoreBackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	// Validate dues amount
	dues, err := decimal.NewFromString(c.Ledger.DuesAmount)
	if err != nil {
		return fmt.Errorf("DUES_AMOUNT must be a valid decimal: %w", err)
	}
	if dues.IsNegative() {
		return fmt.Errorf("DUES_AMOUNT must not be negative")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetDuesAmount returns the fixed per-cycle dues amount as decimal
func (c *Config) GetDuesAmount() decimal.Decimal {
	dues, _ := decimal.NewFromString(c.Ledger.DuesAmount)
	return dues
}
