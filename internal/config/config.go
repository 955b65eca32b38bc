// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go-simpler.org/env"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
)

// Config holds every setting read from the environment.
type Config struct {
	Host  string `env:"APP_HOST" default:"0.0.0.0"`
	Port  int    `env:"APP_PORT" default:"8000"`
	Debug bool   `env:"DEBUG" default:"false"`

	LogLevel      string `env:"LOG_LEVEL" default:"info"`
	LogDir        string `env:"LOG_DIR" default:"logs"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" default:"5"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" default:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" default:"30"`

	DBHost            string        `env:"DB_HOST" default:"localhost"`
	DBPort            int           `env:"DB_PORT" default:"5432"`
	DBName            string        `env:"DB_NAME" default:"blogpost_db"`
	DBUser            string        `env:"DB_USER" default:"postgres"`
	DBPassword        string        `env:"DB_PASSWORD" default:"postgres"`
	DBSSLMode         string        `env:"DB_SSLMODE" default:"disable"`
	DBPoolMin         int           `env:"DB_POOL_MIN" default:"1"`
	DBPoolMax         int           `env:"DB_POOL_MAX" default:"20"`
	DBAcquireTimeout  time.Duration `env:"DB_ACQUIRE_TIMEOUT" default:"5s"`
	DBConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS" default:"5"`

	MetricsInterval time.Duration `env:"METRICS_INTERVAL" default:"5s"`
}

// Load reads .env when present, applies environment variables over the
// defaults and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.DBPort < 1 || cfg.DBPort > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", cfg.DBPort)
	}
	if cfg.DBHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if cfg.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if cfg.DBPoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must not be negative")
	}
	if cfg.DBPoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if cfg.DBPoolMin > cfg.DBPoolMax {
		return fmt.Errorf("DB_POOL_MIN (%d) must not exceed DB_POOL_MAX (%d)", cfg.DBPoolMin, cfg.DBPoolMax)
	}
	if cfg.DBAcquireTimeout <= 0 {
		return fmt.Errorf("DB_ACQUIRE_TIMEOUT must be positive")
	}
	if cfg.DBConnectAttempts < 1 {
		return fmt.Errorf("DB_CONNECT_ATTEMPTS must be at least 1")
	}
	if cfg.MetricsInterval <= 0 {
		return fmt.Errorf("METRICS_INTERVAL must be positive")
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", cfg.LogLevel)
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Database returns the data layer settings.
func (c *Config) Database() database.Config {
	return database.Config{
		Host:            c.DBHost,
		Port:            c.DBPort,
		User:            c.DBUser,
		Password:        c.DBPassword,
		DBName:          c.DBName,
		SSLMode:         c.DBSSLMode,
		MinConns:        int32(c.DBPoolMin),
		MaxConns:        int32(c.DBPoolMax),
		AcquireTimeout:  c.DBAcquireTimeout,
		ConnectAttempts: c.DBConnectAttempts,
		RetryDelay:      2 * time.Second,
	}
}
