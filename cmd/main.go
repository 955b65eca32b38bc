// cmd/main.go is the application entry point.
// It builds the CLI; `serve` (the default) wires together all layers and
// starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/resource-hub/internal/config"
	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "resource-hub",
		Short:        "Resource Hub - blogs, events and registrations API",
		Long:         `Resource Hub serves a moderated blog catalogue, technical events and event registrations backed by PostgreSQL.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newRepairCmd(),
		newHealthCmd(),
		newLogsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("resource-hub %s (commit: %s, built: %s)\n", version, commit, date)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and installs the global logger.
func setup() (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	closer := logging.Apply(logging.Options{
		Level:      cfg.LogLevel,
		Debug:      cfg.Debug,
		Dir:        cfg.LogDir,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	return cfg, closer, nil
}

// connect creates the database if needed and opens the pool. Only serve and
// repair use it; health must not write to the store.
func connect(ctx context.Context, cfg *config.Config) (*database.Pool, error) {
	dbCfg := cfg.Database()
	if err := database.EnsureStoreExists(ctx, dbCfg); err != nil {
		log.Warn().Err(err).Str("database", dbCfg.DBName).Msg("Could not verify database exists")
	}
	return database.NewPool(ctx, dbCfg)
}
