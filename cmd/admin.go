package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
)

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Create any missing tables and report database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			pool, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			exec := database.NewExecutor(pool)
			if !database.Repair(cmd.Context(), exec) {
				return fmt.Errorf("database repair failed")
			}
			return printHealth(os.Stdout, database.CheckHealth(cmd.Context(), exec))
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Print the database health report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := setup()
			if err != nil {
				return err
			}
			defer closer.Close()

			return runHealth(cmd.Context(), cfg.Database(), os.Stdout)
		},
	}
}

// runHealth opens the pool without creating anything and prints the report.
// A missing database is reported as an error.
func runHealth(ctx context.Context, dbCfg database.Config, w io.Writer) error {
	pool, err := database.NewPool(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("database %q: %w", dbCfg.DBName, err)
	}
	defer pool.Close()

	return printHealth(w, database.CheckHealth(ctx, database.NewExecutor(pool)))
}

// printHealth writes the report and fails unless the database is healthy.
func printHealth(w io.Writer, report *database.HealthReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	if report.Status != database.HealthHealthy {
		return fmt.Errorf("database is %s", report.Status)
	}
	return nil
}
