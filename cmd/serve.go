package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/handler"
	"github.com/Shivanand-hulikatti/resource-hub/internal/metrics"
	"github.com/Shivanand-hulikatti/resource-hub/internal/repository"
	"github.com/Shivanand-hulikatti/resource-hub/internal/service"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("version", version).
		Str("addr", cfg.Addr()).
		Str("database", cfg.DBName).
		Msg("Starting Resource Hub")

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer pool.Close()

	exec := database.NewExecutor(pool)
	if err := database.EnsureSchema(ctx, exec); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	repos := repository.New(exec)
	h := handler.New(
		service.NewBlogService(repos.Blogs),
		service.NewDomainService(repos.Domains),
		service.NewEventService(repos.Events, repos.Registrations),
		service.NewAdminService(repos.Blogs, repos.Admin),
	)

	sampler := metrics.NewSampler(pool, cfg.MetricsInterval)
	sampler.Start(ctx)
	defer sampler.Stop()

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.NewRouter(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Block until SIGINT/SIGTERM or a listener failure.
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("Server error")
			return err
		}
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
