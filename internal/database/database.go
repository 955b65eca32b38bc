// Package database owns the PostgreSQL data layer: the connection pool, the
// schema bootstrap and repair, and the query executor the repositories build on.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Config holds PostgreSQL connection and pool settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MinConns        int32
	MaxConns        int32
	AcquireTimeout  time.Duration
	ConnectAttempts int
	RetryDelay      time.Duration
}

// DSN builds a libpq-compatible connection string for the configured database.
func (c Config) DSN() string {
	return c.dsnFor(c.DBName)
}

// MaintenanceDSN points at the server's "postgres" database, used to create
// the application database when it is missing.
func (c Config) MaintenanceDSN() string {
	return c.dsnFor("postgres")
}

func (c Config) dsnFor(dbname string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, dbname, c.SSLMode,
	)
}

// Pool is the bounded connection pool shared by every repository.
type Pool struct {
	*pgxpool.Pool
	acquireTimeout time.Duration
}

// NewPool creates and validates the connection pool. It retries to
// accommodate a store that is still starting; when every attempt fails the
// error wraps ErrStoreUnavailable and the caller must not start serving.
func NewPool(ctx context.Context, cfg Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	return NewPoolWithConfig(ctx, poolCfg, cfg)
}

// NewPoolWithConfig is NewPool for an already parsed pgx configuration.
func NewPoolWithConfig(ctx context.Context, poolCfg *pgxpool.Config, cfg Config) (*Pool, error) {
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 20
	}
	if cfg.MinConns < 0 || cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("invalid pool size min=%d max=%d", cfg.MinConns, cfg.MaxConns)
	}
	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	var (
		pool *pgxpool.Pool
		err  error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
			pool = nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Int("of", attempts).Msg("db connect attempt failed")
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, ctx.Err())
			case <-time.After(delay):
			}
		}
	}
	if pool == nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	log.Info().
		Int32("min_conns", poolCfg.MinConns).
		Int32("max_conns", poolCfg.MaxConns).
		Str("database", poolCfg.ConnConfig.Database).
		Msg("Database connection pool initialized")
	return &Pool{Pool: pool, acquireTimeout: cfg.AcquireTimeout}, nil
}

// Acquire checks a connection out of the pool. When the pool is at its
// maximum it waits up to the configured acquire timeout and then fails with
// ErrPoolExhausted. The caller must Release the connection.
func (p *Pool) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if p.acquireTimeout <= 0 {
		conn, err := p.Pool.Acquire(ctx)
		if err != nil {
			return nil, &DataAccessError{Kind: KindNone, Err: err}
		}
		return conn, nil
	}

	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()
	conn, err := p.Pool.Acquire(acquireCtx)
	if err != nil {
		// Only the acquire timeout counts as exhaustion; a caller deadline does not.
		if errors.Is(acquireCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			st := p.Stat()
			return nil, fmt.Errorf("%w: waited %s, %d of %d connections in use", ErrPoolExhausted,
				p.acquireTimeout, st.AcquiredConns(), st.MaxConns())
		}
		return nil, &DataAccessError{Kind: KindNone, Err: err}
	}
	return conn, nil
}

// ActiveCount returns the number of connections currently checked out.
func (p *Pool) ActiveCount() int32 {
	return p.Stat().AcquiredConns()
}

// IdleCount returns the number of idle connections held by the pool.
func (p *Pool) IdleCount() int32 {
	return p.Stat().IdleConns()
}

// Close releases every pooled connection.
func (p *Pool) Close() {
	p.Pool.Close()
	log.Info().Msg("Database connection pool closed")
}
