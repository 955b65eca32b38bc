package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/Shivanand-hulikatti/resource-hub/internal/metrics"
)

// Kind classifies a statement for metrics. Callers pass it explicitly
// rather than having it parsed from the statement text.
type Kind int

const (
	KindNone Kind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
	KindDDL
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	case KindDDL:
		return "DDL"
	default:
		return "NONE"
	}
}

// Row is a single result row keyed by column name.
type Row = map[string]any

// RowToMap scans a row into a Row.
func RowToMap(row pgx.CollectableRow) (Row, error) {
	return pgx.RowToMap(row)
}

// Scope runs statements. *Executor gives each statement its own transaction;
// *Tx runs them inside one shared transaction.
type Scope interface {
	run(ctx context.Context, kind Kind, fn func(tx pgx.Tx) error) error
}

// Executor checks a connection out of the pool for every statement, runs it
// in an implicit transaction, commits on success and rolls back on error.
// The connection is released on every exit path.
type Executor struct {
	pool *Pool
}

// NewExecutor creates an executor over pool.
func NewExecutor(pool *Pool) *Executor {
	return &Executor{pool: pool}
}

// Pool returns the underlying connection pool.
func (e *Executor) Pool() *Pool {
	return e.pool
}

func (e *Executor) run(ctx context.Context, kind Kind, fn func(tx pgx.Tx) error) error {
	start := time.Now()
	err := e.withTx(ctx, func(tx pgx.Tx) error {
		if err := fn(tx); err != nil {
			return &DataAccessError{Kind: kind, Err: err}
		}
		return nil
	})
	observe(kind, start, err)
	return err
}

// WithTx runs fn inside a single transaction on one pooled connection.
// Statements issued through tx are metered individually. An error returned
// by fn rolls the transaction back and is returned unchanged.
func (e *Executor) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	return e.withTx(ctx, func(tx pgx.Tx) error {
		return fn(&Tx{tx: tx})
	})
}

func (e *Executor) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return &DataAccessError{Kind: KindNone, Err: err}
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return &DataAccessError{Kind: KindNone, Err: err}
	}
	return nil
}

// Tx is a transaction opened by Executor.WithTx.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) run(ctx context.Context, kind Kind, fn func(tx pgx.Tx) error) error {
	start := time.Now()
	err := fn(t.tx)
	if err != nil {
		err = &DataAccessError{Kind: kind, Err: err}
	}
	observe(kind, start, err)
	return err
}

func observe(kind Kind, start time.Time, err error) {
	label := kind.String()
	metrics.DBQueryTotal.WithLabelValues(label).Inc()
	metrics.DBQueryDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(label).Inc()
	}
}

// QueryMany returns every row the statement produces, scanned by scan.
func QueryMany[T any](ctx context.Context, s Scope, kind Kind, scan pgx.RowToFunc[T], sql string, args ...any) ([]T, error) {
	var out []T
	err := s.run(ctx, kind, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, scan)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QueryOne returns the first row the statement produces, or nil when it
// produces none. An absent row is not an error.
func QueryOne[T any](ctx context.Context, s Scope, kind Kind, scan pgx.RowToFunc[T], sql string, args ...any) (*T, error) {
	var (
		out   T
		found bool
	)
	err := s.run(ctx, kind, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, scan)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// Insert runs an INSERT ... RETURNING statement and returns the created row,
// or nil when the statement returned nothing (e.g. ON CONFLICT DO NOTHING).
func Insert[T any](ctx context.Context, s Scope, scan pgx.RowToFunc[T], sql string, args ...any) (*T, error) {
	return QueryOne(ctx, s, KindInsert, scan, sql, args...)
}

// Mutate runs an UPDATE or DELETE statement and returns the affected row count.
func Mutate(ctx context.Context, s Scope, kind Kind, sql string, args ...any) (int64, error) {
	var affected int64
	err := s.run(ctx, kind, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	return affected, err
}

// Exec runs a statement whose result is not needed, such as DDL.
func Exec(ctx context.Context, s Scope, kind Kind, sql string, args ...any) error {
	_, err := Mutate(ctx, s, kind, sql, args...)
	return err
}
