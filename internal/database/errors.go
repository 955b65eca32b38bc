package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrPoolExhausted is returned when every pooled connection is in use and
// none was released within the acquire timeout.
var ErrPoolExhausted = errors.New("connection pool exhausted")

// ErrStoreUnavailable is returned when the pool cannot reach the store at startup.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrDataAccess matches every *DataAccessError via errors.Is.
var ErrDataAccess = errors.New("data access error")

// DataAccessError reports a statement that failed. The transaction it ran in
// has already been rolled back.
type DataAccessError struct {
	Kind Kind
	Err  error
}

func (e *DataAccessError) Error() string {
	if e.Kind == KindNone {
		return fmt.Sprintf("data access: %v", e.Err)
	}
	return fmt.Sprintf("data access (%s): %v", e.Kind, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

func (e *DataAccessError) Is(target error) bool { return target == ErrDataAccess }

// IsUniqueViolation reports whether err was caused by a unique constraint.
// When constraint is non-empty the violated constraint name must match too.
func IsUniqueViolation(err error, constraint string) bool {
	return hasCode(err, pgerrcode.UniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err was caused by a foreign key
// constraint, optionally restricted to the named constraint.
func IsForeignKeyViolation(err error, constraint string) bool {
	return hasCode(err, pgerrcode.ForeignKeyViolation, constraint)
}

func hasCode(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
