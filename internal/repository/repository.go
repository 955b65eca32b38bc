// Package repository implements all database queries for blogs, domains,
// events, registrations and the admin aggregate. It uses pgx directly (no ORM)
// through the database package's executor, which owns the transaction and
// connection lifecycle of every statement.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrNotEligible is returned when a conditional mutation affected no row:
// the row is missing or its current state does not allow the change.
var ErrNotEligible = errors.New("not found or not eligible")

// ErrReferentialConflict is returned when a domain still has dependents.
// The concrete error is a *ConflictError carrying the counts.
var ErrReferentialConflict = errors.New("domain in use")

// ErrDuplicateRegistration is returned when the same identity registers twice for an event.
var ErrDuplicateRegistration = errors.New("already registered for this event")

// ErrDuplicateDomain is returned when a domain name is already taken.
var ErrDuplicateDomain = errors.New("domain already exists")

// ErrDomainNotFound is returned when an event references a domain id that does not exist.
var ErrDomainNotFound = errors.New("domain not found")

// ConflictError reports the dependents that block a domain delete.
type ConflictError struct {
	DomainID int64
	Blogs    int64
	Events   int64
}

// Count returns the total number of dependents.
func (e *ConflictError) Count() int64 {
	return e.Blogs + e.Events
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot delete domain ID %d because %d blog(s) and %d event(s) are attached",
		e.DomainID, e.Blogs, e.Events)
}

func (e *ConflictError) Is(target error) bool { return target == ErrReferentialConflict }

// fail logs err at the severity its kind calls for and wraps it with op.
// Expected outcomes are logged at info, store failures at error.
func fail(op string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotEligible):
		log.Info().Str("op", op).Msg(err.Error())
	case errors.Is(err, ErrReferentialConflict),
		errors.Is(err, ErrDuplicateRegistration),
		errors.Is(err, ErrDuplicateDomain),
		errors.Is(err, ErrDomainNotFound):
		log.Warn().Str("op", op).Msg(err.Error())
	default:
		log.Error().Err(err).Str("op", op).Msg("Database operation failed")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// containsPattern turns s into an ILIKE pattern matching it as a literal substring.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// Repositories bundles every repository over one executor.
type Repositories struct {
	Domains       *DomainRepository
	Blogs         *BlogRepository
	Events        *EventRepository
	Registrations *RegistrationRepository
	Admin         *AdminRepository
}

// New constructs every repository over exec.
func New(exec *database.Executor) *Repositories {
	return &Repositories{
		Domains:       NewDomainRepository(exec),
		Blogs:         NewBlogRepository(exec),
		Events:        NewEventRepository(exec),
		Registrations: NewRegistrationRepository(exec),
		Admin:         NewAdminRepository(exec),
	}
}
