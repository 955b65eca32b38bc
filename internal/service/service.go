// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

// ErrInvalidInput wraps every validation failure.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// DomainStore is the persistence for domains.
type DomainStore interface {
	List(ctx context.Context) ([]model.Domain, error)
	GetByID(ctx context.Context, id int64) (*model.Domain, error)
	Create(ctx context.Context, name string) (*model.Domain, error)
	Update(ctx context.Context, id int64, name string) (*model.Domain, error)
	Delete(ctx context.Context, id int64) (*model.Domain, error)
}

// BlogStore is the persistence for blogs and their moderation state.
type BlogStore interface {
	Create(ctx context.Context, req model.CreateBlogRequest) (*model.Blog, error)
	GetByID(ctx context.Context, id int64) (*model.Blog, error)
	ListApproved(ctx context.Context, filter model.BlogFilter) ([]model.Blog, error)
	ListPending(ctx context.Context) ([]model.Blog, error)
	Search(ctx context.Context, filter model.BlogFilter) ([]model.Blog, error)
	Update(ctx context.Context, id int64, patch model.BlogPatch) (*model.Blog, error)
	Approve(ctx context.Context, id int64) (*model.Blog, error)
	Reject(ctx context.Context, id int64, reason string) (*model.Blog, error)
	Delete(ctx context.Context, id int64) (*model.Blog, error)
}

// EventStore is the persistence for events.
type EventStore interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	Update(ctx context.Context, id int64, patch model.EventPatch) (*model.Event, error)
	Delete(ctx context.Context, id int64) (*model.Event, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// RegistrationStore is the persistence for event registrations.
type RegistrationStore interface {
	Register(ctx context.Context, eventID int64, req model.RegisterRequest) (*model.Registration, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error)
}

// AdminStore serves dashboard totals and database diagnostics.
type AdminStore interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	DatabaseHealth(ctx context.Context) *database.HealthReport
	Repair(ctx context.Context) bool
}

// trimPtr trims *s in place and reports whether a given value ended up empty.
func trimPtr(s *string) (empty bool) {
	if s == nil {
		return false
	}
	*s = strings.TrimSpace(*s)
	return *s == ""
}

func validID(id int64, what string) error {
	if id <= 0 {
		return invalid("%s id must be a positive integer", what)
	}
	return nil
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
