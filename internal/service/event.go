package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
	"github.com/Shivanand-hulikatti/resource-hub/internal/repository"
)

// EventService orchestrates event-related business operations.
type EventService struct {
	events        EventStore
	registrations RegistrationStore
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, registrations RegistrationStore) *EventService {
	return &EventService{events: events, registrations: registrations}
}

// CreateEvent validates the request and delegates to the repository.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, invalid("title is required")
	}
	if req.EventDate.IsZero() {
		return nil, invalid("event_date is required")
	}
	if trimPtr(req.DomainName) {
		return nil, invalid("domain_name cannot be empty")
	}
	if req.DomainName == nil {
		if req.DomainID == nil {
			return nil, invalid("domain_id or domain_name is required")
		}
		if err := validID(*req.DomainID, "domain"); err != nil {
			return nil, err
		}
	}
	trimPtr(req.Description)
	trimPtr(req.EventType)
	return s.events.Create(ctx, req)
}

// ListEvents returns events, latest event date first.
func (s *EventService) ListEvents(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	return s.events.List(ctx, filter)
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	if err := validID(id, "event"); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, id)
}

// UpdateEvent applies a partial update.
func (s *EventService) UpdateEvent(ctx context.Context, id int64, patch model.EventPatch) (*model.Event, error) {
	if err := validID(id, "event"); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, invalid("no fields to update")
	}
	if trimPtr(patch.Title) {
		return nil, invalid("title cannot be empty")
	}
	if trimPtr(patch.DomainName) {
		return nil, invalid("domain_name cannot be empty")
	}
	if patch.DomainID != nil {
		if err := validID(*patch.DomainID, "domain"); err != nil {
			return nil, err
		}
	}
	if patch.EventDate != nil && patch.EventDate.IsZero() {
		return nil, invalid("event_date cannot be empty")
	}
	trimPtr(patch.Description)
	trimPtr(patch.EventType)
	return s.events.Update(ctx, id, patch)
}

// DeleteEvent removes an event and its registrations.
func (s *EventService) DeleteEvent(ctx context.Context, id int64) (*model.Event, error) {
	if err := validID(id, "event"); err != nil {
		return nil, err
	}
	return s.events.Delete(ctx, id)
}

// Register validates the registrant identity and records the registration.
// A registrant is either a user_id or a user_name with an email.
func (s *EventService) Register(ctx context.Context, eventID int64, req model.RegisterRequest) (*model.Registration, error) {
	if err := validID(eventID, "event"); err != nil {
		return nil, err
	}
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.UserID != nil {
		if err := validID(*req.UserID, "user"); err != nil {
			return nil, err
		}
	} else {
		if req.UserName == "" {
			return nil, invalid("user_name is required")
		}
		if req.Email == "" {
			return nil, invalid("email is required")
		}
	}
	if req.Email != "" && !isValidEmail(req.Email) {
		return nil, invalid("email is not a valid email address")
	}

	return s.registrations.Register(ctx, eventID, req)
}

// ListRegistrations returns all registrations for an event, oldest first.
func (s *EventService) ListRegistrations(ctx context.Context, eventID int64) ([]model.Registration, error) {
	if err := validID(eventID, "event"); err != nil {
		return nil, err
	}
	ok, err := s.events.Exists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.registrations.ListByEvent(ctx, eventID)
}
