package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

const selectEvent = `SELECT e.id, e.title, e.description, e.domain_id, d.name AS domain_name,
	e.event_type, e.event_date, e.created_at, e.updated_at
	FROM `

const joinEventDomain = ` e JOIN domains d ON d.id = e.domain_id`

var scanEvent = pgx.RowToStructByName[model.Event]

// EventRepository handles persistence for events.
type EventRepository struct {
	exec *database.Executor
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(exec *database.Executor) *EventRepository {
	return &EventRepository{exec: exec}
}

// resolveDomain picks the domain id for an event write. A name wins over an
// id and is created when new; neither given means no change.
func resolveDomain(ctx context.Context, s database.Scope, id *int64, name *string) (*int64, error) {
	if name != nil {
		did, err := getOrCreateDomain(ctx, s, *name)
		if err != nil {
			return nil, err
		}
		return &did, nil
	}
	return id, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	var event *model.Event
	err := r.exec.WithTx(ctx, func(tx *database.Tx) error {
		domainID, err := resolveDomain(ctx, tx, req.DomainID, req.DomainName)
		if err != nil {
			return err
		}
		if domainID == nil {
			return ErrDomainNotFound
		}
		event, err = database.Insert(ctx, tx, scanEvent,
			`WITH inserted AS (
				INSERT INTO events (title, description, domain_id, event_type, event_date)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING *
			) `+selectEvent+`inserted`+joinEventDomain,
			req.Title, req.Description, *domainID, req.EventType, req.EventDate,
		)
		return err
	})
	if err != nil {
		if database.IsForeignKeyViolation(err, database.ConstraintEventDomain) {
			return nil, fail("create event", ErrDomainNotFound)
		}
		return nil, fail("create event", err)
	}
	log.Info().Int64("id", event.ID).Str("title", event.Title).Msg("Event created")
	return event, nil
}

// List returns events ordered by event date, latest first.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	events, err := database.QueryMany(ctx, r.exec, database.KindSelect, scanEvent,
		selectEvent+`events`+joinEventDomain+`
		WHERE ($1::bigint IS NULL OR e.domain_id = $1)
		  AND ($2::text IS NULL OR d.name = $2)
		  AND ($3::text IS NULL OR e.event_type = $3)
		ORDER BY e.event_date DESC, e.id DESC`,
		filter.DomainID, filter.DomainName, filter.EventType,
	)
	if err != nil {
		return nil, fail("list events", err)
	}
	return events, nil
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	event, err := database.QueryOne(ctx, r.exec, database.KindSelect, scanEvent,
		selectEvent+`events`+joinEventDomain+` WHERE e.id = $1`, id,
	)
	if err != nil {
		return nil, fail("get event", err)
	}
	if event == nil {
		return nil, fail("get event", ErrNotFound)
	}
	return event, nil
}

// Update applies a partial patch. Nil fields are left as they are.
func (r *EventRepository) Update(ctx context.Context, id int64, patch model.EventPatch) (*model.Event, error) {
	var event *model.Event
	err := r.exec.WithTx(ctx, func(tx *database.Tx) error {
		domainID, err := resolveDomain(ctx, tx, patch.DomainID, patch.DomainName)
		if err != nil {
			return err
		}
		event, err = database.QueryOne(ctx, tx, database.KindUpdate, scanEvent,
			`WITH updated AS (
				UPDATE events
				SET title = COALESCE($2, title),
				    description = COALESCE($3, description),
				    domain_id = COALESCE($4, domain_id),
				    event_type = COALESCE($5, event_type),
				    event_date = COALESCE($6, event_date),
				    updated_at = NOW()
				WHERE id = $1
				RETURNING *
			) `+selectEvent+`updated`+joinEventDomain,
			id, patch.Title, patch.Description, domainID, patch.EventType, patch.EventDate,
		)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if database.IsForeignKeyViolation(err, database.ConstraintEventDomain) {
			return nil, fail("update event", ErrDomainNotFound)
		}
		return nil, fail("update event", err)
	}
	log.Info().Int64("id", id).Msg("Event updated")
	return event, nil
}

// Delete removes an event, and with it its registrations, returning the deleted row.
func (r *EventRepository) Delete(ctx context.Context, id int64) (*model.Event, error) {
	event, err := database.QueryOne(ctx, r.exec, database.KindDelete, scanEvent,
		`WITH deleted AS (
			DELETE FROM events WHERE id = $1 RETURNING *
		) `+selectEvent+`deleted`+joinEventDomain,
		id,
	)
	if err != nil {
		return nil, fail("delete event", err)
	}
	if event == nil {
		return nil, fail("delete event", ErrNotFound)
	}
	log.Info().Int64("id", id).Msg("Event deleted")
	return event, nil
}

// Exists reports whether an event with id exists.
func (r *EventRepository) Exists(ctx context.Context, id int64) (bool, error) {
	found, err := database.QueryOne(ctx, r.exec, database.KindSelect, pgx.RowTo[bool],
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id,
	)
	if err != nil {
		return false, fail("check event exists", err)
	}
	return found != nil && *found, nil
}
