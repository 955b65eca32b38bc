package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

const selectRegistration = `SELECT r.id, r.event_id, e.title AS event_title, r.user_id, r.user_name,
	r.email, r.status, r.registered_at
	FROM `

const joinRegistrationEvent = ` r JOIN events e ON e.id = r.event_id`

var scanRegistration = pgx.RowToStructByName[model.Registration]

// RegistrationRepository handles persistence for registrations.
type RegistrationRepository struct {
	exec *database.Executor
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(exec *database.Executor) *RegistrationRepository {
	return &RegistrationRepository{exec: exec}
}

// Register records a registration for an event.
//
// Duplicates are left to the unique constraints on (event_id, email) and
// (event_id, user_id): checking first and inserting second would let two
// concurrent requests both pass the check. A violated constraint surfaces as
// ErrDuplicateRegistration and a missing event as ErrNotFound.
func (r *RegistrationRepository) Register(ctx context.Context, eventID int64, req model.RegisterRequest) (*model.Registration, error) {
	var userName, email *string
	if req.UserName != "" {
		userName = &req.UserName
	}
	if req.Email != "" {
		email = &req.Email
	}

	reg, err := database.Insert(ctx, r.exec, scanRegistration,
		`WITH inserted AS (
			INSERT INTO event_registrations (event_id, user_id, user_name, email, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		) `+selectRegistration+`inserted`+joinRegistrationEvent,
		eventID, req.UserID, userName, email, model.RegistrationRegistered,
	)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, database.ConstraintRegistrationEmail),
			database.IsUniqueViolation(err, database.ConstraintRegistrationUser):
			return nil, fail("register for event", ErrDuplicateRegistration)
		case database.IsForeignKeyViolation(err, database.ConstraintRegistrationEvent):
			return nil, fail("register for event", ErrNotFound)
		}
		return nil, fail("register for event", err)
	}
	log.Info().Int64("event_id", eventID).Int64("id", reg.ID).Msg("Registered for event")
	return reg, nil
}

// ListByEvent returns all registrations for a given event, oldest first.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error) {
	regs, err := database.QueryMany(ctx, r.exec, database.KindSelect, scanRegistration,
		selectRegistration+`event_registrations`+joinRegistrationEvent+`
		WHERE r.event_id = $1
		ORDER BY r.registered_at ASC, r.id ASC`,
		eventID,
	)
	if err != nil {
		return nil, fail("list registrations", err)
	}
	return regs, nil
}
