package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// Table names, in dependency order.
const (
	TableDomains       = "domains"
	TableBlogs         = "blogs"
	TableEvents        = "events"
	TableRegistrations = "event_registrations"
)

// Tables lists every table the application expects.
var Tables = []string{TableDomains, TableBlogs, TableEvents, TableRegistrations}

// Constraint names the repositories classify violations by.
const (
	ConstraintDomainName        = "domains_name_key"
	ConstraintRegistrationEmail = "event_registrations_event_email_key"
	ConstraintRegistrationUser  = "event_registrations_event_user_key"
	ConstraintRegistrationEvent = "event_registrations_event_id_fkey"
	ConstraintEventDomain       = "events_domain_id_fkey"
	ConstraintBlogDomain        = "blogs_domain_id_fkey"
)

// DefaultDomains are seeded on first bootstrap, when no domain exists yet.
var DefaultDomains = []string{
	"Artificial Intelligence",
	"Cloud Computing",
	"Cybersecurity",
	"Data Science",
	"DevOps",
	"Web Development",
}

// schemaLockID serialises concurrent bootstraps. Value: "rhub" in ASCII hex.
const schemaLockID = 0x72687562

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS domains (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT domains_name_key UNIQUE (name),
		CONSTRAINT domains_name_check CHECK (btrim(name) <> '')
	)`,
	`CREATE TABLE IF NOT EXISTS blogs (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		author_name TEXT NOT NULL,
		domain_id BIGINT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		rejection_reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT blogs_domain_id_fkey FOREIGN KEY (domain_id) REFERENCES domains(id) ON DELETE CASCADE,
		CONSTRAINT blogs_status_check CHECK (status IN ('pending', 'approved', 'rejected')),
		CONSTRAINT blogs_rejection_reason_check CHECK (rejection_reason IS NULL OR status = 'rejected')
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blogs_status_created_at ON blogs(status, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_blogs_domain_id ON blogs(domain_id)`,
	`CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		domain_id BIGINT NOT NULL,
		event_type TEXT,
		event_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT events_domain_id_fkey FOREIGN KEY (domain_id) REFERENCES domains(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_event_date ON events(event_date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_events_domain_id ON events(domain_id)`,
	`CREATE TABLE IF NOT EXISTS event_registrations (
		id BIGSERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL,
		user_id BIGINT,
		user_name TEXT,
		email TEXT,
		status TEXT NOT NULL DEFAULT 'registered',
		registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT event_registrations_event_id_fkey FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
		CONSTRAINT event_registrations_event_email_key UNIQUE (event_id, email),
		CONSTRAINT event_registrations_event_user_key UNIQUE (event_id, user_id),
		CONSTRAINT event_registrations_identity_check CHECK (user_id IS NOT NULL OR email IS NOT NULL)
	)`,
}

// EnsureStoreExists creates the configured database when it is missing.
// It is best effort: callers log the error and carry on, since NewPool
// reports an unreachable store more clearly.
func EnsureStoreExists(ctx context.Context, cfg Config) error {
	conn, err := pgx.Connect(ctx, cfg.MaintenanceDSN())
	if err != nil {
		return fmt.Errorf("connect to maintenance database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`,
		cfg.DBName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database exists: %w", err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE takes no bind parameters; the name is quoted as an identifier.
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return fmt.Errorf("create database %q: %w", cfg.DBName, err)
	}
	log.Info().Str("database", cfg.DBName).Msg("Database created")
	return nil
}

// EnsureSchema creates any missing table or index inside one transaction and
// seeds DefaultDomains when the domains table is empty. It never drops or
// alters existing objects, so it is safe to run at every startup.
func EnsureSchema(ctx context.Context, e *Executor) error {
	return e.WithTx(ctx, func(tx *Tx) error {
		if err := Exec(ctx, tx, KindSelect, `SELECT pg_advisory_xact_lock($1)`, int64(schemaLockID)); err != nil {
			return fmt.Errorf("acquire schema lock: %w", err)
		}

		for _, stmt := range schemaStatements {
			if err := Exec(ctx, tx, KindDDL, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}

		count, err := QueryOne(ctx, tx, KindSelect, pgx.RowTo[int64], `SELECT COUNT(*) FROM domains`)
		if err != nil {
			return fmt.Errorf("count domains: %w", err)
		}
		if count != nil && *count > 0 {
			return nil
		}

		seeded, err := Mutate(ctx, tx, KindInsert,
			`INSERT INTO domains (name) SELECT unnest($1::text[]) ON CONFLICT (name) DO NOTHING`,
			DefaultDomains,
		)
		if err != nil {
			return fmt.Errorf("seed default domains: %w", err)
		}
		log.Info().Int64("domains", seeded).Msg("Seeded default domains")
		return nil
	})
}
