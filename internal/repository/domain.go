package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

const domainColumns = `id, name, created_at, updated_at`

var scanDomain = pgx.RowToStructByName[model.Domain]

// DomainRepository handles persistence for domains.
type DomainRepository struct {
	exec *database.Executor
}

// NewDomainRepository constructs a DomainRepository.
func NewDomainRepository(exec *database.Executor) *DomainRepository {
	return &DomainRepository{exec: exec}
}

// List returns every domain ordered by name.
func (r *DomainRepository) List(ctx context.Context) ([]model.Domain, error) {
	domains, err := database.QueryMany(ctx, r.exec, database.KindSelect, scanDomain,
		`SELECT `+domainColumns+` FROM domains ORDER BY name`,
	)
	if err != nil {
		return nil, fail("list domains", err)
	}
	return domains, nil
}

// GetByID returns a single domain or ErrNotFound.
func (r *DomainRepository) GetByID(ctx context.Context, id int64) (*model.Domain, error) {
	d, err := database.QueryOne(ctx, r.exec, database.KindSelect, scanDomain,
		`SELECT `+domainColumns+` FROM domains WHERE id = $1`, id,
	)
	if err != nil {
		return nil, fail("get domain", err)
	}
	if d == nil {
		return nil, fail("get domain", ErrNotFound)
	}
	return d, nil
}

// GetByName returns the domain with the exact name or ErrNotFound.
func (r *DomainRepository) GetByName(ctx context.Context, name string) (*model.Domain, error) {
	d, err := database.QueryOne(ctx, r.exec, database.KindSelect, scanDomain,
		`SELECT `+domainColumns+` FROM domains WHERE name = $1`, name,
	)
	if err != nil {
		return nil, fail("get domain by name", err)
	}
	if d == nil {
		return nil, fail("get domain by name", ErrNotFound)
	}
	return d, nil
}

// Create inserts a new domain. A taken name yields ErrDuplicateDomain.
func (r *DomainRepository) Create(ctx context.Context, name string) (*model.Domain, error) {
	d, err := database.Insert(ctx, r.exec, scanDomain,
		`INSERT INTO domains (name) VALUES ($1) RETURNING `+domainColumns, name,
	)
	if err != nil {
		if database.IsUniqueViolation(err, database.ConstraintDomainName) {
			return nil, fail("create domain", ErrDuplicateDomain)
		}
		return nil, fail("create domain", err)
	}
	log.Info().Int64("id", d.ID).Str("name", d.Name).Msg("Domain created")
	return d, nil
}

// Update renames a domain.
func (r *DomainRepository) Update(ctx context.Context, id int64, name string) (*model.Domain, error) {
	d, err := database.QueryOne(ctx, r.exec, database.KindUpdate, scanDomain,
		`UPDATE domains SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING `+domainColumns,
		id, name,
	)
	if err != nil {
		if database.IsUniqueViolation(err, database.ConstraintDomainName) {
			return nil, fail("update domain", ErrDuplicateDomain)
		}
		return nil, fail("update domain", err)
	}
	if d == nil {
		return nil, fail("update domain", ErrNotFound)
	}
	log.Info().Int64("id", id).Str("name", d.Name).Msg("Domain updated")
	return d, nil
}

// Delete removes a domain that nothing references and returns the deleted row.
//
// The domain row is locked FOR UPDATE first. Inserting a blog or event takes a
// KEY SHARE lock on the referenced domain, which conflicts with that lock, so
// no dependent can appear between the count and the delete.
func (r *DomainRepository) Delete(ctx context.Context, id int64) (*model.Domain, error) {
	var deleted *model.Domain
	err := r.exec.WithTx(ctx, func(tx *database.Tx) error {
		locked, err := database.QueryOne(ctx, tx, database.KindSelect, pgx.RowTo[int64],
			`SELECT id FROM domains WHERE id = $1 FOR UPDATE`, id,
		)
		if err != nil {
			return err
		}
		if locked == nil {
			return ErrNotFound
		}

		counts, err := database.QueryOne(ctx, tx, database.KindSelect, pgx.RowToStructByPos[dependentCounts],
			`SELECT (SELECT COUNT(*) FROM blogs WHERE domain_id = $1),
			        (SELECT COUNT(*) FROM events WHERE domain_id = $1)`,
			id,
		)
		if err != nil {
			return err
		}
		if counts.Blogs > 0 || counts.Events > 0 {
			return &ConflictError{DomainID: id, Blogs: counts.Blogs, Events: counts.Events}
		}

		deleted, err = database.QueryOne(ctx, tx, database.KindDelete, scanDomain,
			`DELETE FROM domains WHERE id = $1 RETURNING `+domainColumns, id,
		)
		if err != nil {
			return err
		}
		if deleted == nil {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, fail("delete domain", err)
	}
	log.Info().Int64("id", id).Msg("Domain deleted")
	return deleted, nil
}

type dependentCounts struct {
	Blogs  int64
	Events int64
}

// GetOrCreate returns the id of the named domain, creating it when absent.
func (r *DomainRepository) GetOrCreate(ctx context.Context, name string) (int64, error) {
	id, err := getOrCreateDomain(ctx, r.exec, name)
	if err != nil {
		return 0, fail("get or create domain", err)
	}
	return id, nil
}

// getOrCreateDomain looks the name up and inserts it when missing. The insert
// uses ON CONFLICT DO NOTHING, so a concurrent caller that created the same
// name first makes it return nothing instead of failing; the re-select then
// picks up the winner's row. Safe inside a shared transaction as well, since
// no statement errors and aborts it.
func getOrCreateDomain(ctx context.Context, s database.Scope, name string) (int64, error) {
	const selectID = `SELECT id FROM domains WHERE name = $1`

	id, err := database.QueryOne(ctx, s, database.KindSelect, pgx.RowTo[int64], selectID, name)
	if err != nil {
		return 0, err
	}
	if id != nil {
		return *id, nil
	}

	id, err = database.Insert(ctx, s, pgx.RowTo[int64],
		`INSERT INTO domains (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`, name,
	)
	if err != nil {
		return 0, err
	}
	if id != nil {
		log.Info().Str("name", name).Int64("id", *id).Msg("Domain auto-created")
		return *id, nil
	}

	id, err = database.QueryOne(ctx, s, database.KindSelect, pgx.RowTo[int64], selectID, name)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, fmt.Errorf("domain %q vanished after conflicting insert", name)
	}
	return *id, nil
}
