package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

// selectBlog reads blogs aliased as b joined with their domain name. It is
// followed by a table or CTE name.
const selectBlog = `SELECT b.id, b.title, b.content, b.author_name, b.domain_id,
	d.name AS domain_name, b.status, b.rejection_reason, b.created_at, b.updated_at
	FROM `

const joinBlogDomain = ` b JOIN domains d ON d.id = b.domain_id`

var scanBlog = pgx.RowToStructByName[model.Blog]

// BlogRepository handles persistence for blogs and their moderation state.
type BlogRepository struct {
	exec *database.Executor
}

// NewBlogRepository constructs a BlogRepository.
func NewBlogRepository(exec *database.Executor) *BlogRepository {
	return &BlogRepository{exec: exec}
}

// Create submits a blog in the pending state, creating its domain when the
// name is new. Both happen in one transaction.
func (r *BlogRepository) Create(ctx context.Context, req model.CreateBlogRequest) (*model.Blog, error) {
	var blog *model.Blog
	err := r.exec.WithTx(ctx, func(tx *database.Tx) error {
		domainID, err := getOrCreateDomain(ctx, tx, req.DomainName)
		if err != nil {
			return err
		}
		blog, err = database.Insert(ctx, tx, scanBlog,
			`WITH inserted AS (
				INSERT INTO blogs (title, content, author_name, domain_id, status)
				VALUES ($1, $2, $3, $4, 'pending')
				RETURNING *
			) `+selectBlog+`inserted`+joinBlogDomain,
			req.Title, req.Content, req.AuthorName, domainID,
		)
		return err
	})
	if err != nil {
		return nil, fail("create blog", err)
	}
	log.Info().Int64("id", blog.ID).Str("title", blog.Title).Str("author", blog.AuthorName).Msg("Blog submitted")
	return blog, nil
}

// GetByID returns a blog in any state, or ErrNotFound.
func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	blog, err := database.QueryOne(ctx, r.exec, database.KindSelect, scanBlog,
		selectBlog+`blogs`+joinBlogDomain+` WHERE b.id = $1`, id,
	)
	if err != nil {
		return nil, fail("get blog", err)
	}
	if blog == nil {
		return nil, fail("get blog", ErrNotFound)
	}
	return blog, nil
}

// ListApproved returns the public feed, newest first. Only approved blogs are
// ever returned. DomainName matches exactly; Search matches the title as a
// case-insensitive substring. filter.Status is ignored.
func (r *BlogRepository) ListApproved(ctx context.Context, filter model.BlogFilter) ([]model.Blog, error) {
	var search string
	if filter.Search != "" {
		search = containsPattern(filter.Search)
	}
	blogs, err := database.QueryMany(ctx, r.exec, database.KindSelect, scanBlog,
		selectBlog+`blogs`+joinBlogDomain+`
		WHERE b.status = 'approved'
		  AND ($1::text = '' OR d.name = $1)
		  AND ($2::text = '' OR b.title ILIKE $2)
		ORDER BY b.created_at DESC, b.id DESC`,
		filter.DomainName, search,
	)
	if err != nil {
		return nil, fail("list blogs", err)
	}
	return blogs, nil
}

// ListPending returns the moderation queue, oldest first.
func (r *BlogRepository) ListPending(ctx context.Context) ([]model.Blog, error) {
	blogs, err := database.QueryMany(ctx, r.exec, database.KindSelect, scanBlog,
		selectBlog+`blogs`+joinBlogDomain+`
		WHERE b.status = 'pending'
		ORDER BY b.created_at ASC, b.id ASC`,
	)
	if err != nil {
		return nil, fail("list pending blogs", err)
	}
	return blogs, nil
}

// Search is the admin listing: any status unless filter.Status is set, with
// Search matched against title or content.
func (r *BlogRepository) Search(ctx context.Context, filter model.BlogFilter) ([]model.Blog, error) {
	var search string
	if filter.Search != "" {
		search = containsPattern(filter.Search)
	}
	blogs, err := database.QueryMany(ctx, r.exec, database.KindSelect, scanBlog,
		selectBlog+`blogs`+joinBlogDomain+`
		WHERE ($1::text = '' OR b.status = $1)
		  AND ($2::text = '' OR d.name = $2)
		  AND ($3::text = '' OR b.title ILIKE $3 OR b.content ILIKE $3)
		ORDER BY b.created_at DESC, b.id DESC`,
		string(filter.Status), filter.DomainName, search,
	)
	if err != nil {
		return nil, fail("search blogs", err)
	}
	return blogs, nil
}

// Update edits a pending blog. The status check and the write are one
// conditional statement; a blog that is missing or no longer pending yields
// ErrNotEligible and nothing changes, including the domain lookup.
func (r *BlogRepository) Update(ctx context.Context, id int64, patch model.BlogPatch) (*model.Blog, error) {
	var blog *model.Blog
	err := r.exec.WithTx(ctx, func(tx *database.Tx) error {
		var domainID *int64
		if patch.DomainName != nil {
			did, err := getOrCreateDomain(ctx, tx, *patch.DomainName)
			if err != nil {
				return err
			}
			domainID = &did
		}

		var err error
		blog, err = database.QueryOne(ctx, tx, database.KindUpdate, scanBlog,
			`WITH updated AS (
				UPDATE blogs
				SET title = COALESCE($2, title),
				    content = COALESCE($3, content),
				    domain_id = COALESCE($4, domain_id),
				    updated_at = NOW()
				WHERE id = $1 AND status = 'pending'
				RETURNING *
			) `+selectBlog+`updated`+joinBlogDomain,
			id, patch.Title, patch.Content, domainID,
		)
		if err != nil {
			return err
		}
		if blog == nil {
			return ErrNotEligible
		}
		return nil
	})
	if err != nil {
		return nil, fail("update blog", err)
	}
	log.Info().Int64("id", id).Msg("Blog updated")
	return blog, nil
}

// Approve moves a pending blog to approved. A second approval, or approving
// a rejected or missing blog, yields ErrNotEligible.
func (r *BlogRepository) Approve(ctx context.Context, id int64) (*model.Blog, error) {
	blog, err := database.QueryOne(ctx, r.exec, database.KindUpdate, scanBlog,
		`WITH updated AS (
			UPDATE blogs
			SET status = 'approved', rejection_reason = NULL, updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		) `+selectBlog+`updated`+joinBlogDomain,
		id,
	)
	if err != nil {
		return nil, fail("approve blog", err)
	}
	if blog == nil {
		return nil, fail("approve blog", ErrNotEligible)
	}
	log.Info().Int64("id", id).Msg("Blog approved")
	return blog, nil
}

// Reject moves a pending blog to rejected, recording the reason.
func (r *BlogRepository) Reject(ctx context.Context, id int64, reason string) (*model.Blog, error) {
	blog, err := database.QueryOne(ctx, r.exec, database.KindUpdate, scanBlog,
		`WITH updated AS (
			UPDATE blogs
			SET status = 'rejected', rejection_reason = $2, updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		) `+selectBlog+`updated`+joinBlogDomain,
		id, reason,
	)
	if err != nil {
		return nil, fail("reject blog", err)
	}
	if blog == nil {
		return nil, fail("reject blog", ErrNotEligible)
	}
	log.Info().Int64("id", id).Str("reason", reason).Msg("Blog rejected")
	return blog, nil
}

// Delete removes a blog in any state and returns the deleted row.
func (r *BlogRepository) Delete(ctx context.Context, id int64) (*model.Blog, error) {
	blog, err := database.QueryOne(ctx, r.exec, database.KindDelete, scanBlog,
		`WITH deleted AS (
			DELETE FROM blogs WHERE id = $1 RETURNING *
		) `+selectBlog+`deleted`+joinBlogDomain,
		id,
	)
	if err != nil {
		return nil, fail("delete blog", err)
	}
	if blog == nil {
		return nil, fail("delete blog", ErrNotFound)
	}
	log.Info().Int64("id", id).Msg("Blog deleted")
	return blog, nil
}
