package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

func TestBlogCreate_PendingWithNewDomain(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	blog := submitBlog(t, repos, "Intro to Go", "Golang")

	assert.Equal(t, model.BlogPending, blog.Status)
	assert.Equal(t, "Golang", blog.DomainName)
	assert.Nil(t, blog.RejectionReason)
	assert.NotZero(t, blog.CreatedAt)

	domain, err := repos.Domains.GetByName(ctx, "Golang")
	require.NoError(t, err)
	assert.Equal(t, domain.ID, blog.DomainID)
}

func TestBlogGetByID_NotFound(t *testing.T) {
	repos := setupTestDB(t)

	_, err := repos.Blogs.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlogApprove(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	blog := submitBlog(t, repos, "Post", "AI")

	approved, err := repos.Blogs.Approve(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BlogApproved, approved.Status)
	assert.Equal(t, "AI", approved.DomainName)

	// A second approval finds nothing eligible.
	_, err = repos.Blogs.Approve(ctx, blog.ID)
	assert.ErrorIs(t, err, ErrNotEligible)

	_, err = repos.Blogs.Approve(ctx, 12345)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestBlogReject(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	blog := submitBlog(t, repos, "Post", "AI")

	rejected, err := repos.Blogs.Reject(ctx, blog.ID, "Off topic")
	require.NoError(t, err)
	assert.Equal(t, model.BlogRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Off topic", *rejected.RejectionReason)

	_, err = repos.Blogs.Approve(ctx, blog.ID)
	assert.ErrorIs(t, err, ErrNotEligible)
	_, err = repos.Blogs.Reject(ctx, blog.ID, "again")
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestBlogUpdate_OnlyPending(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	blog := submitBlog(t, repos, "Draft", "AI")

	updated, err := repos.Blogs.Update(ctx, blog.ID, model.BlogPatch{Title: ptr("Draft v2")})
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", updated.Title)
	assert.Equal(t, blog.Content, updated.Content, "unset fields are unchanged")
	assert.Equal(t, model.BlogPending, updated.Status)

	_, err = repos.Blogs.Approve(ctx, blog.ID)
	require.NoError(t, err)

	_, err = repos.Blogs.Update(ctx, blog.ID, model.BlogPatch{
		Title:      ptr("Sneaky edit"),
		DomainName: ptr("Brand New Domain"),
	})
	assert.ErrorIs(t, err, ErrNotEligible)

	got, err := repos.Blogs.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", got.Title)
	assert.Equal(t, model.BlogApproved, got.Status)

	// The rolled back transaction did not leave the new domain behind.
	_, err = repos.Domains.GetByName(ctx, "Brand New Domain")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlogUpdate_ChangesDomain(t *testing.T) {
	repos := setupTestDB(t)
	blog := submitBlog(t, repos, "Draft", "AI")

	updated, err := repos.Blogs.Update(context.Background(), blog.ID, model.BlogPatch{DomainName: ptr("Cloud")})
	require.NoError(t, err)
	assert.Equal(t, "Cloud", updated.DomainName)
	assert.NotEqual(t, blog.DomainID, updated.DomainID)
}

func TestBlogListApproved(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	older := submitBlog(t, repos, "Kubernetes basics", "Cloud")
	newer := submitBlog(t, repos, "Serverless 100% explained", "Cloud")
	other := submitBlog(t, repos, "Neural nets", "AI")
	pending := submitBlog(t, repos, "Still pending", "Cloud")
	rejected := submitBlog(t, repos, "Rejected post", "Cloud")

	for _, b := range []*model.Blog{older, newer, other} {
		_, err := repos.Blogs.Approve(ctx, b.ID)
		require.NoError(t, err)
	}
	_, err := repos.Blogs.Reject(ctx, rejected.ID, "spam")
	require.NoError(t, err)

	all, err := repos.Blogs.ListApproved(ctx, model.BlogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, b := range all {
		assert.Equal(t, model.BlogApproved, b.Status)
		assert.NotEqual(t, pending.ID, b.ID)
		assert.NotEqual(t, rejected.ID, b.ID)
	}
	// Newest first.
	assert.Equal(t, []int64{other.ID, newer.ID, older.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

	cloud, err := repos.Blogs.ListApproved(ctx, model.BlogFilter{DomainName: "Cloud"})
	require.NoError(t, err)
	assert.Len(t, cloud, 2)

	searched, err := repos.Blogs.ListApproved(ctx, model.BlogFilter{Search: "KUBER"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, older.ID, searched[0].ID)

	// Wildcards in the search term match literally.
	literal, err := repos.Blogs.ListApproved(ctx, model.BlogFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, newer.ID, literal[0].ID)

	none, err := repos.Blogs.ListApproved(ctx, model.BlogFilter{Search: "%"})
	require.NoError(t, err)
	assert.Len(t, none, 1)
}

func TestBlogListPending_OldestFirst(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	first := submitBlog(t, repos, "First", "AI")
	second := submitBlog(t, repos, "Second", "AI")
	approved := submitBlog(t, repos, "Approved", "AI")
	_, err := repos.Blogs.Approve(ctx, approved.ID)
	require.NoError(t, err)

	pending, err := repos.Blogs.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
}

func TestBlogSearch(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	a := submitBlog(t, repos, "Alpha", "AI")
	b := submitBlog(t, repos, "Beta", "Cloud")
	_, err := repos.Blogs.Approve(ctx, b.ID)
	require.NoError(t, err)

	all, err := repos.Blogs.Search(ctx, model.BlogFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := repos.Blogs.Search(ctx, model.BlogFilter{Status: model.BlogPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].ID)

	// Search covers content as well as title.
	byContent, err := repos.Blogs.Search(ctx, model.BlogFilter{Search: "content of beta"})
	require.NoError(t, err)
	require.Len(t, byContent, 1)
	assert.Equal(t, b.ID, byContent[0].ID)

	byDomain, err := repos.Blogs.Search(ctx, model.BlogFilter{DomainName: "AI"})
	require.NoError(t, err)
	require.Len(t, byDomain, 1)
	assert.Equal(t, a.ID, byDomain[0].ID)
}

func TestBlogDelete(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	blog := submitBlog(t, repos, "Doomed", "AI")

	deleted, err := repos.Blogs.Delete(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, blog.ID, deleted.ID)
	assert.Equal(t, "AI", deleted.DomainName)

	_, err = repos.Blogs.Delete(ctx, blog.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
