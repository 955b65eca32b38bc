package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

// BlogService orchestrates blog submission, editing and the public feed.
type BlogService struct {
	blogs BlogStore
}

// NewBlogService constructs a BlogService.
func NewBlogService(blogs BlogStore) *BlogService {
	return &BlogService{blogs: blogs}
}

// Submit validates the request and stores the blog as pending.
func (s *BlogService) Submit(ctx context.Context, req model.CreateBlogRequest) (*model.Blog, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	req.DomainName = strings.TrimSpace(req.DomainName)

	switch {
	case req.Title == "":
		return nil, invalid("title is required")
	case req.Content == "":
		return nil, invalid("content is required")
	case req.AuthorName == "":
		return nil, invalid("author_name is required")
	case req.DomainName == "":
		return nil, invalid("domain_name is required")
	}
	return s.blogs.Create(ctx, req)
}

// Get returns a blog by id in any moderation state.
func (s *BlogService) Get(ctx context.Context, id int64) (*model.Blog, error) {
	if err := validID(id, "blog"); err != nil {
		return nil, err
	}
	return s.blogs.GetByID(ctx, id)
}

// ListPublic returns approved blogs, newest first.
func (s *BlogService) ListPublic(ctx context.Context, domainName, search string) ([]model.Blog, error) {
	return s.blogs.ListApproved(ctx, model.BlogFilter{
		DomainName: strings.TrimSpace(domainName),
		Search:     strings.TrimSpace(search),
	})
}

// Update edits a blog that is still pending.
func (s *BlogService) Update(ctx context.Context, id int64, patch model.BlogPatch) (*model.Blog, error) {
	if err := validID(id, "blog"); err != nil {
		return nil, err
	}
	if trimPtr(patch.Title) {
		return nil, invalid("title cannot be empty")
	}
	if trimPtr(patch.Content) {
		return nil, invalid("content cannot be empty")
	}
	if trimPtr(patch.DomainName) {
		return nil, invalid("domain_name cannot be empty")
	}
	return s.blogs.Update(ctx, id, patch)
}

// Delete removes a blog in any state.
func (s *BlogService) Delete(ctx context.Context, id int64) (*model.Blog, error) {
	if err := validID(id, "blog"); err != nil {
		return nil, err
	}
	return s.blogs.Delete(ctx, id)
}
