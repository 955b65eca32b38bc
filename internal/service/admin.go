package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

// AdminService serves the moderation queue, the dashboard and the database
// diagnostics.
type AdminService struct {
	blogs BlogStore
	admin AdminStore
}

// NewAdminService constructs an AdminService.
func NewAdminService(blogs BlogStore, admin AdminStore) *AdminService {
	return &AdminService{blogs: blogs, admin: admin}
}

// PendingBlogs returns the moderation queue, oldest first.
func (s *AdminService) PendingBlogs(ctx context.Context) ([]model.Blog, error) {
	return s.blogs.ListPending(ctx)
}

// SearchBlogs lists blogs of any status, matching search against title or content.
func (s *AdminService) SearchBlogs(ctx context.Context, status, domainName, search string) ([]model.Blog, error) {
	st := model.BlogStatus(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, invalid("status must be pending, approved or rejected")
	}
	return s.blogs.Search(ctx, model.BlogFilter{
		Status:     st,
		DomainName: strings.TrimSpace(domainName),
		Search:     strings.TrimSpace(search),
	})
}

// Approve publishes a pending blog.
func (s *AdminService) Approve(ctx context.Context, id int64) (*model.Blog, error) {
	if err := validID(id, "blog"); err != nil {
		return nil, err
	}
	return s.blogs.Approve(ctx, id)
}

// Reject turns down a pending blog. A reason is required.
func (s *AdminService) Reject(ctx context.Context, id int64, req model.RejectBlogRequest) (*model.Blog, error) {
	if err := validID(id, "blog"); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.RejectionReason)
	if reason == "" {
		return nil, invalid("rejection reason is required")
	}
	return s.blogs.Reject(ctx, id, reason)
}

// Dashboard returns the row totals shown on the admin dashboard.
func (s *AdminService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return s.admin.DashboardStats(ctx)
}

// Health reports table presence and row counts without writing.
func (s *AdminService) Health(ctx context.Context) *database.HealthReport {
	return s.admin.DatabaseHealth(ctx)
}

// Repair recreates missing tables and reports whether it succeeded.
func (s *AdminService) Repair(ctx context.Context) bool {
	return s.admin.Repair(ctx)
}
