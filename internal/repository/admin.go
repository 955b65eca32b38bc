package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

// AdminRepository serves the admin dashboard and the database diagnostics.
type AdminRepository struct {
	exec *database.Executor
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(exec *database.Executor) *AdminRepository {
	return &AdminRepository{exec: exec}
}

// DashboardStats returns the four table totals. Each count is its own query,
// so the totals are not a consistent snapshot of one another.
func (r *AdminRepository) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	counts := []struct {
		dst  *int64
		stmt string
	}{
		{&stats.TotalBlogs, `SELECT COUNT(*) FROM blogs`},
		{&stats.TotalEvents, `SELECT COUNT(*) FROM events`},
		{&stats.TotalDomains, `SELECT COUNT(*) FROM domains`},
		{&stats.TotalRegistrations, `SELECT COUNT(*) FROM event_registrations`},
	}
	for _, c := range counts {
		n, err := database.QueryOne(ctx, r.exec, database.KindSelect, pgx.RowTo[int64], c.stmt)
		if err != nil {
			return nil, fail("dashboard stats", err)
		}
		if n != nil {
			*c.dst = *n
		}
	}
	return &stats, nil
}

// DatabaseHealth reports table existence and row counts.
func (r *AdminRepository) DatabaseHealth(ctx context.Context) *database.HealthReport {
	return database.CheckHealth(ctx, r.exec)
}

// Repair recreates missing tables without touching existing data.
func (r *AdminRepository) Repair(ctx context.Context) bool {
	return database.Repair(ctx, r.exec)
}
