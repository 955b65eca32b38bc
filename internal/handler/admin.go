package handler

import (
	"fmt"
	"net/http"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

const alreadyProcessed = "blog not found or already processed"

// PendingBlogs handles GET /admin/blogs/pending
// Returns the moderation queue, oldest first.
func (h *Handler) PendingBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.admin.PendingBlogs(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "blog not found")
		return
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}
	writeJSON(w, http.StatusOK, blogs)
}

// SearchBlogs handles GET /admin/blogs?status=&domain_name=&search=
func (h *Handler) SearchBlogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	blogs, err := h.admin.SearchBlogs(r.Context(), q.Get("status"), q.Get("domain_name"), q.Get("search"))
	if err != nil {
		writeServiceError(w, r, err, "blog not found")
		return
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}
	writeJSON(w, http.StatusOK, blogs)
}

// ApproveBlog handles PUT /admin/blogs/{id}/approve
func (h *Handler) ApproveBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	blog, err := h.admin.Approve(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, alreadyProcessed)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// RejectBlog handles PUT /admin/blogs/{id}/reject
func (h *Handler) RejectBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req model.RejectBlogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	blog, err := h.admin.Reject(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, alreadyProcessed)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// Dashboard handles GET /admin/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// DatabaseHealth handles GET /admin/health
// Responds 503 unless every table is present.
func (h *Handler) DatabaseHealth(w http.ResponseWriter, r *http.Request) {
	report := h.admin.Health(r.Context())
	status := http.StatusOK
	if report.Status != database.HealthHealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// Repair handles POST /admin/repair
func (h *Handler) Repair(w http.ResponseWriter, r *http.Request) {
	if !h.admin.Repair(r.Context()) {
		writeError(w, http.StatusInternalServerError, "database repair failed")
		return
	}
	report := h.admin.Health(r.Context())
	writeJSON(w, http.StatusOK, model.StatusResponse{
		Status: "success",
		Detail: fmt.Sprintf("schema ensured, database %s", report.Status),
	})
}
