package handler

import (
	"errors"
	"net/http"

	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
	"github.com/Shivanand-hulikatti/resource-hub/internal/repository"
)

// SubmitBlog handles POST /blogs
// Stores a new blog in the pending moderation state.
func (h *Handler) SubmitBlog(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBlogRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	blog, err := h.blogs.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "blog not found")
		return
	}

	writeJSON(w, http.StatusCreated, blog)
}

// ListBlogs handles GET /blogs?domain_name=&search=
// Returns approved blogs only, newest first.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	blogs, err := h.blogs.ListPublic(r.Context(), q.Get("domain_name"), q.Get("search"))
	if err != nil {
		writeServiceError(w, r, err, "blog not found")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if blogs == nil {
		blogs = []model.Blog{}
	}

	writeJSON(w, http.StatusOK, blogs)
}

// GetBlog handles GET /blogs/{id}
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	blog, err := h.blogs.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "blog not found")
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// UpdateBlog handles PUT /blogs/{id}
// Only pending blogs can be edited.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var patch model.BlogPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	blog, err := h.blogs.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotEligible) {
			writeError(w, http.StatusBadRequest, "cannot update blog (only pending blogs)")
			return
		}
		writeServiceError(w, r, err, "blog not found")
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// DeleteBlog handles DELETE /blogs/{id}
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if _, err := h.blogs.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "blog not found")
		return
	}

	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success", Detail: "Blog deleted successfully"})
}
