package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

// ListDomains handles GET /domains
func (h *Handler) ListDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.domains.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "domain not found")
		return
	}
	if domains == nil {
		domains = []model.Domain{}
	}
	writeJSON(w, http.StatusOK, domains)
}

// GetDomain handles GET /domains/{id}
func (h *Handler) GetDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	domain, err := h.domains.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "domain not found")
		return
	}
	writeJSON(w, http.StatusOK, domain)
}

// CreateDomain handles POST /domains
func (h *Handler) CreateDomain(w http.ResponseWriter, r *http.Request) {
	var req model.DomainRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	domain, err := h.domains.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "domain not found")
		return
	}
	writeJSON(w, http.StatusCreated, domain)
}

// UpdateDomain handles PUT /domains/{id}
func (h *Handler) UpdateDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req model.DomainRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	domain, err := h.domains.Rename(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, "domain not found")
		return
	}
	writeJSON(w, http.StatusOK, domain)
}

// DeleteDomain handles DELETE /domains/{id}
// Refused with 409 while blogs or events reference the domain.
func (h *Handler) DeleteDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.domains.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "domain not found")
		return
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success", Detail: "Domain deleted"})
}
