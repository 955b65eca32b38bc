// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
	"github.com/Shivanand-hulikatti/resource-hub/internal/repository"
	"github.com/Shivanand-hulikatti/resource-hub/internal/service"
)

// Handler holds all HTTP handlers for the API.
type Handler struct {
	blogs   *service.BlogService
	domains *service.DomainService
	events  *service.EventService
	admin   *service.AdminService
}

// New constructs a Handler.
func New(blogs *service.BlogService, domains *service.DomainService, events *service.EventService, admin *service.AdminService) *Handler {
	return &Handler{blogs: blogs, domains: domains, events: events, admin: admin}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// idParam parses the {id} URL parameter. It writes a 400 and returns false
// when the parameter is not a positive integer.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeServiceError maps a service or repository error to a response.
// notFound is the message used for ErrNotFound and ErrNotEligible.
// Store failures get an opaque error id; the underlying message is only logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var conflict *repository.ConflictError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrNotEligible):
		writeError(w, http.StatusNotFound, notFound)
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, conflict.Error())
	case errors.Is(err, repository.ErrDuplicateRegistration):
		writeError(w, http.StatusConflict, "you are already registered for this event")
	case errors.Is(err, repository.ErrDuplicateDomain):
		writeError(w, http.StatusConflict, "a domain with this name already exists")
	case errors.Is(err, repository.ErrDomainNotFound):
		writeError(w, http.StatusBadRequest, "domain not found")
	default:
		status := http.StatusInternalServerError
		if errors.Is(err, database.ErrPoolExhausted) {
			status = http.StatusServiceUnavailable
		}
		errorID := uuid.NewString()
		log.Error().
			Err(err).
			Str("error_id", errorID).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("Unhandled error")
		writeJSON(w, status, model.ErrorResponse{Error: "Internal Server Error", ErrorID: errorID})
	}
}

// ─── Root & health ────────────────────────────────────────────────────────────

// Root handles GET /
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Resource Hub API",
		"metrics": "/metrics",
	})
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
