package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the chi router with the global middleware stack and every
// API route.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(Metrics)                 // outside Recoverer so panics are counted
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(CORS)

	r.Get("/", Root)
	r.Get("/health", HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/blogs", func(r chi.Router) {
		r.Post("/", h.SubmitBlog)
		r.Get("/", h.ListBlogs)
		r.Get("/{id}", h.GetBlog)
		r.Put("/{id}", h.UpdateBlog)
		r.Delete("/{id}", h.DeleteBlog)
	})

	r.Route("/domains", func(r chi.Router) {
		r.Get("/", h.ListDomains)
		r.Post("/", h.CreateDomain)
		r.Get("/{id}", h.GetDomain)
		r.Put("/{id}", h.UpdateDomain)
		r.Delete("/{id}", h.DeleteDomain)
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", h.CreateEvent)
		r.Get("/", h.ListEvents)
		r.Get("/{id}", h.GetEvent)
		r.Put("/{id}", h.UpdateEvent)
		r.Delete("/{id}", h.DeleteEvent)
		r.Post("/{id}/register", h.Register)
		r.Get("/{id}/registrations", h.ListRegistrations)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Get("/health", h.DatabaseHealth)
		r.Post("/repair", h.Repair)
		r.Get("/blogs", h.SearchBlogs)
		r.Get("/blogs/pending", h.PendingBlogs)
		r.Put("/blogs/{id}/approve", h.ApproveBlog)
		r.Put("/blogs/{id}/reject", h.RejectBlog)
	})

	return r
}
