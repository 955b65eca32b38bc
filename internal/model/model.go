// Package model defines the core domain types for the blog and event content backend.
package model

import "time"

// BlogStatus is the moderation state of a blog post.
type BlogStatus string

const (
	BlogPending  BlogStatus = "pending"
	BlogApproved BlogStatus = "approved"
	BlogRejected BlogStatus = "rejected"
)

// Valid reports whether s is one of the three moderation states.
func (s BlogStatus) Valid() bool {
	switch s {
	case BlogPending, BlogApproved, BlogRejected:
		return true
	}
	return false
}

// Domain is a topical category that blogs and events are filed under.
type Domain struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Blog is a submitted post moving through the moderation workflow.
type Blog struct {
	ID              int64      `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Content         string     `json:"content" db:"content"`
	AuthorName      string     `json:"author_name" db:"author_name"`
	DomainID        int64      `json:"domain_id" db:"domain_id"`
	DomainName      string     `json:"domain_name" db:"domain_name"`
	Status          BlogStatus `json:"status" db:"status"`
	RejectionReason *string    `json:"rejection_reason" db:"rejection_reason"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// Event is a dated happening filed under a domain. Events have no moderation state.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	DomainID    int64     `json:"domain_id" db:"domain_id"`
	DomainName  string    `json:"domain_name" db:"domain_name"`
	EventType   *string   `json:"event_type" db:"event_type"`
	EventDate   time.Time `json:"event_date" db:"event_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Registration represents a user's registration for an event.
// A registrant is identified either by UserID or by UserName + Email.
type Registration struct {
	ID           int64     `json:"id" db:"id"`
	EventID      int64     `json:"event_id" db:"event_id"`
	EventTitle   string    `json:"event_title" db:"event_title"`
	UserID       *int64    `json:"user_id" db:"user_id"`
	UserName     *string   `json:"user_name" db:"user_name"`
	Email        *string   `json:"email" db:"email"`
	Status       string    `json:"status" db:"status"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// RegistrationRegistered is the status given to every new registration.
const RegistrationRegistered = "registered"

// CreateBlogRequest is the payload for submitting a blog for moderation.
type CreateBlogRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
	DomainName string `json:"domain_name"`
}

// BlogPatch holds the fields of a pending blog that may be edited.
// A nil field is left unchanged.
type BlogPatch struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	DomainName *string `json:"domain_name"`
}

// BlogFilter narrows a blog listing. Empty fields do not filter.
type BlogFilter struct {
	DomainName string
	Search     string
	Status     BlogStatus
}

// RejectBlogRequest carries the reason a moderator rejected a blog.
type RejectBlogRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// DomainRequest is the payload for creating or renaming a domain.
type DomainRequest struct {
	Name string `json:"name"`
}

// CreateEventRequest is the payload for creating a new event.
// The domain is given either by DomainID or by DomainName; a name that does
// not exist yet is created.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DomainID    *int64    `json:"domain_id"`
	DomainName  *string   `json:"domain_name"`
	EventType   *string   `json:"event_type"`
	EventDate   time.Time `json:"event_date"`
}

// EventPatch holds optional event fields for a partial update.
type EventPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DomainID    *int64     `json:"domain_id"`
	DomainName  *string    `json:"domain_name"`
	EventType   *string    `json:"event_type"`
	EventDate   *time.Time `json:"event_date"`
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DomainID == nil &&
		p.DomainName == nil && p.EventType == nil && p.EventDate == nil
}

// EventFilter narrows an event listing. Nil fields do not filter.
type EventFilter struct {
	DomainID   *int64
	DomainName *string
	EventType  *string
}

// RegisterRequest is the payload for registering for an event.
type RegisterRequest struct {
	UserID   *int64 `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// DashboardStats holds the admin dashboard totals.
type DashboardStats struct {
	TotalBlogs         int64 `json:"total_blogs"`
	TotalEvents        int64 `json:"total_events"`
	TotalDomains       int64 `json:"total_domains"`
	TotalRegistrations int64 `json:"total_registrations"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	ErrorID string `json:"error_id,omitempty"`
}

// StatusResponse confirms an operation that returns no entity.
type StatusResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}
