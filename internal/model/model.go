// Package model defines the core domain types for the event booking demo.
package model

// AllCategories is the category filter value that matches every event.
const AllCategories = "All"

// Event is a single bookable event from the catalog document.
// JSON field names match the static events.json resource.
type Event struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Date           string  `json:"date"`
	AvailableSeats int     `json:"availableSeats"`
	Price          float64 `json:"price"`
}

// SoldOut returns true when no seats remain.
func (e *Event) SoldOut() bool {
	return e.AvailableSeats <= 0
}

// Query is the listing view state: search text, category and page number.
type Query struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Page     int    `json:"page"`
}

// DefaultQuery is the state a freshly mounted listing starts from.
func DefaultQuery() Query {
	return Query{Category: AllCategories, Page: 1}
}

// Page is one rendered page of the filtered catalog.
type Page struct {
	Events     []Event  `json:"events"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
	Categories []string `json:"categories"`
	Search     string   `json:"search"`
	Category   string   `json:"category"`
}

// LoginRequest is the payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes the authentication state of the caller.
type SessionResponse struct {
	User  *string `json:"user"`
	Error string  `json:"error,omitempty"`
}

// BookingResponse summarises the outcome of a single booking attempt.
type BookingResponse struct {
	Outcome        string `json:"outcome"`
	Message        string `json:"message"`
	AvailableSeats *int   `json:"availableSeats,omitempty"`
}

// StatusResponse is returned while work is still in progress.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
