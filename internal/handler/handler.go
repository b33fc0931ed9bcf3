// Package handler contains chi HTTP handlers that render the session,
// listing, detail and booking views as JSON.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KARTHI-MAKES/event-booking/internal/auth"
	"github.com/KARTHI-MAKES/event-booking/internal/booking"
	"github.com/KARTHI-MAKES/event-booking/internal/catalog"
	"github.com/KARTHI-MAKES/event-booking/internal/listing"
	"github.com/KARTHI-MAKES/event-booking/internal/model"
	"github.com/KARTHI-MAKES/event-booking/internal/service"
)

// EventHandler holds all HTTP handlers for the booking API.
type EventHandler struct {
	svc *service.Service
	// loadWait bounds how long a listing request waits for the catalog.
	loadWait time.Duration
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.Service, loadWait time.Duration) *EventHandler {
	if loadWait <= 0 {
		loadWait = 5 * time.Second
	}
	return &EventHandler{svc: svc, loadWait: loadWait}
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

func eventID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

// ─── Session ──────────────────────────────────────────────────────────────────

// Login handles POST /api/login
func (h *EventHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ws := workspaceFrom(r.Context())
	if err := ws.Login(req.Email, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, auth.InvalidCredentialsMessage)
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, ws.Session())
}

// Logout handles POST /api/logout
func (h *EventHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	ws.Logout()
	writeJSON(w, http.StatusOK, ws.Session())
}

// Session handles GET /api/session
func (h *EventHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, workspaceFrom(r.Context()).Session())
}

// EndSession handles DELETE /api/session
// Drops all state of the session and expires its cookie.
func (h *EventHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	h.svc.End(workspaceFrom(r.Context()).ID())
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

// ─── Listing ──────────────────────────────────────────────────────────────────

// ListEvents handles GET /api/events?search=&category=&page=
// Parameters that are present update the session's listing query.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var u listing.QueryUpdate
	if q.Has("search") {
		s := q.Get("search")
		u.Search = &s
	}
	if q.Has("category") {
		c := q.Get("category")
		u.Category = &c
	}
	if q.Has("page") {
		p, err := strconv.Atoi(q.Get("page"))
		if err != nil || p < 1 {
			writeError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		u.Page = &p
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.loadWait)
	defer cancel()

	result := workspaceFrom(r.Context()).Listing(ctx, u)
	switch result.Status {
	case catalog.Loaded:
		writeJSON(w, http.StatusOK, result.Page)
	case catalog.Failed:
		writeError(w, http.StatusBadGateway, "Error fetching events: "+result.Err)
	default:
		writeJSON(w, http.StatusAccepted, model.StatusResponse{Status: catalog.Loading.String()})
	}
}

// ReloadEvents handles POST /api/events/reload
// Remounts the listing, discarding the session's bookings.
func (h *EventHandler) ReloadEvents(w http.ResponseWriter, r *http.Request) {
	workspaceFrom(r.Context()).Reload()
	writeJSON(w, http.StatusAccepted, model.StatusResponse{Status: catalog.Loading.String()})
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := workspaceFrom(r.Context()).Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found.")
			return
		}
		writeError(w, http.StatusBadGateway, "Error fetching event details")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// ─── Booking ──────────────────────────────────────────────────────────────────

// bookingStatus maps each outcome to its HTTP status.
var bookingStatus = map[booking.Kind]int{
	booking.Booked:           http.StatusOK,
	booking.NotAuthenticated: http.StatusUnauthorized,
	booking.NotFound:         http.StatusNotFound,
	booking.SoldOut:          http.StatusConflict,
}

// Book handles POST /api/events/{id}/book
func (h *EventHandler) Book(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	outcome, err := workspaceFrom(r.Context()).Book(id)
	if err != nil {
		if errors.Is(err, service.ErrNotLoaded) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "booking failed")
		return
	}

	resp := model.BookingResponse{Outcome: outcome.Kind.String(), Message: outcome.Message()}
	if outcome.Kind == booking.Booked {
		seats := outcome.SeatsLeft
		resp.AvailableSeats = &seats
	}
	writeJSON(w, bookingStatus[outcome.Kind], resp)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func (h *EventHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": h.svc.Sessions()})
}
