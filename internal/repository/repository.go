// Package repository reads the event catalog from PostgreSQL.
// It uses pgx directly (no ORM). The table is only ever read: bookings stay
// in session memory and are never written back.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/KARTHI-MAKES/event-booking/internal/catalog"
	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = catalog.ErrNotFound

// Querier is the subset of *pgxpool.Pool the repository needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const selectEvents = `SELECT id, title, description, category, date, available_seats, price
	FROM events`

// EventRepository handles catalog reads.
type EventRepository struct {
	db Querier
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db Querier) *EventRepository {
	return &EventRepository{db: db}
}

// List returns all events in catalog order.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, selectEvents+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.Date, &e.AvailableSeats, &e.Price); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id int) (*model.Event, error) {
	var e model.Event
	err := r.db.QueryRow(ctx, selectEvents+` WHERE id = $1`, id).
		Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.Date, &e.AvailableSeats, &e.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// Fetch implements catalog.Source.
func (r *EventRepository) Fetch(ctx context.Context) ([]model.Event, error) {
	return r.List(ctx)
}

// Find implements catalog.Finder.
func (r *EventRepository) Find(ctx context.Context, id int) (*model.Event, error) {
	return r.GetByID(ctx, id)
}
