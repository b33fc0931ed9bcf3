// Package booking implements the in-memory seat booking policy.
package booking

import (
	"fmt"

	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

// Kind enumerates the possible results of a booking attempt.
type Kind int

const (
	NotAuthenticated Kind = iota
	NotFound
	SoldOut
	Booked
)

// String returns the wire name of the outcome kind.
func (k Kind) String() string {
	switch k {
	case NotAuthenticated:
		return "not_authenticated"
	case NotFound:
		return "not_found"
	case SoldOut:
		return "sold_out"
	case Booked:
		return "booked"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the structured result of Book. The presentation layer decides
// how to notify the user; Message gives the text it should show.
type Outcome struct {
	Kind Kind
	// SeatsLeft is the new seat count; only meaningful when Kind is Booked.
	SeatsLeft int
	// Title of the booked event; only set when Kind is Booked.
	Title string
}

// Message returns the user-facing notification for the outcome.
func (o Outcome) Message() string {
	switch o.Kind {
	case NotAuthenticated:
		return "You must be logged in to book a ticket."
	case SoldOut:
		return "No seats available for this event."
	case Booked:
		return "Booked 1 ticket for " + o.Title
	default:
		return "Event not found."
	}
}

// Book takes one seat from the event with the given id.
//
// The authentication check comes before the lookup and the seat check. On any
// rejection events is returned as is. On success a copy is returned with only
// the booked event changed; the input slice is never written to.
func Book(events []model.Event, id int, authenticated bool) ([]model.Event, Outcome) {
	if !authenticated {
		return events, Outcome{Kind: NotAuthenticated}
	}

	idx := indexOf(events, id)
	if idx < 0 {
		return events, Outcome{Kind: NotFound}
	}
	if events[idx].SoldOut() {
		return events, Outcome{Kind: SoldOut}
	}

	updated := make([]model.Event, len(events))
	copy(updated, events)
	updated[idx].AvailableSeats--

	return updated, Outcome{
		Kind:      Booked,
		SeatsLeft: updated[idx].AvailableSeats,
		Title:     updated[idx].Title,
	}
}

func indexOf(events []model.Event, id int) int {
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}
