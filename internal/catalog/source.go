// Package catalog fetches the event collection and tracks the loading state
// of a listing.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

// ErrBadStatus is returned by HTTPSource for any non-2xx response.
var ErrBadStatus = errors.New("network response was not ok")

// Message returns the text shown to users for a load failure.
func Message(err error) string {
	if errors.Is(err, ErrBadStatus) {
		return "Network response was not ok"
	}
	return err.Error()
}

// ErrNotFound is returned by Find when no event has the requested id.
var ErrNotFound = errors.New("event not found")

// Source delivers the whole event collection in one call.
type Source interface {
	Fetch(ctx context.Context) ([]model.Event, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]model.Event, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) ([]model.Event, error) {
	return f(ctx)
}

// Finder is implemented by sources that can look up one event directly.
type Finder interface {
	Find(ctx context.Context, id int) (*model.Event, error)
}

// Find looks up one event. Sources without a Finder are fetched in full and
// scanned.
func Find(ctx context.Context, src Source, id int) (*model.Event, error) {
	if f, ok := src.(Finder); ok {
		return f.Find(ctx, id)
	}
	events, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, ErrNotFound
}

// Decode parses a JSON array of events.
func Decode(r io.Reader) ([]model.Event, error) {
	var events []model.Event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// FileSource reads the static events document from disk.
type FileSource struct {
	Path string
}

// Fetch reads and decodes the file.
func (s FileSource) Fetch(ctx context.Context) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// HTTPSource GETs the static events document from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch performs the request. There is no retry.
func (s HTTPSource) Fetch(ctx context.Context) ([]model.Event, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrBadStatus
	}
	return Decode(resp.Body)
}
