package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KARTHI-MAKES/event-booking/internal/auth"
	"github.com/KARTHI-MAKES/event-booking/internal/booking"
	"github.com/KARTHI-MAKES/event-booking/internal/cache"
	"github.com/KARTHI-MAKES/event-booking/internal/catalog"
	"github.com/KARTHI-MAKES/event-booking/internal/listing"
	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

// Listing is the rendered state of the listing view.
type Listing struct {
	Status catalog.Status
	// Err is set when Status is catalog.Failed.
	Err string
	// Page is set when Status is catalog.Loaded.
	Page model.Page
}

// Workspace is the state of one browser session: its login, its copy of the
// catalog and its listing query. Every method holds the workspace lock for
// its whole run, so operations on one session apply one at a time.
type Workspace struct {
	id     string
	source catalog.Source
	views  *cache.Cache
	logger zerolog.Logger

	session *auth.Session

	mu      sync.Mutex
	loader  *catalog.Loader
	events  []model.Event
	loaded  bool
	version uint64
	view    *listing.View
}

func newWorkspace(id string, source catalog.Source, views *cache.Cache, creds []auth.Credential, logger zerolog.Logger) *Workspace {
	w := &Workspace{
		id:      id,
		source:  source,
		views:   views,
		logger:  logger.With().Str("session", id).Logger(),
		session: auth.NewSession(creds),
	}
	w.mount()
	return w
}

// mount starts a fresh catalog load and resets the listing. Each mount gets
// its own view cache scope, since versions restart when a session id is
// mounted again. Callers hold mu or own w exclusively.
func (w *Workspace) mount() {
	w.loader = catalog.NewLoader(w.source)
	w.loader.Start(context.Background())
	w.events = nil
	w.loaded = false
	w.view = listing.NewView(w.views, w.id+"/"+uuid.NewString())
}

// sync adopts the loader result once it is available. Callers hold mu.
func (w *Workspace) sync() catalog.State {
	state := w.loader.State()
	if state.Status == catalog.Loaded && !w.loaded {
		w.events = state.Events
		w.loaded = true
		w.version++
		w.logger.Debug().Int("events", len(w.events)).Msg("catalog loaded")
	}
	if state.Status == catalog.Failed && !w.loaded {
		w.logger.Warn().Str("error", state.Err).Msg("catalog load failed")
	}
	return state
}

// ID returns the session id.
func (w *Workspace) ID() string {
	return w.id
}

// Login authenticates the session.
func (w *Workspace) Login(email, password string) error {
	if err := w.session.Login(email, password); err != nil {
		w.logger.Info().Str("email", email).Msg("login rejected")
		return err
	}
	w.logger.Info().Str("email", email).Msg("logged in")
	return nil
}

// Logout clears the session user.
func (w *Workspace) Logout() {
	w.session.Logout()
	w.logger.Info().Msg("logged out")
}

// Session describes the authentication state.
func (w *Workspace) Session() model.SessionResponse {
	resp := model.SessionResponse{Error: w.session.LastError()}
	if user, ok := w.session.CurrentUser(); ok {
		resp.User = &user
	}
	return resp
}

// Listing applies u to the query and renders the current page. It waits for
// the catalog load until ctx ends; if the load is still running then, the
// result reports catalog.Loading.
func (w *Workspace) Listing(ctx context.Context, u listing.QueryUpdate) Listing {
	w.mu.Lock()
	loader := w.loader
	w.mu.Unlock()

	loader.Wait(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.view.Update(u)
	state := w.sync()
	if !w.loaded {
		return Listing{Status: state.Status, Err: state.Err}
	}
	return Listing{Status: catalog.Loaded, Page: w.view.Render(w.events, w.version)}
}

// Query returns the current listing query.
func (w *Workspace) Query() model.Query {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view.Query()
}

// Book takes one seat of event id for the logged in user.
func (w *Workspace) Book(id int) (booking.Outcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sync()
	if !w.loaded {
		return booking.Outcome{}, ErrNotLoaded
	}

	updated, outcome := booking.Book(w.events, id, w.session.Authenticated())
	if outcome.Kind == booking.Booked {
		w.events = updated
		w.version++
	}

	w.logger.Info().
		Int("event_id", id).
		Str("outcome", outcome.Kind.String()).
		Int("seats_left", outcome.SeatsLeft).
		Msg("booking attempt")
	return outcome, nil
}

// Reload remounts the listing: the in-flight load is canceled, a new one
// starts, and bookings made so far are discarded.
func (w *Workspace) Reload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.loader.Cancel()
	w.mount()
	w.logger.Debug().Msg("listing remounted")
}

// Detail loads one event straight from the source, independent of the
// session's catalog copy.
func (w *Workspace) Detail(ctx context.Context, id int) (*model.Event, error) {
	event, err := catalog.Find(ctx, w.source, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, catalog.ErrNotFound
		}
		w.logger.Warn().Err(err).Int("event_id", id).Msg("event detail fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrDetailFetch, err)
	}
	return event, nil
}

func (w *Workspace) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.loader.Cancel()
}
