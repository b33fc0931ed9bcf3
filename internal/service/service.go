// Package service ties the session store, the catalog loader, the listing
// view and the booking policy together into one workspace per browser
// session.
package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KARTHI-MAKES/event-booking/internal/auth"
	"github.com/KARTHI-MAKES/event-booking/internal/cache"
	"github.com/KARTHI-MAKES/event-booking/internal/catalog"
)

// ErrNotLoaded is returned when booking before the catalog has loaded.
var ErrNotLoaded = errors.New("catalog not loaded")

// ErrDetailFetch wraps failures to load a single event for the detail view.
var ErrDetailFetch = errors.New("error fetching event details")

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	// Credentials accepted by every session; nil means auth.DemoCredentials.
	Credentials []auth.Credential
	// SessionIdleTTL is how long an untouched workspace is kept.
	SessionIdleTTL time.Duration
	// ViewCacheTTL is how long a filtered listing is cached.
	ViewCacheTTL time.Duration
}

func (o Options) withDefaults() Options {
	if o.SessionIdleTTL <= 0 {
		o.SessionIdleTTL = 30 * time.Minute
	}
	if o.ViewCacheTTL <= 0 {
		o.ViewCacheTTL = 2 * time.Minute
	}
	return o
}

// Service hands out workspaces keyed by session id.
type Service struct {
	source catalog.Source
	opts   Options
	logger zerolog.Logger

	views      *cache.Cache
	workspaces *cache.Cache
	mu         sync.Mutex
}

// New constructs a Service reading the catalog from source.
func New(source catalog.Source, logger zerolog.Logger, opts Options) *Service {
	opts = opts.withDefaults()
	s := &Service{
		source:     source,
		opts:       opts,
		logger:     logger,
		views:      cache.New(opts.ViewCacheTTL, opts.ViewCacheTTL),
		workspaces: cache.New(opts.SessionIdleTTL, opts.SessionIdleTTL),
	}
	s.workspaces.OnEvicted(func(id string, v any) {
		v.(*Workspace).close()
		s.logger.Debug().Str("session", id).Msg("workspace evicted")
	})
	return s
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id has the shape NewSessionID produces.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Workspace returns the workspace for id, mounting a new one if the session
// is unknown or has idled out. Each call extends the idle deadline.
func (s *Service) Workspace(id string) *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.workspaces.Get(id); ok {
		w := v.(*Workspace)
		s.workspaces.Set(id, w)
		return w
	}

	// An expired entry the janitor has not swept yet still holds a running
	// loader; deleting it fires the eviction hook.
	s.workspaces.Delete(id)
	w := newWorkspace(id, s.source, s.views, s.opts.Credentials, s.logger)
	s.workspaces.Set(id, w)
	s.logger.Debug().Str("session", id).Msg("workspace mounted")
	return w
}

// End discards the workspace for id and cancels any in-flight load.
func (s *Service) End(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces.Delete(id)
}

// Sessions returns the number of live workspaces.
func (s *Service) Sessions() int {
	return s.workspaces.ItemCount()
}
