package catalog

import (
	"context"
	"sync"

	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

// Status is the phase of a catalog load.
type Status int

const (
	Loading Status = iota
	Loaded
	Failed
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// State is the caller-visible result of a load.
type State struct {
	Status Status
	Events []model.Event
	// Err is the failure message when Status is Failed.
	Err string
}

// Loader runs a single fetch from a Source and publishes its outcome.
//
// A Loader is good for one mount of a listing: Start fetches once, and
// further calls do nothing. Cancel aborts an in-flight fetch; a cancelled
// fetch never publishes, so State stays Loading.
type Loader struct {
	source Source

	once   sync.Once
	done   chan struct{}
	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewLoader returns a loader in the Loading state.
func NewLoader(source Source) *Loader {
	return &Loader{
		source: source,
		done:   make(chan struct{}),
		cancel: func() {},
	}
}

// Start begins the fetch in the background. The fetch runs under a context
// derived from ctx, so canceling ctx also aborts it.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		l.mu.Lock()
		l.cancel = cancel
		l.mu.Unlock()

		go l.run(ctx)
	})
}

func (l *Loader) run(ctx context.Context) {
	events, err := l.source.Fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		l.state = State{Status: Failed, Err: Message(err)}
	} else {
		l.state = State{Status: Loaded, Events: events}
	}
	l.cancel()
	close(l.done)
}

// State returns the current state without blocking.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Wait blocks until the fetch completes or ctx ends, then returns State.
func (l *Loader) Wait(ctx context.Context) State {
	select {
	case <-l.done:
	case <-ctx.Done():
	}
	return l.State()
}

// Done is closed once a result has been published.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Cancel aborts an in-flight fetch. It is safe to call at any time.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancel()
}
