package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KARTHI-MAKES/event-booking/internal/auth"
	"github.com/KARTHI-MAKES/event-booking/internal/booking"
	"github.com/KARTHI-MAKES/event-booking/internal/catalog"
	"github.com/KARTHI-MAKES/event-booking/internal/listing"
	"github.com/KARTHI-MAKES/event-booking/internal/model"
	"github.com/KARTHI-MAKES/event-booking/internal/service"
)

func events() []model.Event {
	return []model.Event{
		{ID: 1, Title: "Jazz Night", Category: "Music", AvailableSeats: 2},
		{ID: 2, Title: "Art Expo", Category: "Art", AvailableSeats: 0},
		{ID: 3, Title: "Rock Fest", Category: "Music", AvailableSeats: 4},
		{ID: 4, Title: "Sculpture Walk", Category: "Art", AvailableSeats: 1},
		{ID: 5, Title: "Go Meetup", Category: "Tech", AvailableSeats: 9},
		{ID: 6, Title: "Jazz Brunch", Category: "Music", AvailableSeats: 3},
	}
}

type countingSource struct {
	calls atomic.Int32
	err   error
}

func (s *countingSource) Fetch(context.Context) ([]model.Event, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return events(), nil
}

func newService(src catalog.Source) *service.Service {
	return service.New(src, zerolog.Nop(), service.Options{})
}

func ptr[T any](v T) *T { return &v }

func waitLoaded(t *testing.T, w *service.Workspace) service.Listing {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	l := w.Listing(ctx, listing.QueryUpdate{})
	require.Equal(t, catalog.Loaded, l.Status)
	return l
}

func TestWorkspace_SameIDSameWorkspace(t *testing.T) {
	svc := newService(&countingSource{})
	id := service.NewSessionID()

	assert.Same(t, svc.Workspace(id), svc.Workspace(id))
	assert.NotSame(t, svc.Workspace(id), svc.Workspace(service.NewSessionID()))
	assert.Equal(t, 2, svc.Sessions())
}

func TestValidSessionID(t *testing.T) {
	assert.True(t, service.ValidSessionID(service.NewSessionID()))
	assert.False(t, service.ValidSessionID("not-a-session"))
	assert.False(t, service.ValidSessionID(""))
}

func TestWorkspace_ListingPaginates(t *testing.T) {
	src := &countingSource{}
	w := newService(src).Workspace(service.NewSessionID())

	l := waitLoaded(t, w)

	assert.Len(t, l.Page.Events, listing.PageSize)
	assert.Equal(t, 2, l.Page.TotalPages)
	assert.Equal(t, []string{"Music", "Art", "Tech", "All"}, l.Page.Categories)

	l = w.Listing(context.Background(), listing.QueryUpdate{Page: ptr(2)})
	require.Len(t, l.Page.Events, 1)
	assert.Equal(t, 6, l.Page.Events[0].ID)
	assert.Equal(t, int32(1), src.calls.Load(), "catalog is fetched once per mount")
}

func TestWorkspace_FilterChangeResetsPage(t *testing.T) {
	w := newService(&countingSource{}).Workspace(service.NewSessionID())
	waitLoaded(t, w)
	w.Listing(context.Background(), listing.QueryUpdate{Page: ptr(2)})

	l := w.Listing(context.Background(), listing.QueryUpdate{Search: ptr("jazz")})

	assert.Equal(t, 1, l.Page.Page)
	assert.Equal(t, 1, l.Page.TotalPages)
	assert.Len(t, l.Page.Events, 2)
	assert.Equal(t, model.Query{Search: "jazz", Category: model.AllCategories, Page: 1}, w.Query())
}

func TestWorkspace_BookRequiresLogin(t *testing.T) {
	w := newService(&countingSource{}).Workspace(service.NewSessionID())
	waitLoaded(t, w)

	out, err := w.Book(1)

	require.NoError(t, err)
	assert.Equal(t, booking.NotAuthenticated, out.Kind)
	assert.Equal(t, 2, waitLoaded(t, w).Page.Events[0].AvailableSeats)
}

func TestWorkspace_BookUpdatesListing(t *testing.T) {
	w := newService(&countingSource{}).Workspace(service.NewSessionID())
	waitLoaded(t, w)
	require.NoError(t, w.Login("user1@example.com", "password1"))

	out, err := w.Book(1)
	require.NoError(t, err)
	assert.Equal(t, booking.Booked, out.Kind)
	assert.Equal(t, 1, out.SeatsLeft)
	assert.Equal(t, "Booked 1 ticket for Jazz Night", out.Message())

	l := waitLoaded(t, w)
	assert.Equal(t, 1, l.Page.Events[0].AvailableSeats)

	out, err = w.Book(2)
	require.NoError(t, err)
	assert.Equal(t, booking.SoldOut, out.Kind)

	out, err = w.Book(404)
	require.NoError(t, err)
	assert.Equal(t, booking.NotFound, out.Kind)
}

func TestWorkspace_SessionsAreIsolated(t *testing.T) {
	svc := newService(&countingSource{})
	a := svc.Workspace(service.NewSessionID())
	b := svc.Workspace(service.NewSessionID())
	waitLoaded(t, a)
	waitLoaded(t, b)
	require.NoError(t, a.Login("user1@example.com", "password1"))

	_, err := a.Book(1)
	require.NoError(t, err)

	assert.Equal(t, 1, waitLoaded(t, a).Page.Events[0].AvailableSeats)
	assert.Equal(t, 2, waitLoaded(t, b).Page.Events[0].AvailableSeats)
	assert.Nil(t, b.Session().User)
}

func TestWorkspace_LoginLogout(t *testing.T) {
	w := newService(&countingSource{}).Workspace(service.NewSessionID())

	err := w.Login("user2@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", w.Session().Error)
	assert.Nil(t, w.Session().User)

	require.NoError(t, w.Login("user2@example.com", "password2"))
	require.NotNil(t, w.Session().User)
	assert.Equal(t, "user2@example.com", *w.Session().User)
	assert.Empty(t, w.Session().Error)

	w.Logout()
	assert.Nil(t, w.Session().User)
}

func TestWorkspace_LoadFailure(t *testing.T) {
	w := newService(&countingSource{err: catalog.ErrBadStatus}).Workspace(service.NewSessionID())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	l := w.Listing(ctx, listing.QueryUpdate{})

	assert.Equal(t, catalog.Failed, l.Status)
	assert.Equal(t, "Network response was not ok", l.Err)

	_, err := w.Book(1)
	assert.ErrorIs(t, err, service.ErrNotLoaded)
}

func TestWorkspace_StillLoading(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	src := catalog.SourceFunc(func(ctx context.Context) ([]model.Event, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return events(), nil
	})
	w := newService(src).Workspace(service.NewSessionID())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Equal(t, catalog.Loading, w.Listing(ctx, listing.QueryUpdate{}).Status)
	_, err := w.Book(1)
	assert.ErrorIs(t, err, service.ErrNotLoaded)
}

func TestWorkspace_ReloadDiscardsBookings(t *testing.T) {
	src := &countingSource{}
	w := newService(src).Workspace(service.NewSessionID())
	waitLoaded(t, w)
	require.NoError(t, w.Login("user1@example.com", "password1"))
	_, err := w.Book(1)
	require.NoError(t, err)
	w.Listing(context.Background(), listing.QueryUpdate{Category: ptr("Music")})

	w.Reload()
	l := waitLoaded(t, w)

	assert.Equal(t, 2, l.Page.Events[0].AvailableSeats)
	assert.Equal(t, model.AllCategories, l.Page.Category)
	assert.Equal(t, int32(2), src.calls.Load())
	assert.NotNil(t, w.Session().User, "reload keeps the login")
}

func TestWorkspace_Detail(t *testing.T) {
	w := newService(&countingSource{}).Workspace(service.NewSessionID())

	e, err := w.Detail(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Rock Fest", e.Title)

	_, err = w.Detail(context.Background(), 99)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestWorkspace_DetailFetchError(t *testing.T) {
	w := newService(&countingSource{err: errors.New("disk gone")}).Workspace(service.NewSessionID())

	_, err := w.Detail(context.Background(), 1)

	assert.ErrorIs(t, err, service.ErrDetailFetch)
	assert.NotErrorIs(t, err, catalog.ErrNotFound)
}

func TestService_EndCancelsLoad(t *testing.T) {
	canceled := make(chan struct{})
	src := catalog.SourceFunc(func(ctx context.Context) ([]model.Event, error) {
		<-ctx.Done()
		close(canceled)
		return nil, ctx.Err()
	})
	svc := newService(src)
	id := service.NewSessionID()
	svc.Workspace(id)

	svc.End(id)

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("load was not canceled")
	}
	assert.Equal(t, 0, svc.Sessions())
}

func TestService_RemountSameIDStartsClean(t *testing.T) {
	svc := newService(&countingSource{})
	id := service.NewSessionID()

	old := svc.Workspace(id)
	waitLoaded(t, old)
	require.NoError(t, old.Login("user1@example.com", "password1"))
	_, err := old.Book(1)
	require.NoError(t, err)
	waitLoaded(t, old)
	svc.End(id)

	w := svc.Workspace(id)
	require.NotSame(t, old, w)
	waitLoaded(t, w)
	require.NoError(t, w.Login("user1@example.com", "password1"))
	outcome, err := w.Book(3)
	require.NoError(t, err)
	require.Equal(t, booking.Booked, outcome.Kind)

	seats := map[int]int{}
	for _, e := range waitLoaded(t, w).Page.Events {
		seats[e.ID] = e.AvailableSeats
	}
	assert.Equal(t, 2, seats[1], "booking of the ended workspace must not show")
	assert.Equal(t, 3, seats[3])
}

func TestService_ExpiredWorkspaceIsClosed(t *testing.T) {
	canceled := make(chan struct{}, 2)
	src := catalog.SourceFunc(func(ctx context.Context) ([]model.Event, error) {
		<-ctx.Done()
		canceled <- struct{}{}
		return nil, ctx.Err()
	})
	svc := service.New(src, zerolog.Nop(), service.Options{SessionIdleTTL: 20 * time.Millisecond})
	id := service.NewSessionID()
	old := svc.Workspace(id)
	t.Cleanup(func() { svc.End(id) })

	time.Sleep(40 * time.Millisecond)
	assert.NotSame(t, old, svc.Workspace(id))

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("expired workspace kept loading")
	}
}
