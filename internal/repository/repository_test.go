package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KARTHI-MAKES/event-booking/internal/catalog"
	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

// fakeRows serves events as pgx.Rows.
type fakeRows struct {
	events []model.Event
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.events) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanEvent(r.events[r.pos-1], dest)
}

type fakeRow struct {
	event *model.Event
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanEvent(*r.event, dest)
}

func scanEvent(e model.Event, dest []any) error {
	if len(dest) != 7 {
		return errors.New("unexpected column count")
	}
	*dest[0].(*int) = e.ID
	*dest[1].(*string) = e.Title
	*dest[2].(*string) = e.Description
	*dest[3].(*string) = e.Category
	*dest[4].(*string) = e.Date
	*dest[5].(*int) = e.AvailableSeats
	*dest[6].(*float64) = e.Price
	return nil
}

type fakeQuerier struct {
	rows     *fakeRows
	row      fakeRow
	queryErr error
	lastSQL  string
	lastArgs []any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL, q.lastArgs = sql, args
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	return q.rows, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL, q.lastArgs = sql, args
	return q.row
}

func TestList(t *testing.T) {
	rows := &fakeRows{events: []model.Event{
		{ID: 1, Title: "Jazz Night", Category: "Music", AvailableSeats: 2, Price: 25},
		{ID: 2, Title: "Art Expo", Category: "Art", Price: 10},
	}}
	q := &fakeQuerier{rows: rows}
	repo := NewEventRepository(q)

	events, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, rows.events, events)
	assert.True(t, rows.closed)
	assert.Contains(t, q.lastSQL, "ORDER BY id")
}

func TestList_Empty(t *testing.T) {
	repo := NewEventRepository(&fakeQuerier{rows: &fakeRows{}})

	events, err := repo.Fetch(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestList_Errors(t *testing.T) {
	repo := NewEventRepository(&fakeQuerier{queryErr: errors.New("boom")})
	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "list events")

	repo = NewEventRepository(&fakeQuerier{rows: &fakeRows{err: errors.New("conn reset")}})
	_, err = repo.List(context.Background())
	assert.ErrorContains(t, err, "conn reset")
}

func TestGetByID(t *testing.T) {
	want := &model.Event{ID: 3, Title: "Rock Fest", Category: "Music", AvailableSeats: 5}
	q := &fakeQuerier{row: fakeRow{event: want}}
	repo := NewEventRepository(q)

	got, err := repo.Find(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []any{3}, q.lastArgs)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewEventRepository(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRepository_IsCatalogSource(t *testing.T) {
	var src catalog.Source = NewEventRepository(&fakeQuerier{row: fakeRow{event: &model.Event{ID: 4}}})

	got, err := catalog.Find(context.Background(), src, 4)

	require.NoError(t, err)
	assert.Equal(t, 4, got.ID)
}
