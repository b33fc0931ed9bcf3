package listing

import (
	"fmt"
	"strings"

	"github.com/KARTHI-MAKES/event-booking/internal/cache"
	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

// QueryUpdate carries the parts of the query a request wants to change.
// Nil fields are left alone.
type QueryUpdate struct {
	Search   *string
	Category *string
	Page     *int
}

// filtered is the page-independent half of the derivation.
type filtered struct {
	events     []model.Event
	categories []string
}

// View holds the listing query of one session and renders pages from it.
//
// The filter step is cached by (scope, catalog version, search, category), so
// moving between pages of an unchanged catalog only re-slices. A View is not
// safe for concurrent use; its owner serialises access.
type View struct {
	cache *cache.Cache
	scope string
	query model.Query
}

// NewView returns a view at model.DefaultQuery. c may be nil to disable caching.
func NewView(c *cache.Cache, scope string) *View {
	return &View{cache: c, scope: scope, query: model.DefaultQuery()}
}

// Query returns the current query.
func (v *View) Query() model.Query {
	return v.query
}

// Update applies u. Changing the search text or the category without an
// explicit page sends the view back to page 1.
func (v *View) Update(u QueryUpdate) {
	reset := false
	if u.Search != nil && *u.Search != v.query.Search {
		v.query.Search = *u.Search
		reset = true
	}
	if u.Category != nil && *u.Category != v.query.Category {
		v.query.Category = *u.Category
		reset = true
	}
	switch {
	case u.Page != nil:
		v.query.Page = max(*u.Page, 1)
	case reset:
		v.query.Page = 1
	}
}

// Render derives the current page of events. version identifies the catalog
// contents and must change whenever events does.
func (v *View) Render(events []model.Event, version uint64) model.Page {
	f := v.filter(events, version)
	return render(f.events, f.categories, v.query)
}

func (v *View) filter(events []model.Event, version uint64) filtered {
	if v.cache == nil {
		return filtered{
			events:     Filter(events, v.query.Search, v.query.Category),
			categories: Categories(events),
		}
	}

	key := fmt.Sprintf("%s|%d|%q|%q", v.scope, version, strings.ToLower(v.query.Search), v.query.Category)
	if hit, ok := v.cache.Get(key); ok {
		return hit.(filtered)
	}
	f := filtered{
		events:     Filter(events, v.query.Search, v.query.Category),
		categories: Categories(events),
	}
	v.cache.Set(key, f)
	return f
}
