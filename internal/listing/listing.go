// Package listing derives the visible page of the catalog from the current
// search text, category and page number.
package listing

import (
	"strings"

	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

// PageSize is the number of events shown per page.
const PageSize = 5

// Categories returns the distinct categories in first-seen order followed by
// model.AllCategories.
func Categories(events []model.Event) []string {
	seen := make(map[string]struct{}, len(events))
	out := make([]string, 0, len(events)+1)
	for _, e := range events {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	return append(out, model.AllCategories)
}

// Filter keeps the events whose title contains search (case-insensitive) and
// whose category equals category, unless category is model.AllCategories.
// Catalog order is preserved.
func Filter(events []model.Event, search, category string) []model.Event {
	needle := strings.ToLower(search)
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if !strings.Contains(strings.ToLower(e.Title), needle) {
			continue
		}
		if category != model.AllCategories && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	return out
}

// TotalPages is ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Paginate returns the slice for the 1-based page along with the page count.
// A page past the end yields an empty slice. Pages below 1 are read as 1.
func Paginate(filtered []model.Event, page int) ([]model.Event, int) {
	if page < 1 {
		page = 1
	}
	total := TotalPages(len(filtered))

	if page > total {
		return []model.Event{}, total
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(filtered))
	return filtered[start:end], total
}

// Apply runs the full derivation for q over events.
func Apply(events []model.Event, q model.Query) model.Page {
	filtered := Filter(events, q.Search, q.Category)
	return render(filtered, Categories(events), q)
}

func render(filtered []model.Event, categories []string, q model.Query) model.Page {
	visible, total := Paginate(filtered, q.Page)
	return model.Page{
		Events:     visible,
		Page:       max(q.Page, 1),
		TotalPages: total,
		Categories: categories,
		Search:     q.Search,
		Category:   q.Category,
	}
}
