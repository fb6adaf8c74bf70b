// Package view derives the rendered subset of the feed: a pure projection of
// the loaded history through the active filter, search query and the
// favorite/pin overlays.
package view

import (
	"strings"

	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

// FilterAll disables type filtering.
const FilterAll = "all"

// Item is one renderable feed entry with its overlay annotations.
type Item struct {
	domain.Message
	Favorite bool
}

// Projection is the full render input: the main sequence oldest-first, plus
// the optional distinguished pinned slot.
type Projection struct {
	Items  []Item
	Pinned *Item
}

// Matches reports whether a message satisfies both the type filter and the
// search query. The query is a case-insensitive substring match against
// content or filename; an empty query matches everything.
func Matches(msg domain.Message, filter, query string) bool {
	if filter != "" && filter != FilterAll && string(msg.Type) != filter {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(msg.Content), q) ||
		strings.Contains(strings.ToLower(msg.Filename), q)
}

// Project computes the visible subset. The pinned message is rendered once in
// the pinned slot iff it satisfies both predicates, and is then excluded from
// the main sequence; when it fails either predicate it is hidden entirely but
// stays pinned in the overlay.
func Project(messages []domain.Message, filter, query string, favorites map[string]struct{}, pinned *domain.Message) Projection {
	var projection Projection

	if pinned != nil && Matches(*pinned, filter, query) {
		_, fav := favorites[pinned.Id]
		projection.Pinned = &Item{Message: *pinned, Favorite: fav}
	}

	for _, msg := range messages {
		if projection.Pinned != nil && msg.Id == projection.Pinned.Id {
			continue // already shown in the pinned slot
		}
		if !Matches(msg, filter, query) {
			continue
		}
		_, fav := favorites[msg.Id]
		projection.Items = append(projection.Items, Item{Message: msg, Favorite: fav})
	}

	return projection
}
