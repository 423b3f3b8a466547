package gallery

import (
	"sort"
	"strings"
)

// Collection selects the base record set for filtering.
type Collection int

const (
	// CollectionAll starts from every record.
	CollectionAll Collection = iota
	// CollectionFavorites starts only from records marked as favorites.
	CollectionFavorites
)

// View is the derived, non-persisted filter state: which base collection is
// active, the free-text search query, and the selected tag set (empty means
// no tag filter).
type View struct {
	Collection   Collection
	Query        string
	SelectedTags []string
}

// Matches reports whether a single record passes the view's filters.
func (v View) Matches(w Wallpaper) bool {
	if v.Collection == CollectionFavorites && !w.IsFavorite {
		return false
	}
	if q := strings.TrimSpace(v.Query); q != "" && !matchesQuery(w, q) {
		return false
	}
	if len(v.SelectedTags) > 0 {
		any := false
		for _, tag := range v.SelectedTags {
			if w.HasTag(tag) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

// matchesQuery checks the title, author and every tag for a case-insensitive
// substring match.
func matchesQuery(w Wallpaper, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(w.Title), q) ||
		strings.Contains(strings.ToLower(w.Author), q) {
		return true
	}
	for _, tag := range w.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Visible computes the filtered sequence for the given view: favorites
// narrowing first, then the search query, then the tag OR-filter. Collection
// order (newest-uploaded-first) is preserved. Pure read, no side effects.
func (s *Store) Visible(view View) []Wallpaper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Wallpaper, 0, len(s.records))
	for _, w := range s.records {
		if view.Matches(w) {
			result = append(result, w)
		}
	}
	return result
}

// AllTags returns the union of every record's tags, lexicographically sorted.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var tags []string
	for _, w := range s.records {
		for _, tag := range w.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
