package search

import (
	"strings"

	"github.com/nikbrunner/nexus/internal/model"
)

// Filter returns the bookmarks whose title or url contains query,
// ignoring case, in their original order. An empty query returns the
// input unchanged.
func Filter(bookmarks []model.Bookmark, query string) []model.Bookmark {
	if query == "" {
		return bookmarks
	}

	q := strings.ToLower(query)
	result := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.URL), q) {
			result = append(result, b)
		}
	}
	return result
}
