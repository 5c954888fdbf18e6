package search

import (
	"testing"

	"github.com/nikbrunner/nexus/internal/model"
	"gotest.tools/v3/assert"
)

func testBookmarks() []model.Bookmark {
	return []model.Bookmark{
		{ID: "b1", Title: "GitHub", URL: "https://github.com"},
		{ID: "b2", Title: "GitLab", URL: "https://gitlab.com"},
		{ID: "b3", Title: "TanStack Router", URL: "https://tanstack.com/router"},
		{ID: "b4", Title: "Hacker News", URL: "https://news.ycombinator.com"},
	}
}

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	results := FuzzySearchBookmarks(testBookmarks(), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ExactMatch(t *testing.T) {
	results := FuzzySearchBookmarks(testBookmarks(), "GitHub")

	if len(results) == 0 {
		t.Fatal("expected at least 1 result")
	}
	if results[0].Bookmark.Title != "GitHub" {
		t.Errorf("expected GitHub first, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_FuzzyMatch(t *testing.T) {
	results := FuzzySearchBookmarks(testBookmarks(), "tsr")

	if len(results) == 0 {
		t.Fatal("expected fuzzy match for 'tsr'")
	}
	if results[0].Bookmark.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_MatchesURL(t *testing.T) {
	results := FuzzySearchBookmarks(testBookmarks(), "ycombinator")

	assert.Equal(t, len(results), 1)
	assert.Equal(t, results[0].Bookmark.ID, "b4")
	assert.Equal(t, len(results[0].MatchedIndexes), 0, "url-only match has no title highlights")
}

func TestFuzzySearchBookmarks_NoMatch(t *testing.T) {
	results := FuzzySearchBookmarks(testBookmarks(), "zzzzz")

	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	bookmarks := testBookmarks()
	assert.DeepEqual(t, Filter(bookmarks, ""), bookmarks)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title lower", "github", []string{"b1"}},
		{"title upper", "GITLAB", []string{"b2"}},
		{"url only", "ycombinator", []string{"b4"}},
		{"url mixed case", "TanStack.COM", []string{"b3"}},
		{"shared substring keeps order", "git", []string{"b1", "b2"}},
		{"matches everything", "https", []string{"b1", "b2", "b3", "b4"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testBookmarks(), tt.query)
			ids := make([]string, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			assert.DeepEqual(t, ids, tt.want)
		})
	}
}

func TestFilter_IsPure(t *testing.T) {
	bookmarks := testBookmarks()
	original := append([]model.Bookmark(nil), bookmarks...)

	first := Filter(bookmarks, "hub")
	second := Filter(bookmarks, "hub")

	assert.DeepEqual(t, first, second)
	assert.DeepEqual(t, bookmarks, original)
}

func TestFilter_NewsAndDocs(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "n", Title: "News", URL: "https://news.example"},
		{ID: "d", Title: "Docs", URL: "https://docs.example"},
	}

	got := Filter(bookmarks, "doc")
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].Title, "Docs")
}
