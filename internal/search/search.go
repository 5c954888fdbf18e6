package search

import (
	"sort"

	"github.com/nikbrunner/nexus/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int // indexes into the title, empty when only the url matched
	Score          int
}

// bookmarkTitles implements fuzzy.Source over titles.
type bookmarkTitles []*model.Bookmark

func (bt bookmarkTitles) String(i int) string { return bt[i].Title }
func (bt bookmarkTitles) Len() int            { return len(bt) }

// bookmarkURLs implements fuzzy.Source over urls.
type bookmarkURLs []*model.Bookmark

func (bu bookmarkURLs) String(i int) string { return bu[i].URL }
func (bu bookmarkURLs) Len() int            { return len(bu) }

// FuzzySearchBookmarks matches query against titles and urls.
// A bookmark matching both keeps its title match. Results are sorted by
// score, best first.
func FuzzySearchBookmarks(bookmarks []model.Bookmark, query string) []SearchResult {
	if query == "" {
		return nil
	}

	ptrs := make([]*model.Bookmark, len(bookmarks))
	for i := range bookmarks {
		ptrs[i] = &bookmarks[i]
	}

	byIndex := make(map[int]SearchResult)
	for _, m := range fuzzy.FindFrom(query, bookmarkTitles(ptrs)) {
		byIndex[m.Index] = SearchResult{
			Bookmark:       ptrs[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	for _, m := range fuzzy.FindFrom(query, bookmarkURLs(ptrs)) {
		if _, ok := byIndex[m.Index]; ok {
			continue
		}
		byIndex[m.Index] = SearchResult{
			Bookmark: ptrs[m.Index],
			Score:    m.Score,
		}
	}

	results := make([]SearchResult, 0, len(byIndex))
	indexes := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indexes = append(indexes, idx)
	}
	// Stable tie-break on collection order
	sort.Ints(indexes)
	for _, idx := range indexes {
		results = append(results, byIndex[idx])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}
