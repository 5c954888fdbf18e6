package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nikbrunner/nexus/internal/model"
	"gotest.tools/v3/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare domain", "example.com", "https://example.com"},
		{"http kept", "http://example.com", "http://example.com"},
		{"https kept", "https://example.com", "https://example.com"},
		{"surrounding whitespace", "  example.com/path  ", "https://example.com/path"},
		{"whitespace before scheme", "  http://example.com", "http://example.com"},
		{"ftp gets prefixed", "ftp://example.com", "https://ftp://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.NormalizeURL(tt.input); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewBookmark(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)

	b, err := model.NewBookmark(model.NewBookmarkParams{
		Title: "  Example  ",
		URL:   " example.com ",
	})
	assert.NilError(t, err)

	assert.Equal(t, b.Title, "Example")
	assert.Equal(t, b.URL, "https://example.com")
	assert.Assert(t, b.ID != "", "expected generated id")
	assert.Assert(t, b.CreatedAt.After(before))
	assert.Equal(t, b.CreatedAt.Location(), time.UTC)
}

func TestNewBookmark_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		b, err := model.NewBookmark(model.NewBookmarkParams{Title: "t", URL: "u"})
		assert.NilError(t, err)
		if seen[b.ID] {
			t.Fatalf("duplicate id %s", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestNewBookmark_RejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name   string
		params model.NewBookmarkParams
		want   error
	}{
		{"empty title", model.NewBookmarkParams{Title: "", URL: "example.com"}, model.ErrEmptyTitle},
		{"whitespace title", model.NewBookmarkParams{Title: " \t ", URL: "example.com"}, model.ErrEmptyTitle},
		{"empty url", model.NewBookmarkParams{Title: "Example", URL: ""}, model.ErrEmptyURL},
		{"whitespace url", model.NewBookmarkParams{Title: "Example", URL: "   "}, model.ErrEmptyURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewBookmark(tt.params)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBookmark_Validate(t *testing.T) {
	valid := model.Bookmark{ID: "b1", Title: "Docs", URL: "https://go.dev"}
	assert.NilError(t, valid.Validate())

	noID := valid
	noID.ID = ""
	assert.ErrorIs(t, noID.Validate(), model.ErrEmptyID)

	noTitle := valid
	noTitle.Title = " "
	assert.ErrorIs(t, noTitle.Validate(), model.ErrEmptyTitle)

	noURL := valid
	noURL.URL = ""
	assert.ErrorIs(t, noURL.Validate(), model.ErrEmptyURL)
}

func TestBookmark_Host(t *testing.T) {
	assert.Equal(t, model.Bookmark{URL: "https://news.ycombinator.com/item?id=1"}.Host(), "news.ycombinator.com")
	assert.Equal(t, model.Bookmark{URL: "https://example.com:8080/x"}.Host(), "example.com")
	assert.Equal(t, model.Bookmark{URL: "://broken"}.Host(), "")
}

func TestBookmark_JSONFieldNames(t *testing.T) {
	b := model.Bookmark{
		ID:        "b1",
		Title:     "Example",
		URL:       "https://example.com",
		CreatedAt: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(b)
	assert.NilError(t, err)
	assert.Equal(t, string(data),
		`{"id":"b1","title":"Example","url":"https://example.com","createdAt":"2025-01-15T10:30:00Z"}`)
}

func TestCollection_PrependAndWithout(t *testing.T) {
	var c model.Collection
	c = c.Prepend(model.Bookmark{ID: "b1"})
	c = c.Prepend(model.Bookmark{ID: "b2"})

	assert.Equal(t, len(c), 2)
	assert.Equal(t, c[0].ID, "b2", "newest bookmark must come first")

	rest, found := c.Without("b1")
	assert.Assert(t, found)
	assert.Equal(t, len(rest), 1)
	assert.Equal(t, rest[0].ID, "b2")

	same, found := c.Without("missing")
	assert.Assert(t, !found)
	assert.Equal(t, len(same), 2)
}

func TestCollection_GetBookmarkByID(t *testing.T) {
	c := model.Collection{
		{ID: "b1", Title: "One"},
		{ID: "b2", Title: "Two"},
	}

	b := c.GetBookmarkByID("b2")
	if b == nil {
		t.Fatal("expected to find bookmark b2")
	}
	if b.Title != "Two" {
		t.Errorf("expected title 'Two', got %q", b.Title)
	}

	if c.GetBookmarkByID("nonexistent") != nil {
		t.Error("expected nil for nonexistent bookmark")
	}
}

func TestCollection_CloneIsIndependent(t *testing.T) {
	c := model.Collection{{ID: "b1", Title: "One"}}
	clone := c.Clone()
	clone[0].Title = "Changed"

	assert.Equal(t, c[0].Title, "One")
}
