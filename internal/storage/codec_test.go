package storage_test

import (
	"testing"
	"time"

	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/storage"
	"gotest.tools/v3/assert"
)

func TestEncodeBookmarks_EmptyIsArray(t *testing.T) {
	raw, err := storage.EncodeBookmarks(nil)
	assert.NilError(t, err)
	assert.Equal(t, raw, "[]")
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: "b2", Title: "Docs", URL: "https://go.dev/doc", CreatedAt: time.Date(2025, 2, 1, 9, 0, 0, 123, time.UTC)},
		{ID: "b1", Title: "News", URL: "https://news.ycombinator.com", CreatedAt: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)},
	}

	raw, err := storage.EncodeBookmarks(bookmarks)
	assert.NilError(t, err)

	decoded, err := storage.DecodeBookmarks(raw)
	assert.NilError(t, err)
	assert.DeepEqual(t, decoded, bookmarks)
}

func TestDecodeBookmarks_AcceptsOriginalFormat(t *testing.T) {
	raw := `[{"id":"0b6c","title":"Example","url":"https://example.com","createdAt":"2024-05-01T12:00:00.000Z"}]`

	decoded, err := storage.DecodeBookmarks(raw)
	assert.NilError(t, err)
	assert.Equal(t, len(decoded), 1)
	assert.Equal(t, decoded[0].Title, "Example")
	assert.Assert(t, decoded[0].CreatedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
}

func TestDecodeBookmarks_Null(t *testing.T) {
	decoded, err := storage.DecodeBookmarks("null")
	assert.NilError(t, err)
	assert.Equal(t, len(decoded), 0)
}

func TestDecodeBookmarks_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"object instead of array", `{"bookmarks":[]}`},
		{"missing id", `[{"title":"x","url":"https://x"}]`},
		{"missing url", `[{"id":"1","title":"x"}]`},
		{"missing title", `[{"id":"1","url":"https://x"}]`},
		{"bad timestamp", `[{"id":"1","title":"x","url":"https://x","createdAt":"yesterday"}]`},
		{"duplicate id", `[{"id":"1","title":"a","url":"https://a"},{"id":"1","title":"b","url":"https://b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.DecodeBookmarks(tt.raw)
			assert.ErrorIs(t, err, storage.ErrCorruptData)
		})
	}
}
