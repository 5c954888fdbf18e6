package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nikbrunner/nexus/internal/model"
)

// BookmarksKey is the fixed key under which the collection is stored.
const BookmarksKey = "bookmarks"

// ErrCorruptData is returned when a stored value does not have the expected shape.
var ErrCorruptData = errors.New("stored bookmarks are corrupt")

// EncodeBookmarks serializes the collection as a JSON array.
// An empty collection encodes as [] rather than null.
func EncodeBookmarks(bookmarks []model.Bookmark) (string, error) {
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	data, err := json.MarshalIndent(bookmarks, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeBookmarks parses a stored JSON array back into bookmarks.
// Every record must validate and ids must be unique.
func DecodeBookmarks(raw string) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	if err := json.Unmarshal([]byte(raw), &bookmarks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if bookmarks == nil {
		return []model.Bookmark{}, nil
	}

	seen := make(map[string]bool, len(bookmarks))
	for i, b := range bookmarks {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorruptData, i, err)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrCorruptData, b.ID)
		}
		seen[b.ID] = true
	}

	return bookmarks, nil
}
