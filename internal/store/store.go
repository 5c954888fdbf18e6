// Package store owns the bookmark collection and mirrors it to durable storage.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/storage"
)

var (
	ErrNotFound    = errors.New("bookmark not found")
	ErrAmbiguousID = errors.New("id prefix matches more than one bookmark")
)

// Options configures Open.
type Options struct {
	// Key overrides storage.BookmarksKey.
	Key string
	// DiscardCorrupt starts with an empty collection when the stored value is
	// corrupt, after copying it to Key+".corrupt". Without it Open fails.
	DiscardCorrupt bool
	Logger         *slog.Logger
}

// Store holds the canonical ordered collection, newest first.
// It is not safe for concurrent use; callers drive it from one goroutine.
type Store struct {
	kv        storage.KV
	key       string
	bookmarks model.Collection
	logger    *slog.Logger
}

// Open loads the collection stored in kv.
// An absent key yields an empty collection.
func Open(kv storage.KV, opts Options) (*Store, error) {
	s := &Store{
		kv:     kv,
		key:    opts.Key,
		logger: opts.Logger,
	}
	if s.key == "" {
		s.key = storage.BookmarksKey
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	raw, ok, err := kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok {
		s.bookmarks = model.Collection{}
		s.logger.Info("no stored bookmarks, starting empty", "key", s.key)
		return s, nil
	}

	bookmarks, err := storage.DecodeBookmarks(raw)
	if err != nil {
		if !opts.DiscardCorrupt {
			return nil, err
		}
		backupKey := s.key + ".corrupt"
		if backupErr := kv.Set(backupKey, raw); backupErr != nil {
			return nil, errors.Join(err, fmt.Errorf("back up corrupt data: %w", backupErr))
		}
		s.logger.Warn("discarded corrupt bookmarks", "key", s.key, "backup", backupKey, "error", err)
		bookmarks = []model.Bookmark{}
	}

	s.bookmarks = bookmarks
	s.logger.Info("loaded bookmarks", "key", s.key, "count", len(bookmarks))
	return s, nil
}

// Bookmarks returns a copy of the collection in display order.
func (s *Store) Bookmarks() []model.Bookmark {
	return s.bookmarks.Clone()
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.bookmarks)
}

// Get returns the bookmark with the given ID.
func (s *Store) Get(id string) (model.Bookmark, bool) {
	if b := s.bookmarks.GetBookmarkByID(id); b != nil {
		return *b, true
	}
	return model.Bookmark{}, false
}

// Resolve finds a bookmark by exact ID or by a unique ID prefix.
func (s *Store) Resolve(idOrPrefix string) (model.Bookmark, error) {
	if b, ok := s.Get(idOrPrefix); ok {
		return b, nil
	}
	if idOrPrefix == "" {
		return model.Bookmark{}, ErrNotFound
	}

	var matches []model.Bookmark
	for _, b := range s.bookmarks {
		if strings.HasPrefix(b.ID, idOrPrefix) {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return model.Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return model.Bookmark{}, fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
	}
}

// Add creates a bookmark and puts it first.
// Empty title or url (after trimming) is a no-op: added is false and err is nil.
// The in-memory collection keeps the bookmark even when persisting fails.
func (s *Store) Add(title, url string) (b model.Bookmark, added bool, err error) {
	b, err = model.NewBookmark(model.NewBookmarkParams{Title: title, URL: url})
	if err != nil {
		return model.Bookmark{}, false, nil
	}

	s.bookmarks = s.bookmarks.Prepend(b)
	s.logger.Debug("added bookmark", "id", b.ID, "url", b.URL)
	return b, true, s.Persist()
}

// Remove deletes the bookmark with the given ID. An unknown ID is not an
// error. The collection is persisted afterward either way.
func (s *Store) Remove(id string) (removed bool, err error) {
	s.bookmarks, removed = s.bookmarks.Without(id)
	if removed {
		s.logger.Debug("removed bookmark", "id", id)
	}
	return removed, s.Persist()
}

// Persist writes the full collection under the store key.
func (s *Store) Persist() error {
	raw, err := storage.EncodeBookmarks(s.bookmarks)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		s.logger.Error("persist bookmarks failed", "key", s.key, "error", err)
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}
