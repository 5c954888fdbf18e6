package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

var (
	ErrEmptyTitle = errors.New("bookmark title is empty")
	ErrEmptyURL   = errors.New("bookmark url is empty")
	ErrEmptyID    = errors.New("bookmark id is empty")
)

// Bookmark represents a saved link.
type Bookmark struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title string
	URL   string
}

// NewBookmark creates a Bookmark with a generated UUID and creation time.
// Title and URL are trimmed; the URL gets an https:// scheme when it has none.
func NewBookmark(params NewBookmarkParams) (Bookmark, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return Bookmark{}, ErrEmptyTitle
	}
	if strings.TrimSpace(params.URL) == "" {
		return Bookmark{}, ErrEmptyURL
	}

	return Bookmark{
		ID:        GenerateUUID(),
		Title:     title,
		URL:       NormalizeURL(params.URL),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NormalizeURL trims raw and prefixes https:// unless it already starts with "http".
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "http") {
		return trimmed
	}
	return "https://" + trimmed
}

// Validate checks the fields every stored bookmark must carry.
func (b Bookmark) Validate() error {
	switch {
	case b.ID == "":
		return ErrEmptyID
	case strings.TrimSpace(b.Title) == "":
		return ErrEmptyTitle
	case strings.TrimSpace(b.URL) == "":
		return ErrEmptyURL
	}
	return nil
}

// Host returns the host part of the bookmark URL, or "" if it can't be parsed.
func (b Bookmark) Host() string {
	u, err := url.Parse(b.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
