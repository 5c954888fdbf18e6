package pageinfo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title element",
			html: `<html><head><title>Hacker News</title></head><body></body></html>`,
			want: "Hacker News",
		},
		{
			name: "whitespace collapsed",
			html: "<title>\n  TanStack   Router\n</title>",
			want: "TanStack Router",
		},
		{
			name: "first title wins",
			html: `<title>First</title><svg><title>Second</title></svg>`,
			want: "First",
		},
		{
			name: "og fallback",
			html: `<head><meta property="og:title" content=" Go Docs "></head>`,
			want: "Go Docs",
		},
		{
			name: "title preferred over og",
			html: `<head><meta property="og:title" content="OG"><title>Real</title></head>`,
			want: "Real",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTitle(strings.NewReader(tt.html))
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestParseTitle_Missing(t *testing.T) {
	_, err := ParseTitle(strings.NewReader(`<html><body><h1>No title</h1></body></html>`))
	assert.Assert(t, errors.Is(err, ErrNoTitle))

	_, err = ParseTitle(strings.NewReader(`<title>   </title>`))
	assert.Assert(t, errors.Is(err, ErrNoTitle))
}

func TestFetchTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Example Domain</title></head></html>`))
	}))
	defer srv.Close()

	got, err := FetchTitle(context.Background(), srv.Client(), srv.URL)
	assert.NilError(t, err)
	assert.Equal(t, got, "Example Domain")

	_, err = FetchTitle(context.Background(), srv.Client(), srv.URL+"/gone")
	assert.ErrorContains(t, err, "Not Found")
}

func TestFetchTitle_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<title>late</title>`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchTitle(ctx, nil, srv.URL)
	assert.Assert(t, errors.Is(err, context.Canceled))
}
