package tui

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/pageinfo"
)

// TitleFetcher looks up the title of the page at url.
type TitleFetcher func(ctx context.Context, url string) (string, error)

const titleFetchTimeout = 10 * time.Second

type openedMsg struct {
	URL string
	Err error
}

type titleFetchedMsg struct {
	Seq   int
	URL   string
	Title string
	Err   error
}

// OpenInBrowser opens url without letting the launcher write to the terminal.
func OpenInBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func defaultTitleFetcher(ctx context.Context, url string) (string, error) {
	client := &http.Client{Timeout: titleFetchTimeout}
	return pageinfo.FetchTitle(ctx, client, url)
}

func (a App) openCmd(b model.Bookmark) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		return openedMsg{URL: b.URL, Err: open(b.URL)}
	}
}

func (a App) fetchTitleCmd(rawURL string, seq int) tea.Cmd {
	fetch := a.fetchTitle
	url := model.NormalizeURL(rawURL)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), titleFetchTimeout)
		defer cancel()
		title, err := fetch(ctx, url)
		return titleFetchedMsg{Seq: seq, URL: url, Title: strings.TrimSpace(title), Err: err}
	}
}
