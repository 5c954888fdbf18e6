package tui

import (
	"context"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/nexus/internal/favicon"
	"github.com/nikbrunner/nexus/internal/model"
)

// IconLoader loads an icon image from its address.
type IconLoader interface {
	Load(ctx context.Context, iconURL string) (image.Image, error)
}

// iconLoadedMsg carries the outcome of one icon load back to Update.
type iconLoadedMsg struct {
	IconURL string
	Image   image.Image
	Err     error
}

// loadIcons starts a load for every icon address not seen before.
func (a App) loadIcons(bookmarks []model.Bookmark) tea.Cmd {
	if a.icons == nil {
		return nil
	}

	var cmds []tea.Cmd
	for _, b := range bookmarks {
		iconURL, ok := a.resolver.Resolve(b.URL)
		if !ok || !a.tracker.Begin(iconURL) {
			continue
		}
		cmds = append(cmds, loadIconCmd(a.icons, iconURL))
	}
	return tea.Batch(cmds...)
}

func loadIconCmd(loader IconLoader, iconURL string) tea.Cmd {
	return func() tea.Msg {
		img, err := loader.Load(context.Background(), iconURL)
		return iconLoadedMsg{IconURL: iconURL, Image: img, Err: err}
	}
}

// handleIconLoaded settles the icon state. Only the first outcome counts.
func (a *App) handleIconLoaded(msg iconLoadedMsg) {
	if msg.Err != nil || msg.Image == nil {
		if a.tracker.Failed(msg.IconURL) {
			a.logger.Debug("icon load failed", "icon", msg.IconURL, "error", msg.Err)
		}
		return
	}

	g := a.layoutConfig.Grid
	if a.tracker.Loaded(msg.IconURL, msg.Image) {
		a.rendered[msg.IconURL] = favicon.RenderHalfBlocks(msg.Image, g.IconCols, g.IconRows)
	}
}

// IconState returns the display state of a bookmark's icon.
// ok is false when the url yields no icon address.
func (a App) IconState(b model.Bookmark) (state favicon.State, ok bool) {
	iconURL, ok := a.resolver.Resolve(b.URL)
	if !ok {
		return favicon.Failed, false
	}
	if a.icons == nil {
		return favicon.Failed, true
	}
	state, _ = a.tracker.State(iconURL)
	return state, true
}

// iconView renders the icon cell block of a tile.
func (a App) iconView(b model.Bookmark) string {
	g := a.layoutConfig.Grid
	iconURL, ok := a.resolver.Resolve(b.URL)
	if !ok || a.icons == nil {
		return favicon.LinkGlyph(g.IconCols, g.IconRows)
	}

	switch state, _ := a.tracker.State(iconURL); state {
	case favicon.Loaded:
		return a.rendered[iconURL]
	case favicon.Failed:
		return favicon.LinkGlyph(g.IconCols, g.IconRows)
	default:
		return favicon.PendingGlyph(g.IconCols, g.IconRows)
	}
}
