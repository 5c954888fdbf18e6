package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/tui/layout"
)

// renderTile renders one bookmark as a bordered tile: icon, title, host.
func (a App) renderTile(b model.Bookmark, selected bool) string {
	g := a.layoutConfig.Grid

	icon := lipgloss.PlaceHorizontal(g.TileWidth, lipgloss.Center, a.iconView(b))
	title, _ := layout.TruncateText(b.Title, g.TileWidth, a.layoutConfig.Text)
	host := layout.TileCaption(b.Host(), g.TileWidth, a.layoutConfig.Text)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		icon,
		a.styles.TileTitle.Render(title),
		a.styles.Host.Render(host),
	)

	style := a.styles.Tile
	if selected {
		style = a.styles.TileSelected
	}
	return style.
		Width(g.TileWidth + 2). // content + horizontal padding
		Height(g.TileHeight).
		Align(lipgloss.Center).
		Render(content)
}

// renderGrid lays out tiles in rows, showing only the rows that fit
// around the cursor.
func (a App) renderGrid(items []model.Bookmark) string {
	g := a.layoutConfig.Grid
	cols := a.columns()
	totalRows := layout.RowCount(len(items), cols)
	visibleRows := layout.CalculateVisibleRows(a.height, g)
	start, end := layout.CalculateVisibleListItems(visibleRows, a.cursor/cols, totalRows)

	gap := strings.Repeat(" ", g.Gap)
	rows := make([]string, 0, end-start)
	for r := start; r < end; r++ {
		var tiles []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(items) {
				break
			}
			if c > 0 {
				tiles = append(tiles, gap)
			}
			tiles = append(tiles, a.renderTile(items[i], i == a.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
