package layout

// OuterTileWidth is the rendered width of one tile.
func OuterTileWidth(cfg GridConfig) int {
	return cfg.TileWidth + cfg.TileChromeWidth
}

// OuterTileHeight is the rendered height of one tile.
func OuterTileHeight(cfg GridConfig) int {
	return cfg.TileHeight + cfg.TileChromeHeight
}

// CalculateColumns computes how many tiles fit side by side.
// Returns at least 1.
func CalculateColumns(terminalWidth int, cfg GridConfig) int {
	available := terminalWidth - cfg.WidthReduction
	cols := (available + cfg.Gap) / (OuterTileWidth(cfg) + cfg.Gap)
	if cols < 1 {
		return 1
	}
	return cols
}

// CalculateVisibleRows computes how many tile rows fit on screen.
// Returns at least 1.
func CalculateVisibleRows(terminalHeight int, cfg GridConfig) int {
	rows := (terminalHeight - cfg.HeightReduction) / OuterTileHeight(cfg)
	if rows < 1 {
		return 1
	}
	return rows
}

// RowCount returns the number of rows needed for total tiles.
func RowCount(total, columns int) int {
	if total <= 0 || columns <= 0 {
		return 0
	}
	return (total + columns - 1) / columns
}
