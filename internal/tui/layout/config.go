package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Grid  GridConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// GridConfig holds tile grid configuration.
type GridConfig struct {
	// TileWidth is the content width of a tile, without border and padding.
	TileWidth int

	// TileHeight is the content height of a tile, without border.
	TileHeight int

	// TileChromeWidth is added to TileWidth for border (2) and padding (2).
	TileChromeWidth int

	// TileChromeHeight is added to TileHeight for the border.
	TileChromeHeight int

	// IconCols and IconRows size the favicon inside a tile.
	IconCols int
	IconRows int

	// Gap is the number of blank columns between tiles.
	Gap int

	// WidthReduction is subtracted from terminal width for app padding.
	WidthReduction int

	// HeightReduction is subtracted from terminal height for grid content.
	// Accounts for: app padding (1) + header (1) + spacer (1) + help bar (2) + spacer (1) = 6
	HeightReduction int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	TitleCharLimit  int
	URLCharLimit    int
	SearchCharLimit int

	// Display widths
	StandardWidth int // Used for title and URL
	SearchWidth   int // Used for the header search input
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Grid: GridConfig{
			TileWidth:        16,
			TileHeight:       6, // icon (4) + title (1) + host (1)
			TileChromeWidth:  4,
			TileChromeHeight: 2,
			IconCols:         8,
			IconRows:         4,
			Gap:              1,
			WidthReduction:   4,
			HeightReduction:  6,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  50,
			MinWidth:             40,
			MaxWidth:             70,
			HelpLeftColumnWidth:  20,
			HelpRightColumnWidth: 22,
		},
		Input: InputConfig{
			TitleCharLimit:  100,
			URLCharLimit:    500,
			SearchCharLimit: 100,
			StandardWidth:   40,
			SearchWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
