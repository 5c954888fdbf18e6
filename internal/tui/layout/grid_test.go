package layout

import "testing"

func TestCalculateColumns(t *testing.T) {
	cfg := DefaultConfig().Grid // outer tile 20, gap 1, padding 4

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"standard terminal", 80, 3},
		{"wide terminal", 130, 6},
		{"four tiles just fit", 88, 4},
		{"narrow enforces min", 10, 1},
		{"zero width", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateColumns(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateColumns(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleRows(t *testing.T) {
	cfg := DefaultConfig().Grid // outer tile height 8, reduction 6

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"standard terminal", 24, 2},
		{"tall terminal", 46, 5},
		{"short enforces min", 10, 1},
		{"negative clamps", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVisibleRows(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculateVisibleRows(%d) = %d, want %d", tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestRowCount(t *testing.T) {
	tests := []struct {
		total, columns, want int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{7, 3, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := RowCount(tt.total, tt.columns); got != tt.want {
			t.Errorf("RowCount(%d, %d) = %d, want %d", tt.total, tt.columns, got, tt.want)
		}
	}
}
