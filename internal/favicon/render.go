package favicon

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"

	linkMark    = "↗"
	pendingMark = "···"
)

// RenderHalfBlocks draws img into cols x rows terminal cells. Each cell
// holds two vertically stacked pixels: the upper one as foreground of ▀,
// the lower one as background. Transparent pixels are left blank.
func RenderHalfBlocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return LinkGlyph(cols, rows)
	}

	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		var b strings.Builder
		for x := 0; x < cols; x++ {
			top := sample(img, bounds, x, 2*y, cols, 2*rows)
			bottom := sample(img, bounds, x, 2*y+1, cols, 2*rows)
			b.WriteString(cell(top, bottom))
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// LinkGlyph is shown when an icon is unavailable.
func LinkGlyph(cols, rows int) string {
	return placeholder(cols, rows, linkMark, lipgloss.Color("#7D56F4"))
}

// PendingGlyph is shown while an icon loads.
func PendingGlyph(cols, rows int) string {
	return placeholder(cols, rows, pendingMark, lipgloss.Color("#626262"))
}

func placeholder(cols, rows int, mark string, fg lipgloss.Color) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	if lipgloss.Width(mark) > cols {
		mark = " "
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Width(cols).
		Height(rows).
		Align(lipgloss.Center, lipgloss.Center).
		Render(mark)
}

// sample picks the pixel nearest to grid position (x, y) of a w x h grid.
func sample(img image.Image, bounds image.Rectangle, x, y, w, h int) color.Color {
	px := bounds.Min.X + x*bounds.Dx()/w
	py := bounds.Min.Y + y*bounds.Dy()/h
	return img.At(px, py)
}

func cell(top, bottom color.Color) string {
	topVisible := opaque(top)
	bottomVisible := opaque(bottom)

	switch {
	case topVisible && bottomVisible:
		return lipgloss.NewStyle().
			Foreground(hex(top)).
			Background(hex(bottom)).
			Render(upperHalf)
	case topVisible:
		return lipgloss.NewStyle().Foreground(hex(top)).Render(upperHalf)
	case bottomVisible:
		return lipgloss.NewStyle().Foreground(hex(bottom)).Render(lowerHalf)
	default:
		return " "
	}
}

func opaque(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a >= 0x8000
}

func hex(c color.Color) lipgloss.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B))
}
