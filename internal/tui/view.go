package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/nexus/internal/tui/layout"
)

const (
	appName   = "Nexus Links"
	emptyText = "No bookmarks found. Add some links to get started!"
)

// helpBarHeight is the message line plus the hint line.
const helpBarHeight = 2

func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeAdd:
		return a.renderAddModal()
	}

	items := a.visible()

	var body string
	if len(items) == 0 {
		body = a.styles.Empty.Render(emptyText)
	} else {
		body = a.renderGrid(items)
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(len(items)), "", body),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	main := lipgloss.Place(a.width, a.height-helpBarHeight, lipgloss.Left, lipgloss.Top, content)
	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderHelpBar())
}

// renderHeader renders the app name, search state and shown/total count.
func (a App) renderHeader(shown int) string {
	parts := []string{a.styles.Title.Render(appName)}

	switch {
	case a.mode == ModeSearch:
		parts = append(parts, a.search.Input.View())
	case a.search.Query() != "":
		parts = append(parts, a.styles.Label.Render("/ "+a.search.Query()))
	}

	total := len(a.store.Bookmarks())
	parts = append(parts, a.styles.Count.Render(fmt.Sprintf("%d/%d", shown, total)))

	return strings.Join(parts, "  ")
}

func (a App) renderAddModal() string {
	var title, content strings.Builder

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)

	title.WriteString("Add Link\n\n")
	content.WriteString(a.styles.Label.Render("Title:") + "\n")
	content.WriteString(a.form.TitleInput.View())
	content.WriteString("\n\n")
	content.WriteString(a.styles.Label.Render("URL:") + "\n")
	content.WriteString(a.form.URLInput.View())
	if a.form.Fetching {
		content.WriteString("\n\n" + a.styles.Count.Render("fetching title..."))
	}
	content.WriteString("\n\n")
	content.WriteString(a.renderHintsInline([]Hint{
		{Key: "Enter", Desc: "save"},
		{Key: "Tab", Desc: "next"},
		{Key: "Esc", Desc: "cancel"},
	}))

	modalContent := a.styles.Title.Render(title.String()) + content.String()

	// Place modal in center, then add help bar at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-helpBarHeight,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: contextual keyboard hints
	lines = append(lines, " "+a.renderHints(a.getContextualHints()))

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	return " " + msgStyle.Render(prefix+a.messageText)
}

func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("h/l  prev/next\n")
	left.WriteString("j/k  row down/up\n")
	left.WriteString("gg   top\n")
	left.WriteString("G    bottom\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("search") + "\n")
	left.WriteString("/    live filter\n")
	left.WriteString("Esc  clear filter\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("act") + "\n")
	right.WriteString("Enter open url\n")
	right.WriteString("Y    yank url\n")
	right.WriteString("a    add link\n")
	right.WriteString("d    delete\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("form") + "\n")
	right.WriteString("Tab  next field\n")
	right.WriteString("C-t  fetch title\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close"))

	// Join columns
	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	// Top-left aligned, brutalist style
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
