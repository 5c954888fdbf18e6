package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/nexus/internal/tui/layout"
)

// Mode is the current interaction mode of the App.
type Mode int

const (
	ModeNormal Mode = iota // grid browsing
	ModeSearch             // search input focused
	ModeAdd                // creation form open
	ModeHelp               // help overlay
)

// MessageType classifies the message line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// FormField identifies a creation form input.
type FormField int

const (
	FieldTitle FormField = iota
	FieldURL
)

// FormState holds the creation form inputs.
type FormState struct {
	TitleInput textinput.Model
	URLInput   textinput.Model
	Focus      FormField
	Fetching   bool // page title lookup in flight
}

// NewFormState creates a FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig) FormState {
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = cfg.Input.TitleCharLimit
	titleInput.Width = cfg.Input.StandardWidth

	urlInput := textinput.New()
	urlInput.Placeholder = "example.com"
	urlInput.CharLimit = cfg.Input.URLCharLimit
	urlInput.Width = cfg.Input.StandardWidth

	return FormState{
		TitleInput: titleInput,
		URLInput:   urlInput,
	}
}

// Open clears both fields and focuses the title.
func (f *FormState) Open() {
	f.Reset()
	f.focus(FieldTitle)
}

// Reset discards both fields.
func (f *FormState) Reset() {
	f.TitleInput.Reset()
	f.URLInput.Reset()
	f.TitleInput.Blur()
	f.URLInput.Blur()
	f.Focus = FieldTitle
	f.Fetching = false
}

// Toggle moves focus to the other field.
func (f *FormState) Toggle() {
	if f.Focus == FieldTitle {
		f.focus(FieldURL)
	} else {
		f.focus(FieldTitle)
	}
}

func (f *FormState) focus(field FormField) {
	f.Focus = field
	if field == FieldTitle {
		f.URLInput.Blur()
		f.TitleInput.Focus()
	} else {
		f.TitleInput.Blur()
		f.URLInput.Focus()
	}
}

// Valid reports whether both trimmed fields are non-empty.
func (f FormState) Valid() bool {
	return strings.TrimSpace(f.TitleInput.Value()) != "" &&
		strings.TrimSpace(f.URLInput.Value()) != ""
}

// SearchState holds the header search input. The query stays applied
// after the input loses focus.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search..."
	input.Prompt = "/ "
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}

// Query returns the active query.
func (s SearchState) Query() string {
	return s.Input.Value()
}

// Reset clears the query.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Input.Blur()
}
