package tui

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/nexus/internal/favicon"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/search"
	"github.com/nikbrunner/nexus/internal/tui/layout"
)

// BookmarkStore is the collection the App displays and mutates.
type BookmarkStore interface {
	Bookmarks() []model.Bookmark
	Add(title, url string) (model.Bookmark, bool, error)
	Remove(id string) (bool, error)
}

// App is the main bubbletea model for Nexus Links.
type App struct {
	store        BookmarkStore
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	logger       *slog.Logger

	mode   Mode
	cursor int // index into the filtered list

	// For gg command
	lastKeyWasG bool

	search SearchState
	form   FormState

	// titleSeq numbers title lookups; only the latest one is applied
	titleSeq int

	resolver favicon.Resolver
	icons    IconLoader
	tracker  *favicon.Tracker
	rendered map[string]string // icon address -> half-block art

	openURL    func(url string) error
	copyURL    func(text string) error
	fetchTitle TitleFetcher

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store        BookmarkStore
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Logger       *slog.Logger         // optional, discards if nil

	Resolver *favicon.Resolver // optional, uses the default icon service
	Icons    IconLoader        // nil disables icon loading

	OpenURL    func(url string) error // optional, opens the system browser
	CopyURL    func(text string) error
	FetchTitle TitleFetcher
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	resolver := favicon.NewResolver("", 0)
	if params.Resolver != nil {
		resolver = *params.Resolver
	}

	app := App{
		store:        params.Store,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		logger:       logger,
		mode:         ModeNormal,
		search:       NewSearchState(layoutCfg),
		form:         NewFormState(layoutCfg),
		resolver:     resolver,
		icons:        params.Icons,
		tracker:      favicon.NewTracker(),
		rendered:     make(map[string]string),
		openURL:      params.OpenURL,
		copyURL:      params.CopyURL,
		fetchTitle:   params.FetchTitle,
		width:        80,
		height:       24,
	}
	if app.openURL == nil {
		app.openURL = OpenInBrowser
	}
	if app.copyURL == nil {
		app.copyURL = copyToClipboard
	}
	if app.fetchTitle == nil {
		app.fetchTitle = defaultTitleFetcher
	}

	return app
}

// Cursor returns the current cursor position within the shown tiles.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Query returns the active search query.
func (a App) Query() string {
	return a.search.Query()
}

// Visible returns the bookmarks currently shown, in display order.
func (a App) Visible() []model.Bookmark {
	return a.visible()
}

// Message returns the message line text and type.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Selected returns the bookmark under the cursor.
func (a App) Selected() (model.Bookmark, bool) {
	items := a.visible()
	if a.cursor < 0 || a.cursor >= len(items) {
		return model.Bookmark{}, false
	}
	return items[a.cursor], true
}

// visible recomputes the filtered list from the store and the query.
func (a App) visible() []model.Bookmark {
	return search.Filter(a.store.Bookmarks(), a.search.Query())
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

func (a App) columns() int {
	return layout.CalculateColumns(a.width, a.layoutConfig.Grid)
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.loadIcons(a.store.Bookmarks())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case iconLoadedMsg:
		a.handleIconLoaded(msg)
		return a, nil

	case openedMsg:
		if msg.Err != nil {
			a.logger.Warn("open in browser", "url", msg.URL, "error", msg.Err)
			a.setMessage(MessageError, "Open failed: "+msg.Err.Error())
		}
		return a, nil

	case titleFetchedMsg:
		return a.handleTitleFetched(msg), nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

		switch a.mode {
		case ModeSearch:
			return a.handleSearchKey(msg)
		case ModeAdd:
			return a.handleAddKey(msg)
		case ModeHelp:
			return a.handleHelpKey(msg)
		default:
			return a.handleNormalKey(msg)
		}
	}

	return a, nil
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			// This is the second g - go to top
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		// First g - wait for second
		a.lastKeyWasG = true
		return a, nil
	}

	// Reset g flag for any other key
	a.lastKeyWasG = false
	a.clearMessage()

	items := a.visible()
	cols := a.columns()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Cancel):
		if a.search.Query() != "" {
			a.search.Reset()
			a.cursor = 0
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Add):
		a.form.Open()
		a.mode = ModeAdd
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Right):
		if a.cursor < len(items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Left):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		switch {
		case a.cursor+cols < len(items):
			a.cursor += cols
		case a.cursor/cols < layout.RowCount(len(items), cols)-1:
			// Partial last row: land on the last tile
			a.cursor = len(items) - 1
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor-cols >= 0 {
			a.cursor -= cols
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(items) > 0 {
			a.cursor = len(items) - 1
		}

	case key.Matches(msg, a.keys.Open):
		if b, ok := a.Selected(); ok {
			a.setMessage(MessageInfo, "Opening "+b.Host())
			return a, a.openCmd(b)
		}

	case key.Matches(msg, a.keys.YankURL):
		if b, ok := a.Selected(); ok {
			if err := a.copyURL(b.URL); err != nil {
				a.setMessage(MessageError, "Copy failed: "+err.Error())
			} else {
				a.setMessage(MessageSuccess, "Copied "+b.URL)
			}
		}

	case key.Matches(msg, a.keys.Delete):
		if b, ok := a.Selected(); ok {
			if _, err := a.store.Remove(b.ID); err != nil {
				a.setMessage(MessageError, "Save failed: "+err.Error())
			} else {
				a.setMessage(MessageSuccess, "Deleted "+b.Title)
			}
			a.clampCursor()
		}
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.search.Reset()
		a.mode = ModeNormal
		a.cursor = 0
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		a.search.Input.Blur()
		a.mode = ModeNormal
		a.clampCursor()
		return a, nil
	}

	before := a.search.Query()
	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	if a.search.Query() != before {
		a.cursor = 0
	}
	return a, cmd
}

func (a App) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.form.Reset()
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.NextField), key.Matches(msg, a.keys.PrevField):
		a.form.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.GetTitle):
		rawURL := strings.TrimSpace(a.form.URLInput.Value())
		if rawURL == "" {
			a.setMessage(MessageWarning, "Enter a URL first")
			return a, nil
		}
		a.form.Fetching = true
		a.titleSeq++
		a.setMessage(MessageInfo, "Fetching title...")
		return a, a.fetchTitleCmd(rawURL, a.titleSeq)

	case key.Matches(msg, a.keys.Confirm):
		return a.submitForm()
	}

	var cmd tea.Cmd
	if a.form.Focus == FieldTitle {
		a.form.TitleInput, cmd = a.form.TitleInput.Update(msg)
	} else {
		a.form.URLInput, cmd = a.form.URLInput.Update(msg)
	}
	return a, cmd
}

// submitForm adds the bookmark. Invalid input keeps the form open without a message.
func (a App) submitForm() (tea.Model, tea.Cmd) {
	if !a.form.Valid() {
		return a, nil
	}

	b, added, err := a.store.Add(a.form.TitleInput.Value(), a.form.URLInput.Value())
	if !added {
		return a, nil
	}

	a.form.Reset()
	a.mode = ModeNormal
	a.cursor = 0
	if err != nil {
		a.setMessage(MessageError, "Save failed: "+err.Error())
	} else {
		a.setMessage(MessageSuccess, "Added "+b.Title)
	}
	return a, a.loadIcons([]model.Bookmark{b})
}

func (a App) handleTitleFetched(msg titleFetchedMsg) App {
	if a.mode != ModeAdd || !a.form.Fetching || msg.Seq != a.titleSeq {
		a.logger.Debug("dropped stale title lookup", "url", msg.URL)
		return a
	}
	a.form.Fetching = false

	if msg.URL != model.NormalizeURL(a.form.URLInput.Value()) {
		// URL was edited while the lookup ran
		a.logger.Debug("dropped stale title lookup", "url", msg.URL)
		a.clearMessage()
		return a
	}

	if msg.Err != nil {
		a.logger.Debug("title lookup failed", "url", msg.URL, "error", msg.Err)
		a.setMessage(MessageWarning, "No title found: "+msg.Err.Error())
		return a
	}
	if strings.TrimSpace(a.form.TitleInput.Value()) == "" {
		a.form.TitleInput.SetValue(msg.Title)
	}
	a.clearMessage()
	return a
}

func (a App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Quit) || key.Matches(msg, a.keys.Cancel) {
		a.mode = ModeNormal
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
