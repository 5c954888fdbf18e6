package favicon

import "image"

// State is the display state of one icon.
type State int

const (
	Pending State = iota // not loaded yet
	Loaded               // image available
	Failed               // load failed, show the link glyph
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

type entry struct {
	state State
	img   image.Image
}

// Tracker records the load state of icons keyed by icon address.
// Bookmarks sharing a host share one entry, so each address loads once.
type Tracker struct {
	entries map[string]*entry
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]*entry)}
}

// Begin registers iconURL as pending. It returns false if the address is
// already known, in which case no new load should start.
func (t *Tracker) Begin(iconURL string) bool {
	if _, ok := t.entries[iconURL]; ok {
		return false
	}
	t.entries[iconURL] = &entry{state: Pending}
	return true
}

// Loaded moves a pending icon to Loaded. Settled icons are not changed.
func (t *Tracker) Loaded(iconURL string, img image.Image) bool {
	e, ok := t.entries[iconURL]
	if !ok || e.state != Pending {
		return false
	}
	e.state = Loaded
	e.img = img
	return true
}

// Failed moves a pending icon to Failed. It returns true only for the
// first failure of an address.
func (t *Tracker) Failed(iconURL string) bool {
	e, ok := t.entries[iconURL]
	if !ok || e.state != Pending {
		return false
	}
	e.state = Failed
	return true
}

// State returns the state of iconURL and the image when loaded.
// Unknown addresses are Pending.
func (t *Tracker) State(iconURL string) (State, image.Image) {
	e, ok := t.entries[iconURL]
	if !ok {
		return Pending, nil
	}
	return e.state, e.img
}

// Len returns the number of tracked addresses.
func (t *Tracker) Len() int {
	return len(t.entries)
}
