package model

// Collection is an ordered sequence of bookmarks, newest first.
type Collection []Bookmark

// Prepend returns the collection with b in front.
func (c Collection) Prepend(b Bookmark) Collection {
	result := make(Collection, 0, len(c)+1)
	result = append(result, b)
	return append(result, c...)
}

// Without returns the collection minus the bookmark with the given ID,
// and whether such a bookmark existed.
func (c Collection) Without(id string) (Collection, bool) {
	result := make(Collection, 0, len(c))
	found := false
	for _, b := range c {
		if b.ID == id {
			found = true
			continue
		}
		result = append(result, b)
	}
	return result, found
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (c Collection) GetBookmarkByID(id string) *Bookmark {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	result := make(Collection, len(c))
	copy(result, c)
	return result
}
