package memory

import (
	"slices"
	"strings"
)

// DefaultTitle is reported by items created without a title.
const DefaultTitle = "untitled"

// Item is a text buffer the workspace can place. It implements the optional
// ports capabilities (title, class list, modification tracking).
type Item struct {
	id            string
	title         string
	classes       []string
	text          strings.Builder
	modified      bool
	trackModified bool
	destroyed     bool
}

// ID returns the item identifier.
func (it *Item) ID() string { return it.id }

// Title returns the item title, or DefaultTitle when unset.
func (it *Item) Title() string {
	if it.title == "" {
		return DefaultTitle
	}
	return it.title
}

// SetTitle overrides the title.
func (it *Item) SetTitle(title string) { it.title = title }

// AddClass appends class names, ignoring blanks and duplicates.
func (it *Item) AddClass(names ...string) {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || slices.Contains(it.classes, n) {
			continue
		}
		it.classes = append(it.classes, n)
	}
}

// Classes returns a copy of the class list.
func (it *Item) Classes() []string { return slices.Clone(it.classes) }

// HasClass reports whether name is in the class list.
func (it *Item) HasClass(name string) bool { return slices.Contains(it.classes, name) }

// SetTrackModified toggles modification tracking. When off, IsModified is
// always false.
func (it *Item) SetTrackModified(track bool) { it.trackModified = track }

// Insert appends text and marks the buffer modified.
func (it *Item) Insert(s string) {
	it.text.WriteString(s)
	it.modified = true
}

// Text returns the buffer contents.
func (it *Item) Text() string { return it.text.String() }

// IsModified reports unsaved changes.
func (it *Item) IsModified() bool { return it.trackModified && it.modified }

// Destroy marks the item destroyed. The workspace drops it on its next pass.
func (it *Item) Destroy() { it.destroyed = true }

// IsDestroyed reports whether Destroy was called.
func (it *Item) IsDestroyed() bool { return it.destroyed }
