package ports

import "github.com/aretw0/outlet/pkg/domain"

// Titled is implemented by items whose title can be overridden.
type Titled interface {
	Title() string
	SetTitle(title string)
}

// Classed is implemented by items that carry a class list for styling.
type Classed interface {
	AddClass(names ...string)
}

// ModifiedTracker is implemented by items that can stop reporting unsaved
// modifications (scratch outputs that should never prompt on close).
type ModifiedTracker interface {
	SetTrackModified(track bool)
}

// CommandRegistry is implemented by hosts that bind named commands to items.
// The returned function removes the binding.
type CommandRegistry interface {
	AddCommand(item Item, name string, fn func()) (remove func())
}

// CommandClose is the command hosts dispatch to close an item.
const CommandClose = "core:close"

// SameItem reports whether a and b refer to the same item.
func SameItem(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// SamePane reports whether a and b refer to the same pane.
func SamePane(a, b Pane) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// LocationOf returns the location of the pane holding item, or "" when the
// item is not placed.
func LocationOf(h Host, item Item) domain.Location {
	p := h.PaneForItem(item)
	if p == nil {
		return ""
	}
	return p.Container().Location()
}
