package ports

import (
	"context"

	"github.com/aretw0/outlet/pkg/domain"
)

// Item is a content item the host can place in a pane.
// Identity is carried by ID; two Items with the same ID are the same item.
type Item interface {
	ID() string
	Destroy()
	IsDestroyed() bool
}

// Pane holds zero or more items and exactly one active item when non-empty.
type Pane interface {
	ID() string

	// Container returns the container (center or dock) the pane belongs to.
	Container() Container

	Items() []Item
	ActiveItem() Item

	// ActivateItem makes item the active item of the pane. The item must
	// already be in the pane.
	ActivateItem(item Item)

	// Activate makes the pane the host's active pane.
	Activate()

	// Split creates a new pane next to this one in the given direction and
	// returns it. The new pane becomes the host's active pane.
	Split(dir domain.SplitDirection) Pane

	// Siblings returns the panes immediately before and after this one in the
	// parent split. Either may be nil.
	Siblings() (before, after Pane)

	// MoveItemToPane moves item from this pane into dest. The destination's
	// active item only changes when dest was empty.
	MoveItemToPane(item Item, dest Pane)

	// Destroy removes an empty center pane from the layout. Panes holding
	// items, dock panes and the last center pane are kept.
	Destroy()
	IsDestroyed() bool
}

// Container is a set of panes with one active pane.
type Container interface {
	Location() domain.Location
	ActivePane() Pane
	Panes() []Pane
}

// Dock is a container bound to a fixed location that can be shown or hidden.
type Dock interface {
	Container
	Show()
	Hide()
	IsVisible() bool
}

// OpenOptions tunes Host.Open.
type OpenOptions struct {
	// ActivatePane makes the destination pane the active pane.
	ActivatePane bool
	// ActivateItem makes the item the destination pane's active item.
	ActivateItem bool
}

// Host is the Placement Host: the workspace the outlet runtime drives.
type Host interface {
	ActivePane() Pane
	Center() Container

	// Dock returns the dock for a dock location, or false when the host has
	// no dock there.
	Dock(loc domain.Location) (Dock, bool)

	// PaneForItem returns the pane currently holding item, or nil.
	PaneForItem(item Item) Pane

	// Open places item in pane. It may suspend; the runtime awaits it.
	Open(ctx context.Context, item Item, pane Pane, opts OpenOptions) error

	// FocusedItem returns the item holding input focus, or nil.
	FocusedItem() Item

	// Focus gives input focus to the item's interactive surface.
	Focus(item Item)
}
