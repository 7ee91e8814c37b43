package memory

import (
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/ports"
)

// layoutNode is either a *Pane (leaf) or an *axis (split).
type layoutNode interface {
	parentAxis() *axis
	setParentAxis(*axis)
}

// axis lays its children out side by side (horizontal) or stacked (vertical).
type axis struct {
	parent     *axis
	horizontal bool
	children   []layoutNode
}

func (a *axis) parentAxis() *axis     { return a.parent }
func (a *axis) setParentAxis(p *axis) { a.parent = p }

func (a *axis) indexOf(n layoutNode) int {
	for i, c := range a.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (a *axis) insert(i int, n layoutNode) {
	a.children = append(a.children, nil)
	copy(a.children[i+1:], a.children[i:])
	a.children[i] = n
	n.setParentAxis(a)
}

func firstLeaf(n layoutNode) *Pane {
	for {
		switch v := n.(type) {
		case *Pane:
			return v
		case *axis:
			n = v.children[0]
		}
	}
}

func lastLeaf(n layoutNode) *Pane {
	for {
		switch v := n.(type) {
		case *Pane:
			return v
		case *axis:
			n = v.children[len(v.children)-1]
		}
	}
}

// Container is a pane container: the center split tree or a dock's pane.
type Container struct {
	ws       *Workspace
	location domain.Location
	root     layoutNode
	active   *Pane
	dock     *Dock
}

// Location returns where the container lives.
func (c *Container) Location() domain.Location {
	return c.location
}

// ActivePane returns the container's own active pane.
func (c *Container) ActivePane() ports.Pane {
	c.ws.sweep()
	return c.active
}

// Panes lists the container's panes in layout order.
func (c *Container) Panes() []ports.Pane {
	c.ws.sweep()
	leaves := c.leaves()
	panes := make([]ports.Pane, len(leaves))
	for i, p := range leaves {
		panes[i] = p
	}
	return panes
}

func (c *Container) leaves() []*Pane {
	var out []*Pane
	var walk func(layoutNode)
	walk = func(n layoutNode) {
		switch v := n.(type) {
		case *Pane:
			out = append(out, v)
		case *axis:
			for _, child := range v.children {
				walk(child)
			}
		}
	}
	walk(c.root)
	return out
}

// replace swaps old for n in the tree.
func (c *Container) replace(old, n layoutNode) {
	parent := old.parentAxis()
	if parent == nil {
		c.root = n
		n.setParentAxis(nil)
		return
	}
	parent.children[parent.indexOf(old)] = n
	n.setParentAxis(parent)
}

// Dock is a container at a fixed location holding a single pane.
type Dock struct {
	*Container
	visible bool
}

// Show reveals the dock.
func (d *Dock) Show() { d.visible = true }

// Hide collapses the dock. Its pane and active item are kept.
func (d *Dock) Hide() { d.visible = false }

// IsVisible reports whether the dock is revealed.
func (d *Dock) IsVisible() bool { return d.visible }

// Pane is a leaf of a container holding items.
type Pane struct {
	ws        *Workspace
	id        string
	container *Container
	parent    *axis
	items     []ports.Item
	active    ports.Item
	destroyed bool
}

func (p *Pane) parentAxis() *axis     { return p.parent }
func (p *Pane) setParentAxis(a *axis) { p.parent = a }

// ID returns the pane identifier.
func (p *Pane) ID() string { return p.id }

// Container returns the owning container (a *Dock for dock panes).
func (p *Pane) Container() ports.Container {
	if p.container.dock != nil {
		return p.container.dock
	}
	return p.container
}

// Items returns a copy of the pane's items.
func (p *Pane) Items() []ports.Item {
	return append([]ports.Item(nil), p.items...)
}

// ActiveItem returns the active item, or nil for an empty pane.
func (p *Pane) ActiveItem() ports.Item {
	return p.active
}

// ActivateItem makes item active when it is in the pane.
func (p *Pane) ActivateItem(item ports.Item) {
	if p.indexOf(item) < 0 {
		p.ws.logger.Warn("activate item not in pane", "pane", p.id, "item", item.ID())
		return
	}
	p.active = item
}

// Activate makes the pane the workspace's active pane.
func (p *Pane) Activate() {
	if p.destroyed {
		return
	}
	p.container.active = p
	p.ws.active = p
}

// Split creates a new pane beside p and activates it. Dock panes do not
// split; p itself is returned.
func (p *Pane) Split(dir domain.SplitDirection) ports.Pane {
	if p.container.dock != nil {
		p.ws.logger.Warn("dock panes cannot split", "pane", p.id, "dock", p.container.location)
		return p
	}
	np := p.ws.newPane(p.container)
	horizontal := dir.Horizontal()

	if parent := p.parent; parent != nil && parent.horizontal == horizontal {
		idx := parent.indexOf(p)
		if !dir.Before() {
			idx++
		}
		parent.insert(idx, np)
	} else {
		ax := &axis{horizontal: horizontal}
		p.container.replace(p, ax)
		if dir.Before() {
			ax.children = []layoutNode{np, p}
		} else {
			ax.children = []layoutNode{p, np}
		}
		np.parent = ax
		p.parent = ax
	}

	np.Activate()
	p.ws.logger.Debug("pane split", "pane", p.id, "new_pane", np.id, "direction", dir)
	return np
}

// Siblings returns the adjacent panes in the parent split.
func (p *Pane) Siblings() (ports.Pane, ports.Pane) {
	var before, after ports.Pane
	if p.parent == nil {
		return before, after
	}
	i := p.parent.indexOf(p)
	if i > 0 {
		if prev, ok := p.parent.children[i-1].(*Pane); ok {
			before = prev
		}
	}
	if i+1 < len(p.parent.children) {
		if next, ok := p.parent.children[i+1].(*Pane); ok {
			after = next
		}
	}
	return before, after
}

// MoveItemToPane moves item into dest. Focus held by the item is lost, as a
// re-parented element would lose it.
func (p *Pane) MoveItemToPane(item ports.Item, dest ports.Pane) {
	target, ok := dest.(*Pane)
	if !ok || target.ws != p.ws {
		p.ws.logger.Error("move to foreign pane", "pane", p.id, "item", item.ID())
		return
	}
	if target == p || p.indexOf(item) < 0 {
		return
	}
	if ports.SameItem(p.ws.focused, item) {
		p.ws.focused = nil
	}
	p.remove(item)
	target.add(item)
	p.ws.logger.Debug("item moved", "item", item.ID(), "from", p.id, "to", target.id)
}

// Destroy collapses p when it is an empty center pane other than the last.
func (p *Pane) Destroy() {
	if p.destroyed || len(p.items) > 0 || p.container.dock != nil || len(p.container.leaves()) < 2 {
		return
	}
	p.ws.destroyPane(p)
}

// IsDestroyed reports whether the pane was collapsed out of the layout.
func (p *Pane) IsDestroyed() bool { return p.destroyed }

func (p *Pane) indexOf(item ports.Item) int {
	for i, it := range p.items {
		if ports.SameItem(it, item) {
			return i
		}
	}
	return -1
}

func (p *Pane) add(item ports.Item) {
	p.items = append(p.items, item)
	if p.active == nil {
		p.active = item
	}
}

func (p *Pane) remove(item ports.Item) {
	i := p.indexOf(item)
	if i < 0 {
		return
	}
	p.items = append(p.items[:i], p.items[i+1:]...)
	if ports.SameItem(p.active, item) {
		p.active = nil
		if n := len(p.items); n > 0 {
			p.active = p.items[max(i-1, 0)]
		}
	}
	if len(p.items) == 0 {
		p.ws.paneEmptied(p)
	}
}
