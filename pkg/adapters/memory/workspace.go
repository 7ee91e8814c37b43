package memory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/ports"
)

// Workspace implements ports.Host entirely in memory.
//
// The center container is a split tree of panes; each dock holds a single
// pane and a visibility flag. A Workspace is not safe for concurrent use: like
// a UI thread, callers serialise access (see pkg/session).
type Workspace struct {
	center    *Container
	docks     map[domain.Location]*Dock
	dockOrder []domain.Location
	active    *Pane
	focused   ports.Item

	items    map[string]ports.Item
	commands map[string]map[string]func()
	openHook func(context.Context, ports.Item) error

	paneSeq int
	itemSeq int
	logger  *slog.Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ws *Workspace) {
		ws.logger = logger
	}
}

// WithOpenHook installs a function run at the start of every Open.
// It can block or fail to simulate a host whose open call suspends.
func WithOpenHook(fn func(ctx context.Context, item ports.Item) error) Option {
	return func(ws *Workspace) {
		ws.openHook = fn
	}
}

// WithDocks restricts the docks the workspace provides (default: bottom, left, right).
func WithDocks(locs ...domain.Location) Option {
	return func(ws *Workspace) {
		ws.dockOrder = locs
	}
}

// New creates a workspace with one empty center pane and an empty, hidden
// pane in every dock.
func New(opts ...Option) *Workspace {
	ws := &Workspace{
		docks:     make(map[domain.Location]*Dock),
		dockOrder: domain.DockLocations,
		items:     make(map[string]ports.Item),
		commands:  make(map[string]map[string]func()),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(ws)
	}

	ws.center = &Container{ws: ws, location: domain.LocationCenter}
	root := ws.newPane(ws.center)
	ws.center.root = root
	ws.center.active = root
	ws.active = root

	for _, loc := range ws.dockOrder {
		if !loc.IsDock() {
			continue
		}
		d := &Dock{Container: &Container{ws: ws, location: loc}}
		d.dock = d
		p := ws.newPane(d.Container)
		d.root = p
		d.active = p
		ws.docks[loc] = d
	}
	return ws
}

func (ws *Workspace) newPane(c *Container) *Pane {
	ws.paneSeq++
	return &Pane{ws: ws, id: fmt.Sprintf("pane-%d", ws.paneSeq), container: c}
}

// NewItem creates an item owned by the caller. It is not placed until opened.
func (ws *Workspace) NewItem(title string) *Item {
	ws.itemSeq++
	it := &Item{id: fmt.Sprintf("item-%d", ws.itemSeq), title: title, trackModified: true}
	ws.items[it.id] = it
	return it
}

// ItemByID looks up a live item known to the workspace.
func (ws *Workspace) ItemByID(id string) (ports.Item, bool) {
	ws.sweep()
	it, ok := ws.items[id]
	if !ok || it.IsDestroyed() {
		return nil, false
	}
	return it, true
}

// ActivePane returns the most recently activated pane of any container.
func (ws *Workspace) ActivePane() ports.Pane {
	ws.sweep()
	return ws.active
}

// Center returns the center container.
func (ws *Workspace) Center() ports.Container {
	return ws.center
}

// Dock returns the dock at loc.
func (ws *Workspace) Dock(loc domain.Location) (ports.Dock, bool) {
	d, ok := ws.docks[loc]
	if !ok {
		return nil, false
	}
	return d, true
}

// PaneForItem returns the pane holding item, or nil.
func (ws *Workspace) PaneForItem(item ports.Item) ports.Pane {
	ws.sweep()
	if p := ws.paneOf(item); p != nil {
		return p
	}
	return nil
}

// Open places item in pane (the active center pane when pane is nil).
func (ws *Workspace) Open(ctx context.Context, item ports.Item, pane ports.Pane, opts ports.OpenOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ws.openHook != nil {
		if err := ws.openHook(ctx, item); err != nil {
			return err
		}
	}
	if item.IsDestroyed() {
		return fmt.Errorf("open %s: item is destroyed", item.ID())
	}
	ws.sweep()

	target := ws.center.active
	if pane != nil {
		p, ok := pane.(*Pane)
		if !ok || p.ws != ws {
			return fmt.Errorf("open %s: pane %s does not belong to this workspace", item.ID(), pane.ID())
		}
		target = p
	}
	if target.destroyed {
		return fmt.Errorf("open %s: pane %s is destroyed", item.ID(), target.id)
	}

	ws.items[item.ID()] = item
	if current := ws.paneOf(item); current == nil {
		target.add(item)
	} else if current != target {
		current.MoveItemToPane(item, target)
	}
	if opts.ActivateItem {
		target.active = item
	}
	if opts.ActivatePane {
		target.Activate()
	}
	ws.logger.Debug("item opened", "item", item.ID(), "pane", target.id, "location", target.container.location)
	return nil
}

// FocusedItem returns the item holding input focus, or nil.
func (ws *Workspace) FocusedItem() ports.Item {
	ws.sweep()
	return ws.focused
}

// Focus gives focus to item and, like a real editor, activates its pane.
func (ws *Workspace) Focus(item ports.Item) {
	p := ws.paneOf(item)
	if p == nil {
		return
	}
	p.active = item
	p.Activate()
	ws.focused = item
}

// AddCommand binds a named command to item.
func (ws *Workspace) AddCommand(item ports.Item, name string, fn func()) func() {
	id := item.ID()
	if ws.commands[id] == nil {
		ws.commands[id] = make(map[string]func())
	}
	ws.commands[id][name] = fn
	return func() {
		delete(ws.commands[id], name)
		if len(ws.commands[id]) == 0 {
			delete(ws.commands, id)
		}
	}
}

// Dispatch runs the named command bound to item. It reports whether a
// binding existed.
func (ws *Workspace) Dispatch(item ports.Item, name string) bool {
	fn, ok := ws.commands[item.ID()][name]
	if !ok {
		return false
	}
	fn()
	ws.sweep()
	return true
}

func (ws *Workspace) allPanes() []*Pane {
	panes := ws.center.leaves()
	for _, loc := range ws.dockOrder {
		if d, ok := ws.docks[loc]; ok {
			panes = append(panes, d.leaves()...)
		}
	}
	return panes
}

func (ws *Workspace) paneOf(item ports.Item) *Pane {
	if item == nil {
		return nil
	}
	for _, p := range ws.allPanes() {
		if p.indexOf(item) >= 0 {
			return p
		}
	}
	return nil
}

// sweep drops destroyed items from their panes, collapsing panes as needed.
func (ws *Workspace) sweep() {
	type placed struct {
		pane *Pane
		item ports.Item
	}
	var dead []placed
	for _, p := range ws.allPanes() {
		for _, it := range p.items {
			if it.IsDestroyed() {
				dead = append(dead, placed{p, it})
			}
		}
	}
	for _, d := range dead {
		if ports.SameItem(ws.focused, d.item) {
			ws.focused = nil
		}
		delete(ws.commands, d.item.ID())
		if !d.pane.destroyed {
			d.pane.remove(d.item)
		}
	}
	for id, it := range ws.items {
		if it.IsDestroyed() {
			delete(ws.items, id)
		}
	}
}

// paneEmptied applies the host's empty-pane policy: docks hide, center panes
// collapse unless they are the last one.
func (ws *Workspace) paneEmptied(p *Pane) {
	if p.container.dock != nil {
		p.container.dock.visible = false
		return
	}
	if len(p.container.leaves()) > 1 {
		ws.destroyPane(p)
	}
}

func (ws *Workspace) destroyPane(p *Pane) {
	c := p.container
	parent := p.parent
	if parent == nil {
		return
	}
	p.destroyed = true

	idx := parent.indexOf(p)
	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)

	var successor *Pane
	if idx < len(parent.children) {
		successor = firstLeaf(parent.children[idx])
	} else {
		successor = lastLeaf(parent.children[idx-1])
	}
	if len(parent.children) == 1 {
		c.replace(parent, parent.children[0])
	}

	if c.active == p {
		c.active = successor
	}
	if ws.active == p {
		ws.active = successor
	}
	ws.logger.Debug("pane destroyed", "pane", p.id, "successor", successor.id)
}
