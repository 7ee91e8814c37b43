package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/ports"
)

// Controller is the placement state machine of a single outlet.
//
// It is not safe for concurrent use, with one exception: Open may suspend in
// the host, and an overlapping Open is rejected with domain.ErrOpenInFlight.
// Operations on a destroyed outlet are no-ops.
type Controller struct {
	id      string
	host    ports.Host
	item    ports.Item
	cfg     domain.Config
	locator *Locator
	link    Link

	hiddenInCenter bool
	homePaneID     string
	homeBaseID     string // neighbour the home pane was split from
	homeSplit      domain.SplitDirection
	lastOptions    domain.PlacementOptions
	destroyed      bool
	opening        atomic.Bool

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ControllerOption {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithID sets the outlet identifier carried by events (default: the item ID).
func WithID(id string) ControllerOption {
	return func(c *Controller) {
		c.id = id
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController validates cfg and returns an unopened controller for item.
func NewController(host ports.Host, item ports.Item, cfg domain.Config, opts ...ControllerOption) (*Controller, error) {
	if host == nil {
		return nil, fmt.Errorf("%w: host is required", domain.ErrConfiguration)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item is required", domain.ErrConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		host:   host,
		item:   item,
		cfg:    cfg.Clone(),
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = item.ID()
	}
	c.logger = c.logger.With("outlet", c.id)
	c.locator = NewLocator(host, c.logger)
	c.lastOptions = c.cfg.PlacementOptions()
	return c, nil
}

// ID returns the outlet identifier.
func (c *Controller) ID() string { return c.id }

// Item returns the wrapped item.
func (c *Controller) Item() ports.Item { return c.item }

// Config returns a copy of the frozen configuration.
func (c *Controller) Config() domain.Config { return c.cfg.Clone() }

// AllowedLocations returns the relocation cycle.
func (c *Controller) AllowedLocations() []domain.Location {
	return c.Config().AllowedLocations
}

// DefaultLocation returns the location used by Open when none is given.
func (c *Controller) DefaultLocation() domain.Location { return c.cfg.DefaultLocation }

// HiddenInCenter reports whether a center outlet is parked in a dock by Hide.
// An item moved back to the center by other means is no longer hidden.
func (c *Controller) HiddenInCenter() bool {
	return c.hiddenInCenter && c.Location().IsDock()
}

// LinkedItemID returns the linked center item, or "".
func (c *Controller) LinkedItemID() string { return c.link.ItemID() }

// LastOptions returns the placement options reused by relocations.
func (c *Controller) LastOptions() domain.PlacementOptions { return c.lastOptions }

// Location returns where the item currently lives, or "" when unplaced.
// It is read from the host, not cached.
func (c *Controller) Location() domain.Location {
	return ports.LocationOf(c.host, c.item)
}

// State reports the lifecycle state.
func (c *Controller) State() domain.State {
	if !c.alive() {
		return domain.StateDestroyed
	}
	if c.host.PaneForItem(c.item) == nil {
		return domain.StateUnopened
	}
	return domain.StatePlaced
}

// IsVisible reports whether the item is the active item of its pane and that
// pane is on screen (center, or a revealed dock).
func (c *Controller) IsVisible() bool {
	if !c.alive() {
		return false
	}
	pane := c.host.PaneForItem(c.item)
	if pane == nil || !ports.SameItem(pane.ActiveItem(), c.item) {
		return false
	}
	loc := pane.Container().Location()
	if loc.IsCenter() {
		return true
	}
	dock, ok := c.host.Dock(loc)
	return ok && dock.IsVisible()
}

// Open places the item at loc (the default location when empty) without
// activating the destination pane, then shows it. An already placed outlet is
// moved when loc differs from its location. popts, when non-nil, replaces the
// placement options reused by later relocations.
func (c *Controller) Open(ctx context.Context, loc domain.Location, popts *domain.PlacementOptions) (ports.Item, error) {
	if !c.alive() {
		c.logger.Debug("open ignored: outlet destroyed")
		return c.item, nil
	}
	if loc == "" {
		loc = c.cfg.DefaultLocation
	}
	if !c.cfg.Allows(loc) {
		err := fmt.Errorf("%w: %q is not one of %v", domain.ErrPlacementPrecondition, loc, c.cfg.AllowedLocations)
		c.logger.Error("open rejected", "location", loc, "error", err)
		return nil, err
	}
	if !c.opening.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("open outlet %s: %w", c.id, domain.ErrOpenInFlight)
	}
	defer c.opening.Store(false)

	if popts != nil {
		c.lastOptions = *popts
		if c.lastOptions.Split == "" {
			c.lastOptions.Split = c.cfg.Split
		}
	}

	if src := c.host.PaneForItem(c.item); src != nil {
		from := src.Container().Location()
		c.hiddenInCenter = false
		c.clearHome()
		if from == loc {
			c.reveal()
			c.emit(domain.Event{Type: domain.EventOpen, From: from, To: loc, PaneID: src.ID()})
			return c.item, nil
		}
		dest, split, err := c.moveTo(loc)
		if err != nil {
			return nil, err
		}
		c.reveal()
		c.emit(domain.Event{Type: domain.EventOpen, From: from, To: loc, PaneID: dest.ID(), Split: split})
		return c.item, nil
	}

	pane, split, err := c.locate(loc)
	if err != nil {
		c.logger.Error("open failed", "location", loc, "error", err)
		return nil, err
	}
	if err := c.host.Open(ctx, c.item, pane, ports.OpenOptions{ActivatePane: false, ActivateItem: true}); err != nil {
		if split {
			pane.Destroy()
		}
		return nil, fmt.Errorf("open outlet %s: %w", c.id, err)
	}
	if !c.alive() {
		return c.item, nil
	}
	c.reveal()
	c.logger.Debug("outlet opened", "location", loc, "pane", pane.ID(), "split", split)
	c.emit(domain.Event{Type: domain.EventOpen, To: loc, PaneID: pane.ID(), Split: split})
	return c.item, nil
}

// Relocate moves the item to the next allowed location in dir, starting
// from where the item actually is.
func (c *Controller) Relocate(dir domain.Direction) error {
	if !c.alive() || len(c.cfg.AllowedLocations) < 2 {
		return nil
	}
	src := c.host.PaneForItem(c.item)
	if src == nil {
		c.logger.Debug("relocate ignored: outlet not placed")
		return nil
	}
	from := src.Container().Location()
	to := NextLocation(c.cfg.AllowedLocations, from, dir)
	if to == from {
		return nil
	}

	dest, split, err := c.moveTo(to)
	if err != nil {
		return err
	}
	c.reveal()
	c.logger.Debug("outlet relocated", "from", from, "to", to, "direction", dir)
	c.emit(domain.Event{Type: domain.EventRelocate, From: from, To: to, PaneID: dest.ID(), Split: split})
	return nil
}

// Show makes the item the active item of its pane and reveals its dock. An
// outlet hidden from the center goes back to the center first.
func (c *Controller) Show() error {
	if !c.alive() {
		return nil
	}
	src := c.host.PaneForItem(c.item)
	if src == nil {
		return nil
	}
	from := src.Container().Location()
	if from.IsCenter() {
		c.hiddenInCenter = false
	}

	if c.hiddenInCenter {
		dest, split, err := c.homePane()
		if err != nil {
			return err
		}
		src.MoveItemToPane(c.item, dest)
		dest.ActivateItem(c.item)
		c.hiddenInCenter = false
		c.clearHome()
		c.logger.Debug("outlet restored to center", "from", from, "pane", dest.ID())
		c.emit(domain.Event{Type: domain.EventShow, From: from, To: domain.LocationCenter, PaneID: dest.ID(), Split: split})
		return nil
	}

	c.reveal()
	c.emit(domain.Event{Type: domain.EventShow, From: from, To: from, PaneID: src.ID()})
	return nil
}

// Hide takes the item off screen. A docked item hides its dock when it is
// the one showing; a centered item moves to the hide location and is marked
// hidden-in-center so Show can bring it back. The dock keeps the item as its
// active item either way.
func (c *Controller) Hide() error {
	if !c.alive() {
		return nil
	}
	src := c.host.PaneForItem(c.item)
	if src == nil {
		return nil
	}
	from := src.Container().Location()
	if from.IsCenter() {
		c.hiddenInCenter = false
	}

	if from.IsDock() {
		dock, ok := c.host.Dock(from)
		if !ok {
			return fmt.Errorf("%w: host has no dock at %q", domain.ErrPlacementPrecondition, from)
		}
		switch {
		case dock.IsVisible() && ports.SameItem(src.ActiveItem(), c.item):
			dock.Hide()
		case dock.IsVisible():
			c.logger.Debug("hide ignored: dock shows another item", "dock", from)
			return nil
		default:
			src.ActivateItem(c.item)
		}
		c.emit(domain.Event{Type: domain.EventHide, From: from, To: from, PaneID: src.ID(), HiddenInCenter: c.hiddenInCenter})
		return nil
	}

	to := c.cfg.HideLocation()
	dock, ok := c.host.Dock(to)
	if !ok {
		err := fmt.Errorf("%w: host has no dock at %q", domain.ErrPlacementPrecondition, to)
		c.logger.Error("hide failed", "error", err)
		return err
	}
	dest := dock.ActivePane()
	other := dest.ActiveItem()
	keepOther := dock.IsVisible() && other != nil

	c.rememberHome(src)
	src.MoveItemToPane(c.item, dest)
	if keepOther {
		dest.ActivateItem(other)
	} else {
		dest.ActivateItem(c.item)
		dock.Hide()
	}
	c.hiddenInCenter = true
	c.logger.Debug("outlet hidden from center", "to", to, "home", c.homePaneID)
	c.emit(domain.Event{Type: domain.EventHide, From: from, To: to, PaneID: dest.ID(), HiddenInCenter: true})
	return nil
}

// Toggle hides a visible outlet and shows a hidden one. It never activates a
// pane.
func (c *Controller) Toggle() error {
	if !c.alive() {
		return nil
	}
	if c.IsVisible() {
		return c.Hide()
	}
	return c.Show()
}

// Focus gives input focus to the item.
func (c *Controller) Focus() {
	if !c.alive() {
		return
	}
	pane := c.host.PaneForItem(c.item)
	if pane == nil {
		return
	}
	c.host.Focus(c.item)
	loc := pane.Container().Location()
	c.emit(domain.Event{Type: domain.EventFocus, From: loc, To: loc, PaneID: pane.ID()})
}

// Link associates the outlet with target when target is in the center, so
// later center placements start from target's pane. It reports whether the
// link was recorded.
func (c *Controller) Link(target ports.Item) bool {
	if !c.alive() {
		return false
	}
	if !c.link.Set(c.host, target) {
		c.logger.Debug("link ignored: target not in center")
		return false
	}
	c.emit(domain.Event{Type: domain.EventLink, To: domain.LocationCenter, TargetItemID: c.link.ItemID()})
	return true
}

// Destroy marks the outlet destroyed and destroys the item. It is idempotent.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	if !c.item.IsDestroyed() {
		c.item.Destroy()
	}
	c.logger.Debug("outlet destroyed")
	c.emit(domain.Event{Type: domain.EventDestroy})
}

// alive reports whether the outlet can still act, noticing items destroyed
// behind its back.
func (c *Controller) alive() bool {
	if c.destroyed {
		return false
	}
	if c.item.IsDestroyed() {
		c.Destroy()
		return false
	}
	return true
}

func (c *Controller) locate(loc domain.Location) (ports.Pane, bool, error) {
	opts := LocateOptions{PlacementOptions: c.lastOptions}
	if loc.IsCenter() {
		opts.BasePane = c.link.Resolve(c.host)
	}
	return c.locator.PaneForLocation(loc, opts)
}

// rememberHome records the center pane src and how to rebuild it beside its
// neighbour should it collapse once the outlet leaves.
func (c *Controller) rememberHome(src ports.Pane) {
	c.homePaneID = src.ID()
	c.homeBaseID, c.homeSplit = "", ""

	horizontal := c.lastOptions.Split == "" || c.lastOptions.Split.Horizontal()
	before, after := src.Siblings()
	switch {
	case before != nil:
		c.homeBaseID = before.ID()
		c.homeSplit = domain.SplitDown
		if horizontal {
			c.homeSplit = domain.SplitRight
		}
	case after != nil:
		c.homeBaseID = after.ID()
		c.homeSplit = domain.SplitUp
		if horizontal {
			c.homeSplit = domain.SplitLeft
		}
	}
}

func (c *Controller) clearHome() {
	c.homePaneID, c.homeBaseID, c.homeSplit = "", "", ""
}

// homePane is the center pane a hidden-in-center outlet returns to: the pane
// it left when still present, a pane split at the same side of its old
// neighbour when it collapsed, else a freshly located one.
func (c *Controller) homePane() (ports.Pane, bool, error) {
	if pane := c.centerPane(c.homePaneID); pane != nil {
		return pane, false, nil
	}
	if base := c.centerPane(c.homeBaseID); base != nil {
		previous := c.host.ActivePane()
		pane := base.Split(c.homeSplit)
		if !c.lastOptions.Activate && previous != nil {
			previous.Activate()
		}
		c.logger.Debug("home pane rebuilt", "base", base.ID(), "pane", pane.ID(), "direction", c.homeSplit)
		return pane, true, nil
	}
	return c.locate(domain.LocationCenter)
}

func (c *Controller) centerPane(id string) ports.Pane {
	if id == "" {
		return nil
	}
	for _, p := range c.host.Center().Panes() {
		if p.ID() == id && !p.IsDestroyed() {
			return p
		}
	}
	return nil
}

// moveTo moves the placed item to loc, carrying over pane activation and
// input focus. It clears the hidden-in-center mark.
func (c *Controller) moveTo(loc domain.Location) (ports.Pane, bool, error) {
	src := c.host.PaneForItem(c.item)
	active := c.host.ActivePane()
	wasActive := ports.SamePane(active, src) && ports.SameItem(src.ActiveItem(), c.item)
	hadFocus := ports.SameItem(c.host.FocusedItem(), c.item)

	dest, split, err := c.locate(loc)
	if err != nil {
		c.logger.Error("locate failed", "location", loc, "error", err)
		return nil, false, err
	}
	src.MoveItemToPane(c.item, dest)
	dest.ActivateItem(c.item)
	if wasActive {
		dest.Activate()
	}
	if hadFocus {
		c.host.Focus(c.item)
	}
	c.hiddenInCenter = false
	c.clearHome()
	return dest, split, nil
}

// reveal activates the item in its pane and shows its dock.
func (c *Controller) reveal() {
	pane := c.host.PaneForItem(c.item)
	if pane == nil {
		return
	}
	pane.ActivateItem(c.item)
	loc := pane.Container().Location()
	if !loc.IsDock() {
		return
	}
	if dock, ok := c.host.Dock(loc); ok {
		dock.Show()
	}
}

func (c *Controller) emit(e domain.Event) {
	e.Timestamp = c.now()
	e.OutletID = c.id
	e.ItemID = c.item.ID()
	c.hooks.Emit(&e)
}
