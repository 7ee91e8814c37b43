package outlet

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/internal/runtime"
	"github.com/aretw0/outlet/pkg/config"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/ports"
)

// ClassName is added to the class list of every outlet item.
const ClassName = "outlet"

// Outlet is the high-level entry point of the library.
// It wraps the internal placement controller and applies the item-facing
// configuration (title, classes, modification tracking, close command).
type Outlet struct {
	ctrl        *runtime.Controller
	host        ports.Host
	removeClose func()
}

type settings struct {
	id     string
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	clock  func() time.Time
}

// Option defines a functional option for configuring an Outlet.
type Option func(*settings)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithID sets the identifier carried by events (default: the item ID).
func WithID(id string) Option {
	return func(s *settings) {
		s.id = id
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.clock = now
	}
}

// Create builds an outlet from a loose option map, filling every omitted
// option from domain.DefaultConfig. See pkg/config for the recognised keys.
func Create(host ports.Host, item ports.Item, options map[string]any, opts ...Option) (*Outlet, error) {
	cfg, err := config.Decode(options)
	if err != nil {
		return nil, err
	}
	return New(host, item, cfg, opts...)
}

// New builds an outlet for item on host. cfg is validated and frozen.
func New(host ports.Host, item ports.Item, cfg domain.Config, opts ...Option) (*Outlet, error) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	if cfg.ExtendsContentInterface && item != nil {
		if err := checkCollisions(item); err != nil {
			return nil, err
		}
	}

	ctrlOpts := []runtime.ControllerOption{
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithID(s.id),
	}
	if s.clock != nil {
		ctrlOpts = append(ctrlOpts, runtime.WithClock(s.clock))
	}
	ctrl, err := runtime.NewController(host, item, cfg, ctrlOpts...)
	if err != nil {
		return nil, err
	}

	o := &Outlet{ctrl: ctrl, host: host}
	o.decorate(cfg)
	if reg, ok := host.(ports.CommandRegistry); ok {
		o.removeClose = reg.AddCommand(item, ports.CommandClose, o.Destroy)
	}
	return o, nil
}

// decorate applies the item-facing options through the optional capabilities.
func (o *Outlet) decorate(cfg domain.Config) {
	item := o.ctrl.Item()
	if t, ok := item.(ports.Titled); ok && cfg.Title != "" {
		t.SetTitle(cfg.Title)
	}
	if c, ok := item.(ports.Classed); ok {
		c.AddClass(append([]string{ClassName}, cfg.ClassList...)...)
	}
	if m, ok := item.(ports.ModifiedTracker); ok {
		m.SetTrackModified(cfg.TrackModified)
	}
}

// ID returns the outlet identifier.
func (o *Outlet) ID() string { return o.ctrl.ID() }

// Item returns the wrapped content item.
func (o *Outlet) Item() ports.Item { return o.ctrl.Item() }

// Config returns a copy of the frozen configuration.
func (o *Outlet) Config() domain.Config { return o.ctrl.Config() }

// AllowedLocations returns the relocation cycle.
func (o *Outlet) AllowedLocations() []domain.Location { return o.ctrl.AllowedLocations() }

// DefaultLocation returns the location Open uses when none is given.
func (o *Outlet) DefaultLocation() domain.Location { return o.ctrl.DefaultLocation() }

// Location returns where the item lives now, or "" when it is not placed.
func (o *Outlet) Location() domain.Location { return o.ctrl.Location() }

// State returns the lifecycle state.
func (o *Outlet) State() domain.State { return o.ctrl.State() }

// HiddenInCenter reports whether a centered outlet is parked in a dock.
func (o *Outlet) HiddenInCenter() bool { return o.ctrl.HiddenInCenter() }

// LinkedItemID returns the linked center item, or "".
func (o *Outlet) LinkedItemID() string { return o.ctrl.LinkedItemID() }

// IsVisible reports whether the item is showing.
func (o *Outlet) IsVisible() bool { return o.ctrl.IsVisible() }

// Open places the item at the given location, or the default location when
// none is given, without stealing pane activation. Re-opening a placed outlet
// repositions it.
func (o *Outlet) Open(ctx context.Context, loc ...domain.Location) (ports.Item, error) {
	var target domain.Location
	if len(loc) > 0 {
		target = loc[0]
	}
	return o.ctrl.Open(ctx, target, nil)
}

// OpenWith is Open with explicit placement options, which later relocations
// reuse.
func (o *Outlet) OpenWith(ctx context.Context, loc domain.Location, popts domain.PlacementOptions) (ports.Item, error) {
	return o.ctrl.Open(ctx, loc, &popts)
}

// Relocate moves the item to the next allowed location in dir.
func (o *Outlet) Relocate(dir domain.Direction) error { return o.ctrl.Relocate(dir) }

// Show brings the item on screen.
func (o *Outlet) Show() error { return o.ctrl.Show() }

// Hide takes the item off screen.
func (o *Outlet) Hide() error { return o.ctrl.Hide() }

// Toggle hides a visible outlet and shows a hidden one.
func (o *Outlet) Toggle() error { return o.ctrl.Toggle() }

// Focus gives input focus to the item.
func (o *Outlet) Focus() { o.ctrl.Focus() }

// Link associates the outlet with a center item. Docked targets are ignored.
func (o *Outlet) Link(target ports.Item) bool { return o.ctrl.Link(target) }

// Destroy destroys the outlet and its item. It is idempotent.
func (o *Outlet) Destroy() {
	o.ctrl.Destroy()
	if o.removeClose != nil {
		o.removeClose()
		o.removeClose = nil
	}
}

// Extended exposes the outlet operations on the content item itself, for
// call sites that hold the item and want to relocate it directly.
type Extended struct {
	ports.Item
	*Outlet
}

// ID returns the item identifier.
func (e *Extended) ID() string { return e.Item.ID() }

// Destroy destroys the outlet and its item.
func (e *Extended) Destroy() { e.Outlet.Destroy() }

// IsDestroyed reports whether the item was destroyed.
func (e *Extended) IsDestroyed() bool { return e.Item.IsDestroyed() }

// extendedMethods are the operations Extended layers over the item.
var extendedMethods = []string{"Open", "Relocate", "Show", "Hide", "Toggle", "Focus", "Link"}

// Extend returns the extend-mode adapter. The outlet must have been created
// with ExtendsContentInterface.
func (o *Outlet) Extend() (*Extended, error) {
	if !o.ctrl.Config().ExtendsContentInterface {
		return nil, fmt.Errorf("%w: extendsContentInterface is not enabled", domain.ErrConfiguration)
	}
	return &Extended{Item: o.ctrl.Item(), Outlet: o}, nil
}

func checkCollisions(item ports.Item) error {
	typ := reflect.TypeOf(item)
	for _, name := range extendedMethods {
		if _, ok := typ.MethodByName(name); ok {
			return fmt.Errorf("%w: extend mode would shadow %s.%s", domain.ErrConfiguration, typ, name)
		}
	}
	return nil
}
