package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/outlet"
	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/pkg/adapters/memory"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/ports"
	"github.com/google/uuid"
)

// OutletInfo is the externally visible state of one outlet.
type OutletInfo struct {
	ID               string            `json:"id"`
	ItemID           string            `json:"itemId"`
	Title            string            `json:"title"`
	State            domain.State      `json:"state"`
	Location         domain.Location   `json:"location,omitempty"`
	Visible          bool              `json:"visible"`
	HiddenInCenter   bool              `json:"hiddenInCenter"`
	LinkedItemID     string            `json:"linkedItemId,omitempty"`
	AllowedLocations []domain.Location `json:"allowedLocations"`
	DefaultLocation  domain.Location   `json:"defaultLocation"`
}

// ItemInfo identifies a plain item added to the workspace.
type ItemInfo struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Location domain.Location `json:"location,omitempty"`
	PaneID   string          `json:"paneId,omitempty"`
}

// Session owns one in-memory workspace and the outlets placed in it.
// Every call is serialised, standing in for the single UI thread the
// workspace expects when requests arrive from server goroutines.
type Session struct {
	id string

	mu      sync.Mutex
	ws      *memory.Workspace
	outlets map[string]*outlet.Outlet
	order   []string

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	newID  func() string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger configures a logger for the session and its outlets.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers hooks attached to every outlet.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithWorkspace replaces the default workspace.
func WithWorkspace(ws *memory.Workspace) Option {
	return func(s *Session) {
		s.ws = ws
	}
}

// WithIDGenerator overrides outlet ID generation (default: random UUIDs).
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		s.newID = fn
	}
}

// New creates a session with an empty workspace.
func New(id string, opts ...Option) *Session {
	s := &Session{
		id:      id,
		outlets: make(map[string]*outlet.Outlet),
		logger:  logging.NewNop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ws == nil {
		s.ws = memory.New(memory.WithLogger(s.logger))
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// WithLock runs fn with exclusive access to the workspace.
func (s *Session) WithLock(ctx context.Context, fn func(ctx context.Context, ws *memory.Workspace) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, s.ws)
}

// AddItem opens a plain item (a document) in the active center pane,
// splitting that pane first when split is set.
func (s *Session) AddItem(ctx context.Context, title string, split domain.SplitDirection) (ItemInfo, error) {
	var info ItemInfo
	err := s.WithLock(ctx, func(ctx context.Context, ws *memory.Workspace) error {
		pane := ws.Center().ActivePane()
		if split != "" {
			if !split.Valid() {
				return fmt.Errorf("%w: unknown split direction %q", domain.ErrConfiguration, split)
			}
			pane = pane.Split(split)
		}
		item := ws.NewItem(title)
		if err := ws.Open(ctx, item, pane, ports.OpenOptions{ActivatePane: true, ActivateItem: true}); err != nil {
			return err
		}
		info = itemInfo(ws, item)
		return nil
	})
	return info, err
}

// CreateOutlet creates an outlet around a new item. options uses the keys of
// pkg/config. The outlet is not opened.
func (s *Session) CreateOutlet(ctx context.Context, title string, options map[string]any) (OutletInfo, error) {
	var info OutletInfo
	err := s.WithLock(ctx, func(ctx context.Context, ws *memory.Workspace) error {
		id := s.newID()
		item := ws.NewItem(title)
		o, err := outlet.Create(ws, item, options,
			outlet.WithID(id),
			outlet.WithLogger(s.logger),
			outlet.WithLifecycleHooks(s.hooks),
		)
		if err != nil {
			item.Destroy()
			return err
		}
		s.outlets[id] = o
		s.order = append(s.order, id)
		s.logger.Debug("outlet created", "session_id", s.id, "outlet", id, "item", item.ID())
		info = outletInfo(o)
		return nil
	})
	return info, err
}

// Get returns the state of one outlet.
func (s *Session) Get(ctx context.Context, id string) (OutletInfo, error) {
	var info OutletInfo
	err := s.WithLock(ctx, func(ctx context.Context, ws *memory.Workspace) error {
		o, err := s.lookup(id)
		if err != nil {
			return err
		}
		info = outletInfo(o)
		return nil
	})
	return info, err
}

// List returns every outlet in creation order.
func (s *Session) List(ctx context.Context) ([]OutletInfo, error) {
	var infos []OutletInfo
	err := s.WithLock(ctx, func(ctx context.Context, ws *memory.Workspace) error {
		infos = make([]OutletInfo, 0, len(s.order))
		for _, id := range s.order {
			infos = append(infos, outletInfo(s.outlets[id]))
		}
		return nil
	})
	return infos, err
}

// Delete destroys an outlet and forgets it.
func (s *Session) Delete(ctx context.Context, id string) error {
	return s.WithLock(ctx, func(ctx context.Context, ws *memory.Workspace) error {
		o, err := s.lookup(id)
		if err != nil {
			return err
		}
		o.Destroy()
		delete(s.outlets, id)
		for i, known := range s.order {
			if known == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return nil
	})
}

// Do runs action on an outlet and returns its resulting state.
func (s *Session) Do(ctx context.Context, id string, action domain.Action, args domain.ActionArgs) (OutletInfo, error) {
	var info OutletInfo
	err := s.WithLock(ctx, func(ctx context.Context, ws *memory.Workspace) error {
		o, err := s.lookup(id)
		if err != nil {
			return err
		}
		if err := s.apply(ctx, ws, o, action, args); err != nil {
			return fmt.Errorf("%s outlet %s: %w", action, id, err)
		}
		info = outletInfo(o)
		return nil
	})
	return info, err
}

func (s *Session) apply(ctx context.Context, ws *memory.Workspace, o *outlet.Outlet, action domain.Action, args domain.ActionArgs) error {
	switch action {
	case domain.ActionOpen:
		var err error
		if args.Split != "" || args.Activate {
			popts := o.Config().PlacementOptions()
			if args.Split != "" {
				popts.Split = args.Split
			}
			popts.Activate = args.Activate
			_, err = o.OpenWith(ctx, args.Location, popts)
		} else {
			_, err = o.Open(ctx, args.Location)
		}
		return err
	case domain.ActionRelocate:
		return o.Relocate(args.Direction())
	case domain.ActionShow:
		return o.Show()
	case domain.ActionHide:
		return o.Hide()
	case domain.ActionToggle:
		return o.Toggle()
	case domain.ActionFocus:
		o.Focus()
		return nil
	case domain.ActionLink:
		target, ok := ws.ItemByID(args.Target)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrItemNotFound, args.Target)
		}
		o.Link(target)
		return nil
	case domain.ActionDestroy:
		o.Destroy()
		return nil
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
}

// Layout returns a snapshot of the workspace.
func (s *Session) Layout(ctx context.Context) (domain.Layout, error) {
	var layout domain.Layout
	err := s.WithLock(ctx, func(ctx context.Context, ws *memory.Workspace) error {
		layout = ports.Snapshot(ws)
		return nil
	})
	return layout, err
}

func (s *Session) lookup(id string) (*outlet.Outlet, error) {
	o, ok := s.outlets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrOutletNotFound, id)
	}
	return o, nil
}

func outletInfo(o *outlet.Outlet) OutletInfo {
	info := OutletInfo{
		ID:               o.ID(),
		ItemID:           o.Item().ID(),
		State:            o.State(),
		Location:         o.Location(),
		Visible:          o.IsVisible(),
		HiddenInCenter:   o.HiddenInCenter(),
		LinkedItemID:     o.LinkedItemID(),
		AllowedLocations: o.AllowedLocations(),
		DefaultLocation:  o.DefaultLocation(),
	}
	if t, ok := o.Item().(ports.Titled); ok {
		info.Title = t.Title()
	}
	return info
}

func itemInfo(ws *memory.Workspace, item *memory.Item) ItemInfo {
	info := ItemInfo{ID: item.ID(), Title: item.Title()}
	if p := ws.PaneForItem(item); p != nil {
		info.PaneID = p.ID()
		info.Location = p.Container().Location()
	}
	return info
}
