package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/ports"
)

// LocateOptions are the placement preferences for a single lookup.
type LocateOptions struct {
	domain.PlacementOptions
	// BasePane overrides the center's active pane as the split/adjacency
	// origin. It must belong to the center container.
	BasePane ports.Pane
}

// Locator finds or creates the pane an item should live in.
type Locator struct {
	host   ports.Host
	logger *slog.Logger
}

// NewLocator creates a locator over host. A nil logger discards output.
func NewLocator(host ports.Host, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Locator{host: host, logger: logger}
}

// PaneForLocation returns the destination pane for loc. split reports
// whether a new center pane was created for it.
func (l *Locator) PaneForLocation(loc domain.Location, opts LocateOptions) (pane ports.Pane, split bool, err error) {
	if !loc.IsCenter() {
		dock, ok := l.host.Dock(loc)
		if !ok {
			return nil, false, fmt.Errorf("%w: host has no dock at %q", domain.ErrPlacementPrecondition, loc)
		}
		return dock.ActivePane(), false, nil
	}

	base := opts.BasePane
	if base == nil {
		base = l.host.Center().ActivePane()
	}
	if base == nil {
		return nil, false, fmt.Errorf("%w: center container has no active pane", domain.ErrPlacementPrecondition)
	}
	if where := base.Container().Location(); !where.IsCenter() {
		return nil, false, fmt.Errorf("%w: base pane %s is in %q, not center", domain.ErrPlacementPrecondition, base.ID(), where)
	}

	if opts.UseAdjacentPane {
		before, after := base.Siblings()
		if after != nil {
			return after, false, nil
		}
		if before != nil {
			return before, false, nil
		}
	}

	dir := opts.Split
	if dir == "" {
		dir = domain.SplitRight
	}
	previous := l.host.ActivePane()
	pane = base.Split(dir)
	if !opts.Activate && previous != nil {
		previous.Activate()
	}
	l.logger.Debug("center pane split", "base", base.ID(), "pane", pane.ID(), "direction", dir)
	return pane, true, nil
}
