package runtime

import (
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/ports"
)

// Link is a weak, identity-based reference from an outlet to a center item.
// The zero value is unlinked.
type Link struct {
	itemID string
}

// Set records target when it currently lives in the center container and
// reports whether it did. Docked or unplaced targets leave the link unchanged.
func (l *Link) Set(host ports.Host, target ports.Item) bool {
	if target == nil || target.IsDestroyed() {
		return false
	}
	if ports.LocationOf(host, target) != domain.LocationCenter {
		return false
	}
	l.itemID = target.ID()
	return true
}

// ItemID returns the linked item identifier, or "".
func (l *Link) ItemID() string {
	return l.itemID
}

// Resolve returns the center pane whose active item is the linked item, or
// nil when there is no link or the item is gone from center.
func (l *Link) Resolve(host ports.Host) ports.Pane {
	if l.itemID == "" {
		return nil
	}
	for _, p := range host.Center().Panes() {
		if it := p.ActiveItem(); it != nil && it.ID() == l.itemID {
			return p
		}
	}
	return nil
}
