package domain

import "fmt"

// Location names a place an item can live in: the center container or a dock.
type Location string

const (
	LocationCenter Location = "center"
	LocationBottom Location = "bottom"
	LocationLeft   Location = "left"
	LocationRight  Location = "right"
)

// DockLocations lists the dock locations a host is expected to provide, in
// the order used when a fallback dock has to be picked.
var DockLocations = []Location{LocationBottom, LocationLeft, LocationRight}

// IsCenter reports whether l is the center container.
func (l Location) IsCenter() bool {
	return l == LocationCenter
}

// IsDock reports whether l names one of the supported docks.
func (l Location) IsDock() bool {
	for _, d := range DockLocations {
		if l == d {
			return true
		}
	}
	return false
}

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	return l.IsCenter() || l.IsDock()
}

func (l Location) String() string {
	return string(l)
}

// ParseLocation converts a raw name into a Location.
func ParseLocation(s string) (Location, error) {
	l := Location(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: unknown location %q", ErrConfiguration, s)
	}
	return l, nil
}

// Direction selects which way a relocation walks the allowed locations.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Delta returns the index step for the direction.
func (d Direction) Delta() int {
	if d == Backward {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// SplitDirection is the side on which a new center pane is created.
type SplitDirection string

const (
	SplitLeft  SplitDirection = "left"
	SplitRight SplitDirection = "right"
	SplitUp    SplitDirection = "up"
	SplitDown  SplitDirection = "down"
)

// Valid reports whether d is one of the four split directions.
func (d SplitDirection) Valid() bool {
	switch d {
	case SplitLeft, SplitRight, SplitUp, SplitDown:
		return true
	}
	return false
}

// Horizontal reports whether the split places panes side by side.
func (d SplitDirection) Horizontal() bool {
	return d == SplitLeft || d == SplitRight
}

// Before reports whether the new pane goes before the split pane.
func (d SplitDirection) Before() bool {
	return d == SplitLeft || d == SplitUp
}
