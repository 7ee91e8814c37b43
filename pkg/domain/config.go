package domain

import (
	"fmt"
	"slices"
)

// Config is the configuration an outlet is created with.
// The field tags match the option names accepted by the factory when the
// configuration arrives as a loose map (YAML, JSON, MCP arguments).
type Config struct {
	AllowedLocations        []Location     `mapstructure:"allowedLocations" json:"allowedLocations" yaml:"allowedLocations"`
	DefaultLocation         Location       `mapstructure:"defaultLocation" json:"defaultLocation" yaml:"defaultLocation"`
	Split                   SplitDirection `mapstructure:"split" json:"split" yaml:"split"`
	UseAdjacentPane         bool           `mapstructure:"useAdjacentPane" json:"useAdjacentPane" yaml:"useAdjacentPane"`
	TrackModified           bool           `mapstructure:"trackModified" json:"trackModified" yaml:"trackModified"`
	Title                   string         `mapstructure:"title" json:"title,omitempty" yaml:"title,omitempty"`
	ClassList               []string       `mapstructure:"classList" json:"classList,omitempty" yaml:"classList,omitempty"`
	ExtendsContentInterface bool           `mapstructure:"extendsContentInterface" json:"extendsContentInterface" yaml:"extendsContentInterface"`
}

// DefaultConfig returns the configuration used for every omitted option.
func DefaultConfig() Config {
	return Config{
		AllowedLocations: []Location{LocationCenter, LocationBottom},
		DefaultLocation:  LocationBottom,
		Split:            SplitRight,
		UseAdjacentPane:  true,
	}
}

// Validate checks the structural rules of a configuration.
// Every failure wraps ErrConfiguration.
func (c Config) Validate() error {
	if len(c.AllowedLocations) == 0 {
		return fmt.Errorf("%w: allowedLocations must not be empty", ErrConfiguration)
	}
	seen := make(map[Location]bool, len(c.AllowedLocations))
	for _, l := range c.AllowedLocations {
		if !l.Valid() {
			return fmt.Errorf("%w: unknown location %q in allowedLocations", ErrConfiguration, l)
		}
		if seen[l] {
			return fmt.Errorf("%w: duplicate location %q in allowedLocations", ErrConfiguration, l)
		}
		seen[l] = true
	}
	if !c.Allows(c.DefaultLocation) {
		return fmt.Errorf("%w: defaultLocation %q is not one of %v", ErrConfiguration, c.DefaultLocation, c.AllowedLocations)
	}
	if !c.Split.Valid() {
		return fmt.Errorf("%w: unknown split direction %q", ErrConfiguration, c.Split)
	}
	return nil
}

// Allows reports whether l is one of the allowed locations.
func (c Config) Allows(l Location) bool {
	return slices.Contains(c.AllowedLocations, l)
}

// HideLocation is the dock a center-placed outlet retreats to when hidden:
// the default location when it is a dock, else the first allowed dock, else
// the bottom dock.
func (c Config) HideLocation() Location {
	if c.DefaultLocation.IsDock() {
		return c.DefaultLocation
	}
	for _, l := range c.AllowedLocations {
		if l.IsDock() {
			return l
		}
	}
	return LocationBottom
}

// Clone returns a deep copy so callers cannot mutate a frozen configuration.
func (c Config) Clone() Config {
	c.AllowedLocations = slices.Clone(c.AllowedLocations)
	c.ClassList = slices.Clone(c.ClassList)
	return c
}

// PlacementOptions are the preferences applied when a pane is located.
// The last options used by an outlet are reused by later relocations.
type PlacementOptions struct {
	Split           SplitDirection `json:"split"`
	UseAdjacentPane bool           `json:"useAdjacentPane"`
	// Activate lets a center split keep the new pane active instead of
	// restoring the previously active pane.
	Activate bool `json:"activate"`
}

// PlacementOptions derives the initial placement options from the config.
func (c Config) PlacementOptions() PlacementOptions {
	return PlacementOptions{
		Split:           c.Split,
		UseAdjacentPane: c.UseAdjacentPane,
	}
}
