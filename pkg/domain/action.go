package domain

import (
	"fmt"
	"strings"
)

// Action names an outlet operation requested through a remote surface
// (HTTP, MCP, scenario scripts).
type Action string

const (
	ActionOpen     Action = "open"
	ActionRelocate Action = "relocate"
	ActionShow     Action = "show"
	ActionHide     Action = "hide"
	ActionToggle   Action = "toggle"
	ActionFocus    Action = "focus"
	ActionLink     Action = "link"
	ActionDestroy  Action = "destroy"
)

// Actions lists every action in a stable order.
var Actions = []Action{
	ActionOpen, ActionRelocate, ActionShow, ActionHide,
	ActionToggle, ActionFocus, ActionLink, ActionDestroy,
}

// ParseAction converts a raw name into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ActionArgs carries the optional arguments of an action.
type ActionArgs struct {
	Location Location       `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	Backward bool           `json:"backward,omitempty" yaml:"backward,omitempty" mapstructure:"backward"`
	Target   string         `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"` // item ID for link
	Split    SplitDirection `json:"split,omitempty" yaml:"split,omitempty" mapstructure:"split"`
	Activate bool           `json:"activate,omitempty" yaml:"activate,omitempty" mapstructure:"activate"`
}

// Direction returns the relocation direction.
func (a ActionArgs) Direction() Direction {
	if a.Backward {
		return Backward
	}
	return Forward
}
