// Package scenario replays YAML scripts of outlet operations against an
// in-memory session and checks the resulting placements.
package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/outlet/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Script is a scenario file.
type Script struct {
	Name    string            `yaml:"name"`
	Docks   []domain.Location `yaml:"docks,omitempty"` // default: every dock
	Items   []ItemSpec        `yaml:"items,omitempty"`
	Outlets []OutletSpec      `yaml:"outlets"`
	Steps   []Step            `yaml:"steps"`
}

// ItemSpec is a plain document opened before the steps run.
type ItemSpec struct {
	Name  string                `yaml:"name"`
	Title string                `yaml:"title,omitempty"`
	Split domain.SplitDirection `yaml:"split,omitempty"`
}

// OutletSpec declares an outlet. Options use the outlet option names.
type OutletSpec struct {
	Name    string         `yaml:"name"`
	Title   string         `yaml:"title,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// Step runs one action on a named outlet.
type Step struct {
	Outlet string        `yaml:"outlet"`
	Action domain.Action `yaml:"action"`
	Args   StepArgs      `yaml:"args,omitempty"`
	Expect *Expectation  `yaml:"expect,omitempty"`
}

// StepArgs mirrors domain.ActionArgs, with link targets named by item.
type StepArgs struct {
	Location domain.Location       `yaml:"location,omitempty"`
	Backward bool                  `yaml:"backward,omitempty"`
	Target   string                `yaml:"target,omitempty"`
	Split    domain.SplitDirection `yaml:"split,omitempty"`
	Activate bool                  `yaml:"activate,omitempty"`
}

// Expectation lists the checks made after a step. Unset fields are skipped.
type Expectation struct {
	Error          string                   `yaml:"error,omitempty"` // substring of the expected error
	State          domain.State             `yaml:"state,omitempty"`
	Location       *domain.Location         `yaml:"location,omitempty"`
	Visible        *bool                    `yaml:"visible,omitempty"`
	HiddenInCenter *bool                    `yaml:"hiddenInCenter,omitempty"`
	Linked         *string                  `yaml:"linked,omitempty"` // item name, "" for none
	DockVisible    map[domain.Location]bool `yaml:"dockVisible,omitempty"`
	CenterPanes    *int                     `yaml:"centerPanes,omitempty"`
	ActivePaneIn   domain.Location          `yaml:"activePaneIn,omitempty"`
	Focused        *string                  `yaml:"focused,omitempty"` // item or outlet name, "" for none
}

// Parse decodes a script, rejecting unknown fields.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty scenario")
		}
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses a script from disk.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Script) validate() error {
	names := make(map[string]string)
	claim := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%s without a name", kind)
		}
		if prev, ok := names[name]; ok {
			return fmt.Errorf("%s %q clashes with %s of the same name", kind, name, prev)
		}
		names[name] = kind
		return nil
	}
	for _, it := range s.Items {
		if err := claim("item", it.Name); err != nil {
			return err
		}
	}
	for _, o := range s.Outlets {
		if err := claim("outlet", o.Name); err != nil {
			return err
		}
	}
	for _, loc := range s.Docks {
		if !loc.IsDock() {
			return fmt.Errorf("docks: %q is not a dock location", loc)
		}
	}
	for i, st := range s.Steps {
		if names[st.Outlet] != "outlet" {
			return fmt.Errorf("step %d: unknown outlet %q", i+1, st.Outlet)
		}
		action, err := domain.ParseAction(string(st.Action))
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		s.Steps[i].Action = action
		if st.Args.Target != "" && names[st.Args.Target] == "" {
			return fmt.Errorf("step %d: unknown link target %q", i+1, st.Args.Target)
		}
	}
	return nil
}
