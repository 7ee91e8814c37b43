package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/pkg/adapters/memory"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/session"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Index    int                `json:"index"` // 1-based
	Step     Step               `json:"step"`
	Err      string             `json:"error,omitempty"`
	Outlet   session.OutletInfo `json:"outlet"`
	Layout   domain.Layout      `json:"layout"`
	Failures []string           `json:"failures,omitempty"`
}

// Report collects the results of a run.
type Report struct {
	Name  string            `json:"name"`
	Names map[string]string `json:"names"` // item ID -> script name
	Steps []StepResult      `json:"steps"`
}

// OutletItems returns the item IDs owned by the outlets of the run.
func (r Report) OutletItems() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, st := range r.Steps {
		if id := st.Outlet.ItemID; id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Passed reports whether every expectation held.
func (r Report) Passed() bool {
	for _, st := range r.Steps {
		if len(st.Failures) > 0 {
			return false
		}
	}
	return true
}

// Failures returns every failed check, prefixed by its step.
func (r Report) Failures() []string {
	var all []string
	for _, st := range r.Steps {
		for _, f := range st.Failures {
			all = append(all, fmt.Sprintf("step %d (%s %s): %s", st.Index, st.Step.Action, st.Step.Outlet, f))
		}
	}
	return all
}

// Runner executes scripts.
type Runner struct {
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	onStep  func(StepResult)
	onNames func(map[string]string)
}

// Option configures the Runner.
type Option func(*Runner)

// WithLogger configures a logger for the runner and its session.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLifecycleHooks attaches hooks to every outlet of the run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// WithStepHandler is called after every step, e.g. to print the layout.
func WithStepHandler(fn func(StepResult)) Option {
	return func(r *Runner) {
		r.onStep = fn
	}
}

// WithNames receives the item ID to script name mapping before the first
// step runs.
func WithNames(fn func(map[string]string)) Option {
	return func(r *Runner) {
		r.onNames = fn
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays s on a fresh session. An error is returned when the script
// cannot be set up or a step fails without expecting it; failed expectations
// only mark the report.
func (r *Runner) Run(ctx context.Context, s *Script) (Report, error) {
	report := Report{Name: s.Name}

	var wsOpts []memory.Option
	wsOpts = append(wsOpts, memory.WithLogger(r.logger))
	if len(s.Docks) > 0 {
		wsOpts = append(wsOpts, memory.WithDocks(s.Docks...))
	}
	sess := session.New(s.Name,
		session.WithWorkspace(memory.New(wsOpts...)),
		session.WithLogger(r.logger),
		session.WithLifecycleHooks(r.hooks),
	)

	// name -> item ID, for items and for the items of outlets
	ids := make(map[string]string)
	outlets := make(map[string]string) // name -> outlet ID
	for _, it := range s.Items {
		title := it.Title
		if title == "" {
			title = it.Name
		}
		info, err := sess.AddItem(ctx, title, it.Split)
		if err != nil {
			return report, fmt.Errorf("item %q: %w", it.Name, err)
		}
		ids[it.Name] = info.ID
	}
	for _, o := range s.Outlets {
		info, err := sess.CreateOutlet(ctx, o.Title, o.Options)
		if err != nil {
			return report, fmt.Errorf("outlet %q: %w", o.Name, err)
		}
		ids[o.Name] = info.ItemID
		outlets[o.Name] = info.ID
	}
	names := make(map[string]string, len(ids))
	for name, id := range ids {
		names[id] = name
	}
	report.Names = names
	if r.onNames != nil {
		r.onNames(names)
	}

	for i, st := range s.Steps {
		res := StepResult{Index: i + 1, Step: st}
		args := domain.ActionArgs{
			Location: st.Args.Location,
			Backward: st.Args.Backward,
			Split:    st.Args.Split,
			Activate: st.Args.Activate,
		}
		if st.Args.Target != "" {
			args.Target = ids[st.Args.Target]
		}

		info, err := sess.Do(ctx, outlets[st.Outlet], st.Action, args)
		if err != nil {
			res.Err = err.Error()
			if st.Expect == nil || st.Expect.Error == "" {
				return report, fmt.Errorf("step %d (%s %s): %w", res.Index, st.Action, st.Outlet, err)
			}
			info, _ = sess.Get(ctx, outlets[st.Outlet])
		}
		res.Outlet = info
		if res.Layout, err = sess.Layout(ctx); err != nil {
			return report, err
		}
		if st.Expect != nil {
			res.Failures = check(st.Expect, res, ids, names)
		}
		r.logger.Debug("scenario step", "step", res.Index, "action", st.Action, "outlet", st.Outlet,
			"location", info.Location, "failures", len(res.Failures))

		report.Steps = append(report.Steps, res)
		if r.onStep != nil {
			r.onStep(res)
		}
	}
	return report, nil
}

func check(e *Expectation, res StepResult, ids, names map[string]string) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}
	info := res.Outlet

	if e.Error != "" && !strings.Contains(res.Err, e.Error) {
		fail("error: want %q, got %q", e.Error, res.Err)
	}
	if e.State != "" && info.State != e.State {
		fail("state: want %s, got %s", e.State, info.State)
	}
	if e.Location != nil && info.Location != *e.Location {
		fail("location: want %q, got %q", *e.Location, info.Location)
	}
	if e.Visible != nil && info.Visible != *e.Visible {
		fail("visible: want %t, got %t", *e.Visible, info.Visible)
	}
	if e.HiddenInCenter != nil && info.HiddenInCenter != *e.HiddenInCenter {
		fail("hiddenInCenter: want %t, got %t", *e.HiddenInCenter, info.HiddenInCenter)
	}
	if e.Linked != nil && info.LinkedItemID != ids[*e.Linked] {
		fail("linked: want %q, got %q", *e.Linked, names[info.LinkedItemID])
	}
	for loc, want := range e.DockVisible {
		c, ok := res.Layout.Container(loc)
		if !ok {
			fail("dock %s: not in the workspace", loc)
			continue
		}
		if c.Visible != want {
			fail("dock %s visible: want %t, got %t", loc, want, c.Visible)
		}
	}
	if e.CenterPanes != nil {
		if c, _ := res.Layout.Container(domain.LocationCenter); len(c.Panes) != *e.CenterPanes {
			fail("centerPanes: want %d, got %d", *e.CenterPanes, len(c.Panes))
		}
	}
	if e.ActivePaneIn != "" {
		if got := locationOfPane(res.Layout, res.Layout.ActivePane); got != e.ActivePaneIn {
			fail("active pane: want it in %s, got %s", e.ActivePaneIn, got)
		}
	}
	if e.Focused != nil && res.Layout.FocusedItem != ids[*e.Focused] {
		fail("focused: want %q, got %q", *e.Focused, names[res.Layout.FocusedItem])
	}
	return failures
}

func locationOfPane(l domain.Layout, paneID string) domain.Location {
	for _, c := range l.Containers {
		for _, p := range c.Panes {
			if p.ID == paneID {
				return c.Location
			}
		}
	}
	return ""
}
