package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/outlet"
	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/internal/presentation/graph"
	"github.com/aretw0/outlet/internal/presentation/tui"
	"github.com/aretw0/outlet/internal/scenario"
	"github.com/aretw0/outlet/pkg/observability"
	"golang.org/x/term"
)

// RunOptions selects the output of RunScenario.
type RunOptions struct {
	JSON    bool // print the report as JSON instead of tables
	Mermaid bool // print a Mermaid diagram of the final layout
	Plain   bool // skip the banner and markdown styling
	Logger  *slog.Logger
}

// ErrScenarioFailed is returned when a scenario ran but an expectation did
// not hold.
var ErrScenarioFailed = errors.New("scenario failed")

// RunScenario replays the scenario file at path and prints each step to w.
func RunScenario(ctx context.Context, w io.Writer, path string, opts RunOptions) (scenario.Report, error) {
	script, err := scenario.LoadFile(path)
	if err != nil {
		return scenario.Report{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	plain := opts.Plain || !isTerminal(w)
	render := tui.PlainRenderer()
	if !plain {
		render = tui.NewRenderer()
	}

	runnerOpts := []scenario.Option{
		scenario.WithLogger(logger),
		scenario.WithLifecycleHooks(observability.AuditHooks(logger.With("scenario", script.Name))),
	}
	var names map[string]string
	if !opts.JSON && !opts.Mermaid {
		if !plain {
			tui.PrintBanner(w, strings.TrimSpace(outlet.Version))
		}
		fmt.Fprintf(w, "Scenario: %s\n\n", script.Name)
		runnerOpts = append(runnerOpts, scenario.WithStepHandler(func(res scenario.StepResult) {
			msg := fmt.Sprintf("step %d: %s %s -> %s", res.Index, res.Step.Action, res.Step.Outlet, res.Outlet.Location)
			if res.Err != "" {
				msg += fmt.Sprintf(" (error: %s)", res.Err)
			}
			fmt.Fprintln(w, tui.Status(len(res.Failures) == 0, msg))
			for _, f := range res.Failures {
				fmt.Fprintf(w, "    %s\n", f)
			}
			out, err := render(tui.LayoutMarkdown(res.Layout, names))
			if err != nil {
				logger.Warn("Failed to render layout", "error", err)
				return
			}
			fmt.Fprintln(w, out)
		}))
	}

	// names is filled once the runner has created the items; the step handler
	// only runs after that.
	runner := scenario.NewRunner(append(runnerOpts, scenario.WithNames(func(n map[string]string) { names = n }))...)
	report, err := runner.Run(ctx, script)
	if err != nil {
		return report, err
	}

	switch {
	case opts.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return report, err
		}
	case opts.Mermaid:
		if len(report.Steps) > 0 {
			last := report.Steps[len(report.Steps)-1]
			fmt.Fprint(w, graph.GenerateMermaid(last.Layout, &graph.Overlay{Outlets: report.OutletItems()}))
		}
	default:
		fmt.Fprintln(w, tui.Status(report.Passed(), fmt.Sprintf("%d steps, %d failed checks", len(report.Steps), len(report.Failures()))))
	}

	if !report.Passed() {
		return report, ErrScenarioFailed
	}
	return report, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
