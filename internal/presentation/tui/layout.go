package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/outlet/pkg/domain"
)

// LayoutMarkdown describes a layout as a markdown table, one row per pane.
// Active items are in bold, the active pane is marked with ▶ and the focused
// item with *. names maps item IDs to display names and may be nil.
func LayoutMarkdown(layout domain.Layout, names map[string]string) string {
	var sb strings.Builder
	sb.WriteString("| Container | Pane | Items |\n")
	sb.WriteString("|---|---|---|\n")
	for _, c := range layout.Containers {
		container := string(c.Location)
		if !c.Visible {
			container += " _(hidden)_"
		}
		if len(c.Panes) == 0 {
			fmt.Fprintf(&sb, "| %s | | |\n", container)
			continue
		}
		for _, p := range c.Panes {
			pane := p.ID
			if p.ID == layout.ActivePane {
				pane = "▶ " + pane
			}
			items := make([]string, 0, len(p.Items))
			for _, it := range p.Items {
				label := displayName(it, names)
				if it.ID == layout.FocusedItem {
					label += "*"
				}
				if it.ID == p.ActiveItem {
					label = "**" + label + "**"
				}
				items = append(items, label)
			}
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", container, pane, strings.Join(items, ", "))
		}
	}
	return sb.String()
}

func displayName(it domain.ItemLayout, names map[string]string) string {
	if n, ok := names[it.ID]; ok {
		return n
	}
	if it.Title != "" {
		return it.Title
	}
	return it.ID
}
