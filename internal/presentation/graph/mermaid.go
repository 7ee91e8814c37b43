package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/outlet/pkg/domain"
)

// Overlay marks items to highlight on the diagram.
type Overlay struct {
	Outlets []string // item IDs owned by outlets
}

// GenerateMermaid produces a Mermaid flowchart of a workspace layout.
// Each container becomes a subgraph, panes are rectangles and items hang off
// their pane:
// - Active pane of a container: [[Subroutine]]
// - Active item of a pane: solid edge, others dotted
// - Hidden dock: subgraph title suffixed with "(hidden)"
func GenerateMermaid(layout domain.Layout, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, c := range layout.Containers {
		title := string(c.Location)
		if !c.Visible {
			title += " (hidden)"
		}
		sb.WriteString(fmt.Sprintf("    subgraph %s[\"%s\"]\n", sanitizeMermaidID("c-"+string(c.Location)), title))
		for _, p := range c.Panes {
			safeID := sanitizeMermaidID(p.ID)
			opener, closer := "[", "]"
			if p.ID == c.ActivePane {
				opener, closer = "[[", "]]"
			}
			sb.WriteString(fmt.Sprintf("        %s%s\"%s\"%s\n", safeID, opener, p.ID, closer))
			for _, it := range p.Items {
				label := it.ID
				if it.Title != "" {
					label = strings.ReplaceAll(it.Title, "\"", "'")
				}
				arrow := "-.->"
				if it.ID == p.ActiveItem {
					arrow = "-->"
				}
				sb.WriteString(fmt.Sprintf("        %s %s %s(\"%s\")\n", safeID, arrow, sanitizeMermaidID(it.ID), label))
			}
		}
		sb.WriteString("    end\n")
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
	sb.WriteString("    classDef focused fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef outlet fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	if layout.ActivePane != "" {
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(layout.ActivePane)))
	}
	if overlay != nil {
		seen := make(map[string]bool)
		for _, id := range overlay.Outlets {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" && safeID != sanitizeMermaidID(layout.FocusedItem) {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s outlet;\n", safeID))
			}
		}
	}
	if layout.FocusedItem != "" {
		sb.WriteString(fmt.Sprintf("    class %s focused;\n", sanitizeMermaidID(layout.FocusedItem)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
