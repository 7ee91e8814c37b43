package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/outlet/internal/presentation/graph"
	"github.com/aretw0/outlet/pkg/domain"
)

func sampleLayout() domain.Layout {
	return domain.Layout{
		ActivePane:  "pane-1",
		FocusedItem: "item-2",
		Containers: []domain.ContainerLayout{
			{
				Location: domain.LocationCenter, Visible: true, ActivePane: "pane-1",
				Panes: []domain.PaneLayout{
					{ID: "pane-1", ActiveItem: "item-1", Items: []domain.ItemLayout{{ID: "item-1", Title: "main.go"}}},
					{ID: "pane-5", ActiveItem: "item-3", Items: []domain.ItemLayout{{ID: "item-3", Title: `say "hi"`}}},
				},
			},
			{
				Location: domain.LocationBottom, Visible: false, ActivePane: "pane-2",
				Panes: []domain.PaneLayout{
					{ID: "pane-2", ActiveItem: "item-2", Items: []domain.ItemLayout{
						{ID: "item-2", Title: "Build"},
						{ID: "item-4"},
					}},
				},
			},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Containers As Subgraphs",
			contains: []string{
				"subgraph c_center[\"center\"]",
				"subgraph c_bottom[\"bottom (hidden)\"]",
			},
		},
		{
			name: "Active Pane Shape",
			contains: []string{
				"pane_1[[\"pane-1\"]]",
				"pane_2[[\"pane-2\"]]",
				"pane_5[\"pane-5\"]",
			},
		},
		{
			name: "Item Edges",
			contains: []string{
				"pane_1 --> item_1(\"main.go\")",
				"pane_2 --> item_2(\"Build\")",
				"pane_2 -.-> item_4(\"item-4\")",
				"item_3(\"say 'hi'\")",
			},
		},
		{
			name: "Overlay Styles",
			overlay: &graph.Overlay{
				Outlets: []string{"item-3", "item-3", "item-2"},
			},
			contains: []string{
				"class pane_1 current;",
				"class item_2 focused;",
				"class item_3 outlet;",
			},
			excludes: []string{
				"class item_2 outlet;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(sampleLayout(), tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() missing %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() should not contain %q", unwanted)
				}
			}
			if strings.Count(got, "class item_3 outlet;") > 1 {
				t.Error("GenerateMermaid() should deduplicate overlay classes")
			}
		})
	}
}
