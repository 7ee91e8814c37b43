package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/outlet/internal/presentation/tui"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestLayoutMarkdown(t *testing.T) {
	layout := domain.Layout{
		ActivePane:  "pane-1",
		FocusedItem: "item-2",
		Containers: []domain.ContainerLayout{
			{Location: domain.LocationCenter, Visible: true, Panes: []domain.PaneLayout{
				{ID: "pane-1", ActiveItem: "item-1", Items: []domain.ItemLayout{{ID: "item-1", Title: "main.go"}}},
			}},
			{Location: domain.LocationBottom, Visible: false, Panes: []domain.PaneLayout{
				{ID: "pane-2", ActiveItem: "item-2", Items: []domain.ItemLayout{{ID: "item-2"}, {ID: "item-3", Title: "Logs"}}},
			}},
			{Location: domain.LocationLeft, Visible: false},
		},
	}

	md := tui.LayoutMarkdown(layout, map[string]string{"item-2": "build"})
	lines := strings.Split(strings.TrimSpace(md), "\n")
	assert.Equal(t, []string{
		"| Container | Pane | Items |",
		"|---|---|---|",
		"| center | ▶ pane-1 | **main.go** |",
		"| bottom _(hidden)_ | pane-2 | **build***, Logs |",
		"| left _(hidden)_ | | |",
	}, lines)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "0.1.0")
	assert.Contains(t, buf.String(), "0.1.0")
	assert.Contains(t, buf.String(), "|_|")
}

func TestStatusAndPlainRenderer(t *testing.T) {
	assert.Contains(t, tui.Status(true, "step 1"), "step 1")
	assert.Contains(t, tui.Status(false, "step 2"), "✘")

	out, err := tui.PlainRenderer()("# title")
	assert.NoError(t, err)
	assert.Equal(t, "# title", out)
}
