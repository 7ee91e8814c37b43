package domain

// Layout is a read-only view of a host's panes, used for rendering and
// for the HTTP and MCP surfaces.
type Layout struct {
	ActivePane  string            `json:"activePane"`
	FocusedItem string            `json:"focusedItem,omitempty"`
	Containers  []ContainerLayout `json:"containers"`
}

// ContainerLayout describes the center or a dock.
type ContainerLayout struct {
	Location   Location     `json:"location"`
	Visible    bool         `json:"visible"`
	ActivePane string       `json:"activePane"`
	Panes      []PaneLayout `json:"panes"`
}

// PaneLayout lists the items of a pane in order.
type PaneLayout struct {
	ID         string       `json:"id"`
	ActiveItem string       `json:"activeItem,omitempty"`
	Items      []ItemLayout `json:"items"`
}

// ItemLayout identifies a placed item.
type ItemLayout struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Container returns the layout of the container at loc.
func (l Layout) Container(loc Location) (ContainerLayout, bool) {
	for _, c := range l.Containers {
		if c.Location == loc {
			return c, true
		}
	}
	return ContainerLayout{}, false
}
