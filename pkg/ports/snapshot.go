package ports

import "github.com/aretw0/outlet/pkg/domain"

// Snapshot captures the current layout of any host.
// Docks are listed in domain.DockLocations order after the center.
func Snapshot(h Host) domain.Layout {
	layout := domain.Layout{}
	if p := h.ActivePane(); p != nil {
		layout.ActivePane = p.ID()
	}
	if it := h.FocusedItem(); it != nil {
		layout.FocusedItem = it.ID()
	}

	layout.Containers = append(layout.Containers, containerLayout(h.Center(), true))
	for _, loc := range domain.DockLocations {
		d, ok := h.Dock(loc)
		if !ok {
			continue
		}
		layout.Containers = append(layout.Containers, containerLayout(d, d.IsVisible()))
	}
	return layout
}

func containerLayout(c Container, visible bool) domain.ContainerLayout {
	cl := domain.ContainerLayout{Location: c.Location(), Visible: visible}
	if p := c.ActivePane(); p != nil {
		cl.ActivePane = p.ID()
	}
	for _, p := range c.Panes() {
		pl := domain.PaneLayout{ID: p.ID(), Items: []domain.ItemLayout{}}
		if it := p.ActiveItem(); it != nil {
			pl.ActiveItem = it.ID()
		}
		for _, it := range p.Items() {
			il := domain.ItemLayout{ID: it.ID()}
			if titled, ok := it.(Titled); ok {
				il.Title = titled.Title()
			}
			pl.Items = append(pl.Items, il)
		}
		cl.Panes = append(cl.Panes, pl)
	}
	return cl
}
