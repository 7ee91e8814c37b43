/*
Package outlet places a panel-like item in a pane-based workspace and moves it
around: open it into one of its allowed locations, cycle it between them, show,
hide or toggle it, focus it, and link it to a center item.

# Concept

An Outlet wraps exactly one content item and drives an abstract Placement Host
(ports.Host): the workspace's center split tree and its docks. The outlet owns
no rendering and no content; it only decides which pane the item lives in and
which pane or dock is on screen afterwards.

Center placements are special. A centered outlet cannot hide in place, so Hide
parks it in a dock and remembers that it came from the center; Show brings it
back beside the same pane.

# Usage

	ws := memory.New()
	item := ws.NewItem("Build output")

	out, err := outlet.Create(ws, item, map[string]any{
		"allowedLocations": []string{"center", "bottom"},
		"defaultLocation":  "bottom",
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := out.Open(ctx); err != nil { // lands in the bottom dock
		log.Fatal(err)
	}
	_ = out.Relocate(domain.Forward) // moves beside the active center pane
	_ = out.Hide()                   // parks in the bottom dock, hidden
	_ = out.Show()                   // back to the center

# Concurrency

Like the UI thread it models, an Outlet is not safe for concurrent use. Open
may suspend inside the host; an overlapping Open fails with
domain.ErrOpenInFlight. Servers share outlets through pkg/session, which
serialises every call.
*/
package outlet
