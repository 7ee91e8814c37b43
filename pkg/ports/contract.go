package ports

import (
	"context"
	"testing"

	"github.com/aretw0/outlet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HostFactory builds a fresh host with an empty center pane and a bottom dock,
// plus a constructor for items the host can place.
type HostFactory func(t *testing.T) (Host, func(title string) Item)

// RunHostContract runs a suite of tests verifying that a Host implementation
// behaves the way the outlet runtime relies on.
func RunHostContract(t *testing.T, factory HostFactory) {
	ctx := context.Background()

	t.Run("Open without activating pane", func(t *testing.T) {
		host, newItem := factory(t)
		doc := newItem("doc")
		require.NoError(t, host.Open(ctx, doc, host.Center().ActivePane(), OpenOptions{ActivatePane: true, ActivateItem: true}))
		before := host.ActivePane()

		dock, ok := host.Dock(domain.LocationBottom)
		require.True(t, ok, "host must provide a bottom dock")

		panel := newItem("panel")
		require.NoError(t, host.Open(ctx, panel, dock.ActivePane(), OpenOptions{ActivateItem: true}))

		assert.True(t, SamePane(before, host.ActivePane()), "open must not steal pane activation")
		assert.Equal(t, domain.LocationBottom, LocationOf(host, panel))
		assert.True(t, SameItem(panel, dock.ActivePane().ActiveItem()))
	})

	t.Run("Split creates an adjacent center pane", func(t *testing.T) {
		host, newItem := factory(t)
		base := host.Center().ActivePane()
		require.NoError(t, host.Open(ctx, newItem("doc"), base, OpenOptions{ActivateItem: true}))

		created := base.Split(domain.SplitRight)
		require.NotNil(t, created)
		assert.Equal(t, domain.LocationCenter, created.Container().Location())
		assert.Len(t, host.Center().Panes(), 2)

		_, after := base.Siblings()
		assert.True(t, SamePane(created, after), "right split must be the next sibling")
		before, _ := created.Siblings()
		assert.True(t, SamePane(base, before))
	})

	t.Run("Moving the last item out collapses the center pane", func(t *testing.T) {
		host, newItem := factory(t)
		base := host.Center().ActivePane()
		require.NoError(t, host.Open(ctx, newItem("doc"), base, OpenOptions{ActivateItem: true}))

		right := base.Split(domain.SplitRight)
		panel := newItem("panel")
		require.NoError(t, host.Open(ctx, panel, right, OpenOptions{ActivateItem: true}))

		dock, _ := host.Dock(domain.LocationBottom)
		right.MoveItemToPane(panel, dock.ActivePane())

		assert.True(t, right.IsDestroyed())
		assert.Len(t, host.Center().Panes(), 1)
		assert.Equal(t, domain.LocationBottom, LocationOf(host, panel))
	})

	t.Run("Destroy removes only empty center panes", func(t *testing.T) {
		host, newItem := factory(t)
		base := host.Center().ActivePane()
		require.NoError(t, host.Open(ctx, newItem("doc"), base, OpenOptions{ActivateItem: true}))

		base.Destroy()
		assert.False(t, base.IsDestroyed(), "a pane with items is kept")

		empty := base.Split(domain.SplitDown)
		base.Activate()
		empty.Destroy()
		assert.True(t, empty.IsDestroyed())
		assert.Len(t, host.Center().Panes(), 1)
		assert.True(t, SamePane(base, host.ActivePane()))

		dock, _ := host.Dock(domain.LocationBottom)
		dock.ActivePane().Destroy()
		assert.False(t, dock.ActivePane().IsDestroyed(), "dock panes are kept")
	})

	t.Run("Emptied dock hides itself", func(t *testing.T) {
		host, newItem := factory(t)
		dock, _ := host.Dock(domain.LocationBottom)
		panel := newItem("panel")
		require.NoError(t, host.Open(ctx, panel, dock.ActivePane(), OpenOptions{ActivateItem: true}))
		dock.Show()
		require.True(t, dock.IsVisible())

		dock.ActivePane().MoveItemToPane(panel, host.Center().ActivePane())

		assert.False(t, dock.IsVisible())
		assert.Nil(t, dock.ActivePane().ActiveItem())
	})

	t.Run("Destroyed items are no longer placed", func(t *testing.T) {
		host, newItem := factory(t)
		doc := newItem("doc")
		require.NoError(t, host.Open(ctx, doc, host.Center().ActivePane(), OpenOptions{ActivateItem: true}))
		doc.Destroy()

		assert.True(t, doc.IsDestroyed())
		assert.Nil(t, host.PaneForItem(doc))
	})
}
