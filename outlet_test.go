package outlet_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/outlet"
	"github.com/aretw0/outlet/pkg/adapters/memory"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_AppliesItemOptions(t *testing.T) {
	ws := memory.New()
	item := ws.NewItem("")
	item.Insert("pending")

	out, err := outlet.Create(ws, item, map[string]any{
		"title":     "Test Runner",
		"classList": []string{"runner"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Test Runner", item.Title())
	assert.Equal(t, []string{outlet.ClassName, "runner"}, item.Classes())
	assert.False(t, item.IsModified(), "trackModified defaults to false")
	assert.Equal(t, []domain.Location{domain.LocationCenter, domain.LocationBottom}, out.AllowedLocations())
	assert.Equal(t, domain.LocationBottom, out.DefaultLocation())
	assert.Equal(t, domain.StateUnopened, out.State())
}

func TestCreate_UntitledAndTracked(t *testing.T) {
	ws := memory.New()
	item := ws.NewItem("")
	_, err := outlet.Create(ws, item, map[string]any{"trackModified": true})
	require.NoError(t, err)

	item.Insert("x")
	assert.Equal(t, memory.DefaultTitle, item.Title())
	assert.True(t, item.IsModified())
}

func TestCreate_InvalidConfig(t *testing.T) {
	ws := memory.New()
	_, err := outlet.Create(ws, ws.NewItem("x"), map[string]any{
		"allowedLocations": []string{"center"},
		"defaultLocation":  "bottom",
	})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestOutlet_Scenario(t *testing.T) {
	ctx := context.Background()
	ws := memory.New()
	doc := ws.NewItem("main.go")
	require.NoError(t, ws.Open(ctx, doc, nil, ports.OpenOptions{ActivatePane: true, ActivateItem: true}))
	active := ws.ActivePane()

	out, err := outlet.Create(ws, ws.NewItem("out"), nil)
	require.NoError(t, err)
	bottom, _ := ws.Dock(domain.LocationBottom)

	item, err := out.Open(ctx)
	require.NoError(t, err)
	assert.Same(t, out.Item(), item)
	assert.Equal(t, domain.LocationBottom, out.Location())
	assert.True(t, bottom.IsVisible())
	assert.True(t, ports.SamePane(active, ws.ActivePane()))

	require.NoError(t, out.Relocate(domain.Forward))
	assert.Equal(t, domain.LocationCenter, out.Location())
	assert.False(t, bottom.IsVisible())

	require.NoError(t, out.Relocate(domain.Forward))
	assert.Equal(t, domain.LocationBottom, out.Location())
}

func TestOutlet_CenterHideShow(t *testing.T) {
	ctx := context.Background()
	ws := memory.New()
	out, err := outlet.Create(ws, ws.NewItem("out"), map[string]any{"defaultLocation": "center"})
	require.NoError(t, err)

	_, err = out.Open(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.LocationCenter, out.Location())

	require.NoError(t, out.Hide())
	assert.Equal(t, domain.LocationBottom, out.Location())
	assert.True(t, out.HiddenInCenter())
	assert.False(t, out.IsVisible())

	require.NoError(t, out.Show())
	assert.Equal(t, domain.LocationCenter, out.Location())
	assert.False(t, out.HiddenInCenter())
	assert.True(t, out.IsVisible())
}

func TestOutlet_CloseCommand(t *testing.T) {
	ctx := context.Background()
	ws := memory.New()
	item := ws.NewItem("out")

	var events []domain.EventType
	out, err := outlet.New(ws, item, domain.DefaultConfig(), outlet.WithLifecycleHooks(domain.LifecycleHooks{
		OnDestroy: func(e *domain.Event) { events = append(events, e.Type) },
	}))
	require.NoError(t, err)
	_, err = out.Open(ctx)
	require.NoError(t, err)

	require.True(t, ws.Dispatch(item, ports.CommandClose))
	assert.True(t, item.IsDestroyed())
	assert.Equal(t, domain.StateDestroyed, out.State())
	assert.Nil(t, ws.PaneForItem(item))
	assert.False(t, ws.Dispatch(item, ports.CommandClose), "binding removed on destroy")
	assert.Equal(t, []domain.EventType{domain.EventDestroy}, events)

	// Everything afterwards is a no-op.
	assert.NoError(t, out.Relocate(domain.Forward))
	assert.NoError(t, out.Toggle())
	out.Destroy()
	assert.Len(t, events, 1)
}

func TestOutlet_OpenWith(t *testing.T) {
	ws := memory.New()
	out, err := outlet.Create(ws, ws.NewItem("out"), map[string]any{"useAdjacentPane": false})
	require.NoError(t, err)

	_, err = out.OpenWith(context.Background(), domain.LocationCenter, domain.PlacementOptions{Split: domain.SplitLeft})
	require.NoError(t, err)

	pane := ws.PaneForItem(out.Item())
	_, after := pane.Siblings()
	assert.True(t, ports.SamePane(after, ws.Center().ActivePane()), "left split puts the outlet before the active pane")
}

func TestOutlet_Events(t *testing.T) {
	ctx := context.Background()
	ws := memory.New()
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var got []domain.Event
	record := func(e *domain.Event) { got = append(got, *e) }
	out, err := outlet.New(ws, ws.NewItem("out"), domain.DefaultConfig(),
		outlet.WithID("build"),
		outlet.WithClock(func() time.Time { return stamp }),
		outlet.WithLifecycleHooks(domain.LifecycleHooks{OnPlace: record, OnHide: record, OnShow: record}),
	)
	require.NoError(t, err)

	_, err = out.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, out.Hide())
	require.NoError(t, out.Show())

	require.Len(t, got, 3)
	assert.Equal(t, "build", out.ID())
	for _, e := range got {
		assert.Equal(t, "build", e.OutletID)
		assert.Equal(t, out.Item().ID(), e.ItemID)
		assert.Equal(t, stamp, e.Timestamp)
	}
	assert.Equal(t, domain.EventOpen, got[0].Type)
	assert.Equal(t, domain.LocationBottom, got[0].To)
}

// Panel is a content item that already knows how to show itself.
type Panel struct{ *memory.Item }

func (p Panel) Show() {}

func TestExtend(t *testing.T) {
	ctx := context.Background()
	ws := memory.New()

	t.Run("Adapter", func(t *testing.T) {
		item := ws.NewItem("out")
		out, err := outlet.Create(ws, item, map[string]any{"extendsContentInterface": true})
		require.NoError(t, err)

		ext, err := out.Extend()
		require.NoError(t, err)
		assert.Equal(t, item.ID(), ext.ID())

		_, err = ext.Open(ctx, domain.LocationCenter)
		require.NoError(t, err)
		require.NoError(t, ext.Relocate(domain.Forward))
		assert.Equal(t, domain.LocationBottom, ports.LocationOf(ws, ext))

		ext.Destroy()
		assert.True(t, ext.IsDestroyed())
	})

	t.Run("Disabled", func(t *testing.T) {
		out, err := outlet.Create(ws, ws.NewItem("out"), nil)
		require.NoError(t, err)
		_, err = out.Extend()
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("Collision", func(t *testing.T) {
		_, err := outlet.Create(ws, Panel{ws.NewItem("panel")}, map[string]any{"extendsContentInterface": true})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.ErrorContains(t, err, "Show")
	})
}
