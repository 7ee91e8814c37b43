package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/outlet/pkg/adapters/memory"
	"github.com/aretw0/outlet/pkg/adapters/redis"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("o%d", n)
	}
}

func newSession(t *testing.T, opts ...session.Option) *session.Session {
	t.Helper()
	opts = append([]session.Option{session.WithIDGenerator(sequentialIDs())}, opts...)
	return session.New("test", opts...)
}

func TestSession_CycleScenario(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	doc, err := s.AddItem(ctx, "doc", "")
	require.NoError(t, err)
	assert.Equal(t, domain.LocationCenter, doc.Location)

	info, err := s.CreateOutlet(ctx, "Build output", map[string]any{
		"allowedLocations": []string{"center", "bottom", "right"},
		"defaultLocation":  "bottom",
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", info.ID)
	assert.Equal(t, domain.StateUnopened, info.State)
	assert.Equal(t, "Build output", info.Title)

	info, err = s.Do(ctx, "o1", domain.ActionOpen, domain.ActionArgs{})
	require.NoError(t, err)
	assert.Equal(t, domain.LocationBottom, info.Location)
	assert.True(t, info.Visible)

	want := []domain.Location{domain.LocationRight, domain.LocationCenter, domain.LocationBottom}
	for _, loc := range want {
		info, err = s.Do(ctx, "o1", domain.ActionRelocate, domain.ActionArgs{})
		require.NoError(t, err)
		assert.Equal(t, loc, info.Location)
	}

	info, err = s.Do(ctx, "o1", domain.ActionRelocate, domain.ActionArgs{Backward: true})
	require.NoError(t, err)
	assert.Equal(t, domain.LocationCenter, info.Location)

	layout, err := s.Layout(ctx)
	require.NoError(t, err)
	center, ok := layout.Container(domain.LocationCenter)
	require.True(t, ok)
	assert.Len(t, center.Panes, 2, "the outlet split the center pane")
}

func TestSession_HideShowToggle(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	_, err := s.AddItem(ctx, "doc", "")
	require.NoError(t, err)
	_, err = s.CreateOutlet(ctx, "preview", map[string]any{"defaultLocation": "center"})
	require.NoError(t, err)

	_, err = s.Do(ctx, "o1", domain.ActionOpen, domain.ActionArgs{})
	require.NoError(t, err)

	info, err := s.Do(ctx, "o1", domain.ActionHide, domain.ActionArgs{})
	require.NoError(t, err)
	assert.True(t, info.HiddenInCenter)
	assert.Equal(t, domain.LocationBottom, info.Location)
	assert.False(t, info.Visible)

	info, err = s.Do(ctx, "o1", domain.ActionShow, domain.ActionArgs{})
	require.NoError(t, err)
	assert.False(t, info.HiddenInCenter)
	assert.Equal(t, domain.LocationCenter, info.Location)

	info, err = s.Do(ctx, "o1", domain.ActionToggle, domain.ActionArgs{})
	require.NoError(t, err)
	assert.False(t, info.Visible)
	info, err = s.Do(ctx, "o1", domain.ActionToggle, domain.ActionArgs{})
	require.NoError(t, err)
	assert.True(t, info.Visible)
}

func TestSession_OpenWithSplit(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	_, err := s.AddItem(ctx, "doc", "")
	require.NoError(t, err)
	_, err = s.CreateOutlet(ctx, "side", map[string]any{"defaultLocation": "center"})
	require.NoError(t, err)

	info, err := s.Do(ctx, "o1", domain.ActionOpen, domain.ActionArgs{Split: domain.SplitDown, Activate: true})
	require.NoError(t, err)
	assert.Equal(t, domain.LocationCenter, info.Location)

	layout, err := s.Layout(ctx)
	require.NoError(t, err)
	center, ok := layout.Container(domain.LocationCenter)
	require.True(t, ok)
	require.Len(t, center.Panes, 2)
	assert.Equal(t, layout.ActivePane, center.Panes[1].ID,
		"activate keeps the new pane active")
}

func TestSession_Link(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	doc, err := s.AddItem(ctx, "doc", "")
	require.NoError(t, err)
	_, err = s.CreateOutlet(ctx, "preview", nil)
	require.NoError(t, err)

	info, err := s.Do(ctx, "o1", domain.ActionLink, domain.ActionArgs{Target: doc.ID})
	require.NoError(t, err)
	assert.Equal(t, doc.ID, info.LinkedItemID)

	_, err = s.Do(ctx, "o1", domain.ActionLink, domain.ActionArgs{Target: "item-404"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestSession_Errors(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	_, err := s.Do(ctx, "missing", domain.ActionShow, domain.ActionArgs{})
	assert.ErrorIs(t, err, domain.ErrOutletNotFound)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrOutletNotFound)

	_, err = s.CreateOutlet(ctx, "bad", map[string]any{"defaultLocation": "top"})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = s.CreateOutlet(ctx, "ok", nil)
	require.NoError(t, err)
	_, err = s.Do(ctx, "o1", domain.Action("explode"), domain.ActionArgs{})
	assert.ErrorIs(t, err, domain.ErrUnknownAction)

	_, err = s.Do(ctx, "o1", domain.ActionOpen, domain.ActionArgs{Location: domain.LocationRight})
	assert.ErrorIs(t, err, domain.ErrPlacementPrecondition)

	_, err = s.AddItem(ctx, "doc", domain.SplitDirection("diagonal"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.List(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSession_DeleteAndDestroy(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	_, err := s.CreateOutlet(ctx, "a", nil)
	require.NoError(t, err)
	_, err = s.CreateOutlet(ctx, "b", nil)
	require.NoError(t, err)

	info, err := s.Do(ctx, "o2", domain.ActionDestroy, domain.ActionArgs{})
	require.NoError(t, err)
	assert.Equal(t, domain.StateDestroyed, info.State)

	require.NoError(t, s.Delete(ctx, "o1"))
	assert.ErrorIs(t, s.Delete(ctx, "o1"), domain.ErrOutletNotFound)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "o2", list[0].ID)
}

func TestSession_ConcurrentActions(t *testing.T) {
	ctx := context.Background()
	s := session.New("concurrent")
	_, err := s.AddItem(ctx, "doc", "")
	require.NoError(t, err)

	ids := make([]string, 8)
	for i := range ids {
		info, err := s.CreateOutlet(ctx, fmt.Sprintf("out-%d", i), map[string]any{
			"allowedLocations": []string{"center", "bottom", "right"},
		})
		require.NoError(t, err)
		ids[i] = info.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.Do(ctx, id, domain.ActionOpen, domain.ActionArgs{})
			assert.NoError(t, err)
			for i := 0; i < 5; i++ {
				_, err := s.Do(ctx, id, domain.ActionRelocate, domain.ActionArgs{})
				assert.NoError(t, err)
			}
		}(id)
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	for _, info := range list {
		// open + 5 relocations over three locations ends on center
		assert.Equal(t, domain.LocationCenter, info.Location, info.ID)
	}
}

func TestSession_WithWorkspace(t *testing.T) {
	ws := memory.New(memory.WithDocks(domain.LocationBottom))
	s := newSession(t, session.WithWorkspace(ws))
	ctx := context.Background()

	_, err := s.CreateOutlet(ctx, "x", map[string]any{"allowedLocations": []string{"left"}, "defaultLocation": "left"})
	require.NoError(t, err)
	_, err = s.Do(ctx, "o1", domain.ActionOpen, domain.ActionArgs{})
	assert.ErrorIs(t, err, domain.ErrPlacementPrecondition, "the workspace has no left dock")
}

func TestManager_LoadOrStart(t *testing.T) {
	m := session.NewManager()

	_, err := m.Get("a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	a := m.LoadOrStart("a")
	assert.Same(t, a, m.LoadOrStart("a"))
	m.LoadOrStart("b")
	assert.Equal(t, []string{"a", "b"}, m.List())

	got, err := m.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID())
}

func TestManager_Delete(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager()
	s := m.LoadOrStart("a")
	info, err := s.CreateOutlet(ctx, "x", nil)
	require.NoError(t, err)
	_, err = s.Do(ctx, info.ID, domain.ActionOpen, domain.ActionArgs{})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "a"))
	assert.Empty(t, m.List())
	assert.ErrorIs(t, m.Delete(ctx, "a"), domain.ErrSessionNotFound)
}

func TestManager_JournalsEvents(t *testing.T) {
	ctx := context.Background()
	journal := memory.NewJournal()
	m := session.NewManager(session.WithJournal(journal))
	assert.Same(t, journal, m.Journal())

	err := m.WithLock(ctx, "s1", func(ctx context.Context, s *session.Session) error {
		info, err := s.CreateOutlet(ctx, "x", nil)
		if err != nil {
			return err
		}
		if _, err := s.Do(ctx, info.ID, domain.ActionOpen, domain.ActionArgs{}); err != nil {
			return err
		}
		_, err = s.Do(ctx, info.ID, domain.ActionRelocate, domain.ActionArgs{})
		return err
	})
	require.NoError(t, err)

	events, err := journal.Recent(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventOpen, events[0].Type)
	assert.Equal(t, domain.EventRelocate, events[1].Type)
	assert.Equal(t, domain.LocationCenter, events[1].To)
}

func TestManager_DistributedLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	locker := redis.NewLocker(client, "outlet:")
	m := session.NewManager(session.WithLocker(locker, time.Second))
	ctx := context.Background()

	err := m.WithLock(ctx, "s1", func(ctx context.Context, s *session.Session) error {
		assert.True(t, mr.Exists("outlet:lock:s1"), "lock held while fn runs")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("outlet:lock:s1"), "lock released afterwards")

	// A lock held elsewhere blocks until the context gives up.
	require.NoError(t, mr.Set("outlet:lock:s2", "someone-else"))
	short, cancel := context.WithTimeout(ctx, 120*time.Millisecond)
	defer cancel()
	called := false
	err = m.WithLock(short, "s2", func(context.Context, *session.Session) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
