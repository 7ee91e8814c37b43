package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/outlet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunJournalContract runs a suite of tests verifying that a Journal
// implementation keeps events in order and per session.
func RunJournalContract(t *testing.T, journal Journal) {
	ctx := context.Background()
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Append and read back in order", func(t *testing.T) {
		events := []domain.Event{
			{Timestamp: stamp, Type: domain.EventOpen, OutletID: "o1", ItemID: "item-1", To: domain.LocationBottom, PaneID: "pane-2"},
			{Timestamp: stamp.Add(time.Second), Type: domain.EventRelocate, OutletID: "o1", ItemID: "item-1", From: domain.LocationBottom, To: domain.LocationCenter, Split: true},
			{Timestamp: stamp.Add(2 * time.Second), Type: domain.EventHide, OutletID: "o1", ItemID: "item-1", From: domain.LocationCenter, To: domain.LocationBottom, HiddenInCenter: true},
		}
		for _, e := range events {
			require.NoError(t, journal.Append(ctx, "contract-a", e))
		}

		got, err := journal.Recent(ctx, "contract-a", 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i := range events {
			assert.Equal(t, events[i].Type, got[i].Type)
			assert.Equal(t, events[i].From, got[i].From)
			assert.Equal(t, events[i].To, got[i].To)
			assert.True(t, events[i].Timestamp.Equal(got[i].Timestamp))
		}
		assert.True(t, got[1].Split)
		assert.True(t, got[2].HiddenInCenter)

		last, err := journal.Recent(ctx, "contract-a", 1)
		require.NoError(t, err)
		require.Len(t, last, 1)
		assert.Equal(t, domain.EventHide, last[0].Type)
	})

	t.Run("Sessions are isolated", func(t *testing.T) {
		require.NoError(t, journal.Append(ctx, "contract-b", domain.Event{Timestamp: stamp, Type: domain.EventFocus, OutletID: "o2"}))

		got, err := journal.Recent(ctx, "contract-b", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "o2", got[0].OutletID)

		empty, err := journal.Recent(ctx, "contract-missing", 10)
		require.NoError(t, err)
		assert.Empty(t, empty)

		sessions, err := journal.Sessions(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, "contract-a")
		assert.Contains(t, sessions, "contract-b")
	})
}
