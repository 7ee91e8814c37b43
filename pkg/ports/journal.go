package ports

import (
	"context"
	"time"

	"github.com/aretw0/outlet/pkg/domain"
)

// Journal is an append-only log of placement events, one stream per session.
type Journal interface {
	Append(ctx context.Context, sessionID string, e domain.Event) error
	// Recent returns at most n events, oldest first.
	Recent(ctx context.Context, sessionID string, n int) ([]domain.Event, error)
	// Sessions lists sessions with at least one event.
	Sessions(ctx context.Context) ([]string, error)
}

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serialises access to a session across processes that
// share a journal.
type DistributedLocker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
