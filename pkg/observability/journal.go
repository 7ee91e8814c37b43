package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/ports"
)

// JournalHooks appends every event to journal under sessionID. Hooks cannot
// fail, so append errors are logged and dropped.
func JournalHooks(journal ports.Journal, sessionID string, logger *slog.Logger) domain.LifecycleHooks {
	appendEvent := func(e *domain.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := journal.Append(ctx, sessionID, *e); err != nil {
			logger.Warn("Failed to journal outlet event",
				"session_id", sessionID,
				"type", e.Type,
				"err", err,
			)
		}
	}
	return domain.LifecycleHooks{
		OnPlace:   appendEvent,
		OnShow:    appendEvent,
		OnHide:    appendEvent,
		OnFocus:   appendEvent,
		OnLink:    appendEvent,
		OnDestroy: appendEvent,
	}
}
