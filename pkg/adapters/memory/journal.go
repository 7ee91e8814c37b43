package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/outlet/pkg/domain"
)

// Journal implements ports.Journal in process memory.
type Journal struct {
	mu      sync.RWMutex
	streams map[string][]domain.Event
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{streams: make(map[string][]domain.Event)}
}

// Append adds an event to the session stream.
func (j *Journal) Append(ctx context.Context, sessionID string, e domain.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.streams[sessionID] = append(j.streams[sessionID], e)
	return nil
}

// Recent returns at most n events, oldest first.
func (j *Journal) Recent(ctx context.Context, sessionID string, n int) ([]domain.Event, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	stream := j.streams[sessionID]
	if n > 0 && len(stream) > n {
		stream = stream[len(stream)-n:]
	}
	return slices.Clone(stream), nil
}

// Sessions lists sessions with events, sorted.
func (j *Journal) Sessions(ctx context.Context) ([]string, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	ids := make([]string, 0, len(j.streams))
	for id := range j.streams {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
