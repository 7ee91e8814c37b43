package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/observability"
	"github.com/aretw0/outlet/pkg/ports"
)

// Manager keeps independent sessions keyed by ID, creating them on demand.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	journal ports.Journal           // Optional event journal
	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	hooks   []func(sessionID string) domain.LifecycleHooks
	logger  *slog.Logger
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithJournal appends every event of every session to journal.
func WithJournal(journal ports.Journal) ManagerOption {
	return func(m *Manager) {
		m.journal = journal
	}
}

// WithLocker enables distributed locking around Manager.WithLock.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		m.locker = locker
		m.lockTTL = ttl
	}
}

// WithSessionHooks attaches the hooks built by fn to the outlets of every
// session. It may be given more than once.
func WithSessionHooks(fn func(sessionID string) domain.LifecycleHooks) ManagerOption {
	return func(m *Manager) {
		m.hooks = append(m.hooks, fn)
	}
}

// WithManagerLogger configures a logger for the Manager and its sessions.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		lockTTL:  30 * time.Second,
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns an existing session.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrSessionNotFound, sessionID)
	}
	return s, nil
}

// LoadOrStart returns the session, creating it when missing.
func (m *Manager) LoadOrStart(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s
	}

	var all []domain.LifecycleHooks
	for _, fn := range m.hooks {
		all = append(all, fn(sessionID))
	}
	if m.journal != nil {
		all = append(all, observability.JournalHooks(m.journal, sessionID, m.logger))
	}
	hooks := domain.ComposeHooks(all...)
	s := New(sessionID,
		WithLogger(m.logger.With("session_id", sessionID)),
		WithLifecycleHooks(hooks),
	)
	m.sessions[sessionID] = s
	m.logger.Info("session started", "session_id", sessionID)
	return s
}

// Delete destroys every outlet of the session and forgets it.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	s, err := m.Get(sessionID)
	if err != nil {
		return err
	}
	outlets, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, o := range outlets {
		if err := s.Delete(ctx, o.ID); err != nil {
			return err
		}
	}

	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

// List returns the known session IDs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Journal returns the configured journal, or nil.
func (m *Manager) Journal() ports.Journal {
	return m.journal
}

// WithLock runs fn on the session (created on demand). When a distributed
// locker is configured, the session is also locked across processes sharing
// the journal.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context, *Session) error) error {
	s := m.LoadOrStart(sessionID)

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx, s)
}
