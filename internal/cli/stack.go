// Package cli wires settings, adapters and sessions for the outlet command.
package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/outlet/internal/config"
	outlethttp "github.com/aretw0/outlet/pkg/adapters/http"
	"github.com/aretw0/outlet/pkg/adapters/memory"
	"github.com/aretw0/outlet/pkg/adapters/redis"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/observability"
	"github.com/aretw0/outlet/pkg/ports"
	"github.com/aretw0/outlet/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Stack is the set of long-lived components shared by the servers.
type Stack struct {
	Sessions *session.Manager
	Streams  *outlethttp.StreamManager
	Registry *prometheus.Registry
	Metrics  *observability.Metrics
	Journal  ports.Journal

	closers []func() error
}

// NewStack builds the session manager described by cfg. With a Redis address
// the journal and the session lock live in Redis; otherwise events are kept
// in memory.
func NewStack(cfg config.Config, logger *slog.Logger) (*Stack, error) {
	st := &Stack{
		Streams:  outlethttp.NewStreamManager(logger),
		Registry: prometheus.NewRegistry(),
	}
	st.Registry.MustRegister(collectors.NewGoCollector())

	metrics, err := observability.NewMetrics(st.Registry)
	if err != nil {
		return nil, err
	}
	st.Metrics = metrics

	opts := []session.ManagerOption{
		session.WithManagerLogger(logger),
		session.WithSessionHooks(st.Streams.Hooks),
		session.WithSessionHooks(func(string) domain.LifecycleHooks { return metrics.Hooks() }),
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, session.WithSessionHooks(func(id string) domain.LifecycleHooks {
			return observability.AuditHooks(logger.With("session_id", id))
		}))
	}

	if cfg.Redis.Enabled() {
		journal := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix+"journal:"),
			redis.WithMaxLen(cfg.Redis.MaxLen),
		)
		st.Journal = journal
		st.closers = append(st.closers, journal.Close)
		opts = append(opts, session.WithLocker(redis.NewLocker(journal.Client(), cfg.Redis.Prefix), cfg.Redis.LockTTL))
		logger.Info("Redis journal enabled", "addr", cfg.Redis.Addr)
	} else {
		st.Journal = memory.NewJournal()
	}
	opts = append(opts, session.WithJournal(st.Journal))

	st.Sessions = session.NewManager(opts...)
	return st, nil
}

// Close releases external connections.
func (st *Stack) Close() error {
	var first error
	for _, c := range st.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
