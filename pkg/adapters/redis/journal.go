package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/outlet/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Journal implements ports.Journal on Redis streams: one stream per session
// plus a sorted set indexing sessions by last activity.
type Journal struct {
	client *backend.Client
	prefix string
	maxLen int64
}

// Option configures a Journal.
type Option func(*Journal)

// WithPrefix sets the key prefix (default "outlet:journal:").
func WithPrefix(prefix string) Option {
	return func(j *Journal) {
		j.prefix = prefix
	}
}

// WithMaxLen caps each stream at roughly n entries (XADD MAXLEN ~).
func WithMaxLen(n int64) Option {
	return func(j *Journal) {
		j.maxLen = n
	}
}

// New creates a journal connected to a Redis server.
func New(address, password string, db int, opts ...Option) *Journal {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a journal from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client: client,
		prefix: "outlet:journal:",
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) key(sessionID string) string {
	return j.prefix + sessionID
}

func (j *Journal) indexKey() string {
	return j.prefix + "index"
}

// Append adds the event to the session stream.
func (j *Journal) Append(ctx context.Context, sessionID string, e domain.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &backend.XAddArgs{
		Stream: j.key(sessionID),
		Values: map[string]any{"event": string(data)},
	}
	if j.maxLen > 0 {
		args.MaxLen = j.maxLen
		args.Approx = true
	}

	pipe := j.client.Pipeline()
	pipe.XAdd(ctx, args)
	pipe.ZAdd(ctx, j.indexKey(), backend.Z{
		Score:  float64(time.Now().Unix()),
		Member: sessionID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis stream: %w", err)
	}
	return nil
}

// Recent returns at most n events (all when n <= 0), oldest first.
func (j *Journal) Recent(ctx context.Context, sessionID string, n int) ([]domain.Event, error) {
	var (
		msgs []backend.XMessage
		err  error
	)
	if n > 0 {
		msgs, err = j.client.XRevRangeN(ctx, j.key(sessionID), "+", "-", int64(n)).Result()
		slices.Reverse(msgs)
	} else {
		msgs, err = j.client.XRange(ctx, j.key(sessionID), "-", "+").Result()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read redis stream: %w", err)
	}

	events := make([]domain.Event, 0, len(msgs))
	for _, msg := range msgs {
		raw, ok := msg.Values["event"].(string)
		if !ok {
			return nil, fmt.Errorf("stream entry %s has no event field", msg.ID)
		}
		var e domain.Event
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event %s: %w", msg.ID, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Sessions lists journaled sessions, least recently active first.
func (j *Journal) Sessions(ctx context.Context) ([]string, error) {
	ids, err := j.client.ZRange(ctx, j.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (j *Journal) Close() error {
	return j.client.Close()
}

// Client returns the underlying client, e.g. to share it with a Locker.
func (j *Journal) Client() *backend.Client {
	return j.client
}
