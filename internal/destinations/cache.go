package destinations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Cache is the in-process view of an owner's destination list. Records are
// unique by name and kept in first-seen order.
type Cache struct {
	mu      sync.Mutex
	owner   string
	store   Store
	broker  Broker
	logger  *zap.Logger
	records []Record
	seen    map[string]struct{}
}

type Option func(*Cache)

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithBroker(b Broker) Option {
	return func(c *Cache) {
		if b != nil {
			c.broker = b
		}
	}
}

// NewCache loads the owner's list from store. Without WithBroker an
// in-process MemoryBroker is used.
func NewCache(ctx context.Context, owner string, store Store, opts ...Option) (*Cache, error) {
	c := &Cache{
		owner:  owner,
		store:  store,
		broker: NewMemoryBroker(),
		logger: zap.NewNop(),
		seen:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	records, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load destinations: %w", err)
	}
	for _, r := range records {
		if _, dup := c.seen[r.Key()]; dup {
			continue
		}
		c.seen[r.Key()] = struct{}{}
		c.records = append(c.records, r)
	}
	return c, nil
}

func (c *Cache) Owner() string { return c.owner }

// Record inserts rec unless a record with the same name exists. It reports
// whether rec was new.
func (c *Cache) Record(ctx context.Context, rec Record) (bool, error) {
	added, err := c.RecordMany(ctx, []Record{rec})
	return len(added) > 0, err
}

// RecordMany inserts the unseen records in order, persisting after each
// insert, and publishes one event for the batch. It returns what was added.
func (c *Cache) RecordMany(ctx context.Context, recs []Record) ([]Record, error) {
	c.mu.Lock()
	var added []Record
	var persistErr error
	for _, rec := range recs {
		rec = rec.Normalize()
		if rec.Name == "" {
			continue
		}
		if _, dup := c.seen[rec.Key()]; dup {
			continue
		}
		if err := c.store.Add(ctx, rec); err != nil {
			persistErr = fmt.Errorf("persist destination %q: %w", rec.Name, err)
			break
		}
		c.seen[rec.Key()] = struct{}{}
		c.records = append(c.records, rec)
		added = append(added, rec)
	}
	c.mu.Unlock()

	if len(added) > 0 {
		ev := Event{Owner: c.owner, Records: added, At: time.Now().Unix()}
		if err := c.broker.Publish(ctx, ev); err != nil {
			c.logger.Warn("failed to publish destination event", zap.String("owner", c.owner), zap.Error(err))
		}
	}
	return added, persistErr
}

// List returns a copy of the records in first-seen order.
func (c *Cache) List() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Record(nil), c.records...)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Clear wipes the list both in memory and in the store.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear destinations: %w", err)
	}
	c.records = nil
	c.seen = make(map[string]struct{})
	return nil
}

// Subscribe returns events for this cache's owner until cancel is called.
func (c *Cache) Subscribe(ctx context.Context, buffer int) (<-chan Event, func(), error) {
	return c.broker.Subscribe(ctx, c.owner, buffer)
}
