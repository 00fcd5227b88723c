package destinations

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ChannelPrefix namespaces the per-owner redis channels.
const ChannelPrefix = "vivu:destinations:events:"

// Channel returns the pub/sub channel for owner.
func Channel(owner string) string {
	return ChannelPrefix + owner
}

// Event announces records newly added to an owner's list.
type Event struct {
	Owner   string   `json:"owner"`
	Records []Record `json:"records"`
	At      int64    `json:"at"`
}

// Broker fans events out to the views watching an owner. Delivery is at most
// once; a slow subscriber misses events instead of blocking the publisher.
type Broker interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(ctx context.Context, owner string, buffer int) (<-chan Event, func(), error)
}

// MemoryBroker delivers events inside one process.
type MemoryBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan Event
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[int]chan Event)}
}

func (b *MemoryBroker) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[ev.Owner] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, owner string, buffer int) (<-chan Event, func(), error) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.subs[owner] == nil {
		b.subs[owner] = make(map[int]chan Event)
	}
	b.subs[owner][id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[owner], id)
			if len(b.subs[owner]) == 0 {
				delete(b.subs, owner)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}

// RedisBroker publishes events on Channel(owner) so views in other processes
// (and the websocket relay) see them.
type RedisBroker struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisBroker(client *redis.Client, logger *zap.Logger) *RedisBroker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBroker{client: client, logger: logger}
}

func (b *RedisBroker) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, Channel(ev.Owner), payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, owner string, buffer int) (<-chan Event, func(), error) {
	if buffer < 1 {
		buffer = 1
	}
	pubsub := b.client.Subscribe(ctx, Channel(owner))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan Event, buffer)
	done := make(chan struct{})
	go func() {
		defer close(out)
		msgs := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.logger.Warn("dropping undecodable destination event", zap.Error(err))
					continue
				}
				select {
				case out <- ev:
				default:
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}
	return out, cancel, nil
}
