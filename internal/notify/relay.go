package notify

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vivubot/internal/destinations"
)

// Relay forwards destination events published on Redis to the hub room
// named after the event owner.
type Relay struct {
	client *redis.Client
	hub    *Hub
	logger *zap.Logger
}

func NewRelay(client *redis.Client, hub *Hub, logger *zap.Logger) *Relay {
	return &Relay{client: client, hub: hub, logger: logger}
}

func (r *Relay) Run(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, destinations.ChannelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	r.logger.Info("destination relay subscribed", zap.String("pattern", destinations.ChannelPrefix+"*"))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			owner, ok := OwnerFromChannel(msg.Channel)
			if !ok {
				continue
			}
			r.hub.Broadcast(owner, []byte(msg.Payload))
		}
	}
}

// OwnerFromChannel is the inverse of destinations.Channel.
func OwnerFromChannel(channel string) (string, bool) {
	owner, ok := strings.CutPrefix(channel, destinations.ChannelPrefix)
	if !ok || owner == "" {
		return "", false
	}
	return owner, true
}
