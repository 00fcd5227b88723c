package chatclient

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vivubot/internal/destinations"
	"vivubot/pkg/utils"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithProvider sets the ai_provider hint sent to the generator.
func WithProvider(p string) Option {
	return func(c *Controller) {
		c.provider = utils.NormalizeProvider(p)
	}
}

// WithUserID attaches sessions and preferences to a user account.
func WithUserID(id string) Option {
	return func(c *Controller) {
		c.userID = id
	}
}

// WithStateStore sets where the active session id is remembered.
func WithStateStore(s StateStore) Option {
	return func(c *Controller) {
		if s != nil {
			c.state = s
		}
	}
}

// WithDestinations records places from each itinerary into cache, enriching
// them through lookup when it is non-nil.
func WithDestinations(cache *destinations.Cache, lookup Lookup) Option {
	return func(c *Controller) {
		c.destinations = cache
		c.lookup = lookup
	}
}

// WithIDGenerator replaces uuid session ids, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func defaultID() string {
	return uuid.NewString()
}
