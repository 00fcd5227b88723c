package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vivubot/internal/chatclient"
	"vivubot/internal/destinations"
)

const anonymousOwner = "anonymous"

// client bundles everything one invocation of the tool talks to.
type client struct {
	ctrl   *chatclient.Controller
	view   *chatclient.MapView
	cache  *destinations.Cache
	state  *chatclient.FileStateStore
	rdb    *redis.Client
	logger *zap.Logger
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func newClient(c *cli.Context) (*client, error) {
	ctx := c.Context

	logger, err := newLogger(c.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	state, err := chatclient.NewFileStateStore(c.String("state-dir"))
	if err != nil {
		return nil, err
	}

	owner := c.String("user")
	if owner == "" {
		owner = anonymousOwner
	}

	out := &client{state: state, logger: logger}

	var store destinations.Store
	var broker destinations.Broker
	if addr := c.String("redis"); addr != "" {
		out.rdb = redis.NewClient(&redis.Options{Addr: addr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := out.rdb.Ping(pingCtx).Err(); err != nil {
			out.rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
		}
		store = destinations.NewRedisStore(out.rdb, owner)
		broker = destinations.NewRedisBroker(out.rdb, logger)
	} else {
		fs, err := destinations.NewFileStore(filepath.Join(c.String("state-dir"), "destinations-"+owner+".json"))
		if err != nil {
			return nil, err
		}
		store = fs
		broker = destinations.NewMemoryBroker()
	}

	out.cache, err = destinations.NewCache(ctx, owner, store,
		destinations.WithLogger(logger),
		destinations.WithBroker(broker),
	)
	if err != nil {
		out.Close()
		return nil, err
	}

	apiURL := c.String("api")
	generatorURL := c.String("generator")
	if generatorURL == "" {
		generatorURL = apiURL
	}
	token := c.String("token")

	hc := &http.Client{Timeout: time.Minute}
	sessions := chatclient.NewSessionClient(apiURL, hc, token, logger)
	// generation can take minutes; Ctrl-C cancels it through the context
	generator := chatclient.NewGeneratorClient(generatorURL, &http.Client{}, token)

	out.ctrl = chatclient.NewController(sessions, generator,
		chatclient.WithLogger(logger),
		chatclient.WithProvider(c.String("provider")),
		chatclient.WithUserID(c.String("user")),
		chatclient.WithStateStore(state),
		chatclient.WithDestinations(out.cache, chatclient.NewLookupClient(apiURL, hc)),
	)
	out.view = chatclient.NewMapView(out.ctrl, chatclient.NewDirectionsClient(apiURL, hc), logger)
	return out, nil
}

func (c *client) Close() {
	if c.ctrl != nil {
		c.ctrl.Close()
	}
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil {
			c.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	_ = c.logger.Sync()
}
