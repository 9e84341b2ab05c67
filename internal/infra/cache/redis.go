// Package cache holds the optional Redis-backed helpers: event deduplication and the
// distributed scheduler lock.
package cache

import (
	"context"
	"log/slog"
	"time"

	"friendlocator/config"
	"friendlocator/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const dedupeKeyPrefix = "fanout:event:"

// ClientParams holds dependencies for NewClient, injected by Fx
type ClientParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewClient connects to Redis when an address is configured and returns nil otherwise.
func NewClient(params ClientParams) (*redis.Client, error) {
	cfg := params.Config.Redis
	if !cfg.Enabled() {
		params.Logger.Info("Redis not configured")

		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "redis ping")
			}
			params.Logger.Info("Redis connected", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}

// setNXer is the subset of the Redis client used by the deduper.
type setNXer interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// redisDeduper remembers handled (event, trigger) pairs with SETNX.
type redisDeduper struct {
	client setNXer
	ttl    time.Duration
}

// NewRedisDeduper creates an EventDeduper whose entries expire after ttl.
func NewRedisDeduper(client setNXer, ttl time.Duration) service.EventDeduper {
	return &redisDeduper{client: client, ttl: ttl}
}

func (d *redisDeduper) FirstDelivery(ctx context.Context, eventID, trigger string) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupeKeyPrefix+trigger+":"+eventID, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "setnx dedupe key")
	}

	return ok, nil
}

// noopDeduper treats every delivery as the first one.
type noopDeduper struct{}

func (noopDeduper) FirstDelivery(context.Context, string, string) (bool, error) {
	return true, nil
}

// DeduperParams holds dependencies for NewEventDeduper, injected by Fx
type DeduperParams struct {
	fx.In

	Config *config.Config
	Client *redis.Client `optional:"true"`
}

// NewEventDeduper returns the Redis deduper when Redis is available.
func NewEventDeduper(params DeduperParams) service.EventDeduper {
	if params.Client == nil {
		return noopDeduper{}
	}

	return NewRedisDeduper(params.Client, params.Config.Redis.DedupeTTL)
}

// Module provides the Redis FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewClient, NewEventDeduper),
)
