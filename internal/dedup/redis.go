package dedup

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ninja0404/pump-signal/internal/model"
)

const redisKeyPrefix = "pump-signal:dedup:"

// RedisGuard 多实例共享的冷却记录，依赖SET NX与过期时间
type RedisGuard struct {
	client   redis.UniversalClient
	cooldown time.Duration
	prefix   string
}

func NewRedisGuard(client redis.UniversalClient, cooldown time.Duration) *RedisGuard {
	return &RedisGuard{
		client:   client,
		cooldown: cooldown,
		prefix:   redisKeyPrefix,
	}
}

func (g *RedisGuard) Allow(ctx context.Context, pairAddress string, kind model.EventKind) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+signalKey(pairAddress, kind), time.Now().Unix(), g.cooldown).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis setnx")
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, pairAddress string, kind model.EventKind) error {
	if err := g.client.Del(ctx, g.prefix+signalKey(pairAddress, kind)).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

func (g *RedisGuard) GetType() string {
	return "redis"
}

func (g *RedisGuard) Close() error {
	return g.client.Close()
}
