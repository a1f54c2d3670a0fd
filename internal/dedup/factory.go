package dedup

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/pkg/logger"
)

// New 按配置创建Guard，cooldown为0时不抑制
func New(ctx context.Context, cfg config.DedupConfig, redisCfg config.RedisConfig) (Guard, error) {
	cooldown := cfg.Cooldown.Std()
	if cooldown <= 0 {
		return NewNop(), nil
	}

	switch cfg.Backend {
	case config.DedupBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrapf(err, "connect redis %s", redisCfg.Addr)
		}
		logger.Info("✅ Redis去重已启用",
			logger.String("addr", redisCfg.Addr),
			logger.Duration("cooldown", cooldown))
		return NewRedisGuard(client, cooldown), nil
	default:
		logger.Info("✅ 内存去重已启用", logger.Duration("cooldown", cooldown))
		return NewMemoryGuard(cooldown), nil
	}
}
