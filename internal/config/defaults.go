package config

import (
	"time"

	"github.com/ninja0404/pump-signal/pkg/database/gormdb"
	"github.com/ninja0404/pump-signal/pkg/logger"
)

const (
	DriverMemory = "memory"

	DedupBackendMemory = "memory"
	DedupBackendRedis  = "redis"
)

// Default 默认配置，配置文件缺失时按此落盘
func Default() *AppConfig {
	return &AppConfig{
		Scanner: ScannerConfig{
			PumpThreshold:    100,
			RugThreshold:     -90,
			MinLiquidity:     1000,
			MinVolume:        5000,
			BlacklistedCoins: []string{},
			BlacklistedDevs:  []string{},
			Chains:           []string{"ethereum", "bsc", "polygon"},
			ScanInterval:     300,
			ErrorBackoff:     60,
		},
		Upstream: UpstreamConfig{
			BaseURL:      "https://api.dexscreener.com",
			NewPairsPath: "/latest/dex/pairs",
			PairPath:     "/latest/dex/pairs/{chainId}/{pairAddress}",
			Timeout:      Duration(10 * time.Second),
			MaxRetries:   2,
		},
		Database: gormdb.Config{
			Driver:   gormdb.DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			User:     "dexbot_user",
			Database: "dexbot",
			LogLevel: "warn",
		},
		Kafka: KafkaConfig{
			Brokers: []string{},
		},
		Dedup: DedupConfig{
			Backend: DedupBackendMemory,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Logger: *logger.DefaultConfig(),
	}
}
