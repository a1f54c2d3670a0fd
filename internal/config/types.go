package config

import (
	"encoding/json"
	"fmt"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/ninja0404/pump-signal/pkg/database/gormdb"
	"github.com/ninja0404/pump-signal/pkg/logger"
	"github.com/ninja0404/pump-signal/pkg/mq/kafka"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Scanner  ScannerConfig  `json:"scanner"`
	Upstream UpstreamConfig `json:"upstream"`
	Database gormdb.Config  `json:"database"`
	Telegram TelegramConfig `json:"telegram"`
	Feishu   FeishuConfig   `json:"feishu"`
	Kafka    KafkaConfig    `json:"kafka"`
	Dedup    DedupConfig    `json:"dedup"`
	Redis    RedisConfig    `json:"redis"`
	Report   ReportConfig   `json:"report"`
	Sentry   SentryConfig   `json:"sentry"`
	Logger   logger.Config  `json:"logger"`
}

// ScannerConfig 过滤与检测参数，对应配置文件 scanner 段
type ScannerConfig struct {
	PumpThreshold    float64  `json:"pump_threshold"` // 百分比
	RugThreshold     float64  `json:"rug_threshold"`  // 百分比，负数
	MinLiquidity     float64  `json:"min_liquidity"`  // USD
	MinVolume        float64  `json:"min_volume"`     // USD
	BlacklistedCoins []string `json:"blacklisted_coins"`
	BlacklistedDevs  []string `json:"blacklisted_devs"`
	Chains           []string `json:"chains"`
	ScanInterval     int      `json:"scan_interval"` // 秒
	ErrorBackoff     int      `json:"error_backoff"` // 秒
}

// UpstreamConfig 行情接口
type UpstreamConfig struct {
	BaseURL      string   `json:"base_url"`
	NewPairsPath string   `json:"new_pairs_path"`
	PairPath     string   `json:"pair_path"`
	Timeout      Duration `json:"timeout"`
	MaxRetries   int      `json:"max_retries"`
}

type TelegramConfig struct {
	Token  string `json:"token"`
	ChatID int64  `json:"chat_id"`
}

// Enabled token和chat_id都配置时才发送告警
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

type FeishuConfig struct {
	WebhookURL string `json:"webhook_url"`
}

type KafkaConfig struct {
	Brokers  []string                  `json:"brokers"`
	Topic    string                    `json:"topic"`
	Producer kafka.KafkaProducerConfig `json:"producer"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

// DedupConfig 重复事件抑制策略，cooldown为0表示不抑制
type DedupConfig struct {
	Cooldown Duration `json:"cooldown"`
	Backend  string   `json:"backend"` // memory | redis
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// ReportConfig 定时汇总，cron为空表示关闭
type ReportConfig struct {
	Cron string `json:"cron"`
}

type SentryConfig struct {
	DSN         string `json:"dsn"`
	Environment string `json:"environment"`
}

// Duration 支持 "10s"、"1d12h" 形式或秒数
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*d = 0
	case float64:
		*d = Duration(time.Duration(val * float64(time.Second)))
	case string:
		parsed, err := str2duration.ParseDuration(val)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}
