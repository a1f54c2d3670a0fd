package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilterConfig 启动时构建一次，按值传递，运行期间不再修改
type FilterConfig struct {
	Chains           []string
	BlacklistedCoins []string
	BlacklistedDevs  []string
	MinLiquidity     decimal.Decimal
	MinVolume        decimal.Decimal
	PumpThreshold    decimal.Decimal
	RugThreshold     decimal.Decimal
	ScanInterval     time.Duration
}

// FilterConfig 由scanner段生成不可变的过滤配置，切片会被复制
func (s ScannerConfig) FilterConfig() FilterConfig {
	return FilterConfig{
		Chains:           append([]string(nil), s.Chains...),
		BlacklistedCoins: append([]string(nil), s.BlacklistedCoins...),
		BlacklistedDevs:  append([]string(nil), s.BlacklistedDevs...),
		MinLiquidity:     decimal.NewFromFloat(s.MinLiquidity),
		MinVolume:        decimal.NewFromFloat(s.MinVolume),
		PumpThreshold:    decimal.NewFromFloat(s.PumpThreshold),
		RugThreshold:     decimal.NewFromFloat(s.RugThreshold),
		ScanInterval:     time.Duration(s.ScanInterval) * time.Second,
	}
}

// ErrorBackoffDuration 周期失败后的等待时间
func (s ScannerConfig) ErrorBackoffDuration() time.Duration {
	return time.Duration(s.ErrorBackoff) * time.Second
}
