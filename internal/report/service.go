package report

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/internal/repo"
)

const (
	// ChatTokenLimit 聊天命令展示的交易对数量
	ChatTokenLimit = 10

	neverText  = "Never"
	timeLayout = "2006-01-02 15:04:05"
)

// Reader 报表用到的只读查询
type Reader interface {
	CountTokens(ctx context.Context) (int64, error)
	CountEvents(ctx context.Context) (int64, error)
	LastObservationTimestamp(ctx context.Context) (*time.Time, error)
	ListRecentTokens(ctx context.Context, limit int) ([]*model.Token, error)
}

var _ Reader = (repo.Store)(nil)

type Stats struct {
	TokenCount int64
	EventCount int64
	LastUpdate *time.Time
}

// LastUpdateText 从未采样时为Never
func (s Stats) LastUpdateText() string {
	if s.LastUpdate == nil {
		return neverText
	}
	return s.LastUpdate.UTC().Format(timeLayout)
}

// KV 有序的配置项
type KV struct {
	Key   string
	Value string
}

// Service 统计、最近交易对和配置摘要，所有查询只读
type Service struct {
	store           Reader
	cfg             config.FilterConfig
	telegramEnabled bool
}

func NewService(store Reader, cfg config.FilterConfig, telegramEnabled bool) *Service {
	return &Service{store: store, cfg: cfg, telegramEnabled: telegramEnabled}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var err error
	if stats.TokenCount, err = s.store.CountTokens(ctx); err != nil {
		return Stats{}, err
	}
	if stats.EventCount, err = s.store.CountEvents(ctx); err != nil {
		return Stats{}, err
	}
	if stats.LastUpdate, err = s.store.LastObservationTimestamp(ctx); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// RecentTokens limit<=0时使用存储层默认值
func (s *Service) RecentTokens(ctx context.Context, limit int) ([]*model.Token, error) {
	return s.store.ListRecentTokens(ctx, limit)
}

func (s *Service) ConfigSummary() []KV {
	alerts := "Disabled"
	if s.telegramEnabled {
		alerts = "Enabled"
	}
	return []KV{
		{"Chains", strings.Join(s.cfg.Chains, ", ")},
		{"Pump Threshold", s.cfg.PumpThreshold.String() + "%"},
		{"Rug Threshold", s.cfg.RugThreshold.String() + "%"},
		{"Min Liquidity", "$" + s.cfg.MinLiquidity.String()},
		{"Min Volume", "$" + s.cfg.MinVolume.String()},
		{"Blacklisted Coins", strconv.Itoa(len(s.cfg.BlacklistedCoins))},
		{"Telegram Alerts", alerts},
	}
}
