package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ninja0404/pump-signal/internal/model"
)

const DefaultRecentLimit = 20

// Store 交易对、价格采样和事件的持久化
// 每次调用是一个独立的短事务
type Store interface {
	// UpsertToken 不存在则插入，已存在时什么都不做
	UpsertToken(ctx context.Context, token *model.Token) error

	// AppendPriceObservation 追加价格采样，交易对未跟踪时返回NotFoundError
	AppendPriceObservation(ctx context.Context, pairAddress string, obs *model.PriceObservation) error

	// AppendEvent 追加检测事件，返回写入后的记录
	AppendEvent(ctx context.Context, pairAddress string, kind model.EventKind, percentChange decimal.Decimal) (*model.Event, error)

	// LatestTwoPrices 最近的0到2条采样，新的在前
	LatestTwoPrices(ctx context.Context, pairAddress string) ([]*model.PriceObservation, error)

	ListTrackedPairAddresses(ctx context.Context) ([]string, error)
	ListTrackedPairs(ctx context.Context) ([]model.TrackedPair, error)

	// ListRecentTokens 按first_seen倒序，limit<=0时取默认值
	ListRecentTokens(ctx context.Context, limit int) ([]*model.Token, error)

	CountTokens(ctx context.Context) (int64, error)
	CountEvents(ctx context.Context) (int64, error)

	// LastObservationTimestamp 没有任何采样时返回nil
	LastObservationTimestamp(ctx context.Context) (*time.Time, error)

	Close() error
}
