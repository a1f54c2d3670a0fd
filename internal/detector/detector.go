package detector

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/internal/detector/condition"
	"github.com/ninja0404/pump-signal/internal/model"
)

// PriceReader 读取最近两次采样，新的在前
type PriceReader interface {
	LatestTwoPrices(ctx context.Context, pairAddress string) ([]*model.PriceObservation, error)
}

// Thresholds 百分比阈值，pump为正，rug为负
type Thresholds struct {
	Pump decimal.Decimal
	Rug  decimal.Decimal
}

func ThresholdsFrom(cfg config.FilterConfig) Thresholds {
	return Thresholds{Pump: cfg.PumpThreshold, Rug: cfg.RugThreshold}
}

// Classification 一次分类结果
type Classification struct {
	PairAddress   string
	Kind          model.EventKind
	PercentChange decimal.Decimal
	Current       decimal.Decimal
	Previous      decimal.Decimal
}

// Rule 命中条件即产生对应事件
type Rule struct {
	Kind      model.EventKind
	Condition condition.Condition
}

// Detector 按声明顺序匹配规则，第一个命中的生效
type Detector struct {
	rules []Rule
}

// NewDetector 阈值重叠时以拉盘为准，砸盘规则显式排除拉盘区间
func NewDetector(th Thresholds) *Detector {
	pump := condition.PercentChange(condition.GTE, th.Pump)
	return &Detector{
		rules: []Rule{
			{
				Kind:      model.EventKindPump,
				Condition: pump,
			},
			{
				Kind:      model.EventKindRug,
				Condition: condition.All(condition.PercentChange(condition.LTE, th.Rug), condition.Not(pump)),
			},
		},
	}
}

func (d *Detector) Rules() []Rule {
	return d.rules
}

// Match 两次采样的纯函数判定，上一次价格为0时不判定
func (d *Detector) Match(current, previous decimal.Decimal) (model.EventKind, decimal.Decimal, bool) {
	sample, ok := condition.NewSample(current, previous)
	if !ok {
		return "", decimal.Zero, false
	}
	for _, rule := range d.rules {
		if rule.Condition.Match(sample) {
			return rule.Kind, sample.PercentChange, true
		}
	}
	return "", sample.PercentChange, false
}

// Classify 读取最近两次采样并分类，不足两次或未命中时返回nil
func (d *Detector) Classify(ctx context.Context, pairAddress string, reader PriceReader) (*Classification, error) {
	prices, err := reader.LatestTwoPrices(ctx, pairAddress)
	if err != nil {
		return nil, err
	}
	if len(prices) < 2 {
		return nil, nil
	}

	curr, prev := prices[0].PriceUSD, prices[1].PriceUSD
	kind, pct, ok := d.Match(curr, prev)
	if !ok {
		return nil, nil
	}
	return &Classification{
		PairAddress:   pairAddress,
		Kind:          kind,
		PercentChange: pct,
		Current:       curr,
		Previous:      prev,
	}, nil
}
