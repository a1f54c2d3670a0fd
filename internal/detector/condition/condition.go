package condition

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Op 阈值比较方式
type Op string

const (
	GTE Op = ">="
	GT  Op = ">"
	LTE Op = "<="
	LT  Op = "<"
	EQ  Op = "=="
)

// Compare 未知操作符视为不满足
func (o Op) Compare(value, threshold decimal.Decimal) bool {
	switch o {
	case GTE:
		return value.GreaterThanOrEqual(threshold)
	case GT:
		return value.GreaterThan(threshold)
	case LTE:
		return value.LessThanOrEqual(threshold)
	case LT:
		return value.LessThan(threshold)
	case EQ:
		return value.Equal(threshold)
	default:
		return false
	}
}

// Sample 同一交易对相邻两次采样
type Sample struct {
	Current       decimal.Decimal
	Previous      decimal.Decimal
	PercentChange decimal.Decimal
}

// NewSample 上一次价格为0时无法计算涨跌幅
func NewSample(current, previous decimal.Decimal) (Sample, bool) {
	if previous.IsZero() {
		return Sample{}, false
	}
	return Sample{
		Current:       current,
		Previous:      previous,
		PercentChange: current.Sub(previous).Div(previous).Mul(hundred),
	}, true
}

// Condition 对一次采样的判定
type Condition interface {
	Match(s Sample) bool
	String() string
}

type percentChange struct {
	op        Op
	threshold decimal.Decimal
}

// PercentChange 涨跌幅与百分比阈值比较
func PercentChange(op Op, threshold decimal.Decimal) Condition {
	return percentChange{op: op, threshold: threshold}
}

func (c percentChange) Match(s Sample) bool {
	return c.op.Compare(s.PercentChange, c.threshold)
}

func (c percentChange) String() string {
	return fmt.Sprintf("change %s %s%%", c.op, c.threshold)
}
