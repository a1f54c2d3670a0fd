package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PairSnapshot 上游行情接口返回的交易对快照
// 数值字段可能缺失或格式错误，此时Valid为false
type PairSnapshot struct {
	PairAddress    string
	ChainID        string
	DexID          string
	BaseSymbol     string
	QuoteSymbol    string
	CreatorAddress string
	PairCreatedAt  *time.Time

	PriceUSD     decimal.NullDecimal
	LiquidityUSD decimal.NullDecimal
	Volume24h    decimal.NullDecimal
}

// Token 转为待写入的Token
func (p *PairSnapshot) Token(firstSeen time.Time) *Token {
	return &Token{
		PairAddress:    p.PairAddress,
		ChainID:        p.ChainID,
		BaseSymbol:     p.BaseSymbol,
		QuoteSymbol:    p.QuoteSymbol,
		CreatorAddress: p.CreatorAddress,
		PairCreatedAt:  p.PairCreatedAt,
		FirstSeen:      firstSeen,
	}
}

// Observation 转为价格采样，没有有效价格时返回false
func (p *PairSnapshot) Observation(at time.Time) (*PriceObservation, bool) {
	if !p.PriceUSD.Valid {
		return nil, false
	}
	return &PriceObservation{
		PairAddress:  p.PairAddress,
		PriceUSD:     p.PriceUSD.Decimal,
		Volume24h:    p.Volume24h.Decimal,
		LiquidityUSD: p.LiquidityUSD.Decimal,
		ObservedAt:   at,
	}, true
}
