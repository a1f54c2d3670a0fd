package dexscreener

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ninja0404/pump-signal/internal/model"
)

type pairsResponse struct {
	Pairs []*pairData `json:"pairs"`
	Pair  *pairData   `json:"pair"`
}

func (r *pairsResponse) all() []*pairData {
	out := make([]*pairData, 0, len(r.Pairs)+1)
	for _, p := range r.Pairs {
		if p != nil {
			out = append(out, p)
		}
	}
	if r.Pair != nil {
		out = append(out, r.Pair)
	}
	return out
}

type tokenData struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type liquidityData struct {
	USD json.RawMessage `json:"usd"`
}

type volumeData struct {
	H24 json.RawMessage `json:"h24"`
}

// pairData 数值字段保留原始JSON，格式错误只影响该字段
type pairData struct {
	ChainID        string          `json:"chainId"`
	DexID          string          `json:"dexId"`
	PairAddress    string          `json:"pairAddress"`
	BaseToken      tokenData       `json:"baseToken"`
	QuoteToken     tokenData       `json:"quoteToken"`
	PriceUSD       json.RawMessage `json:"priceUsd"`
	Liquidity      *liquidityData  `json:"liquidity"`
	Volume         *volumeData     `json:"volume"`
	PairCreatedAt  json.RawMessage `json:"pairCreatedAt"`
	CreatorAddress string          `json:"creatorAddress"`
}

func (p *pairData) snapshot() *model.PairSnapshot {
	s := &model.PairSnapshot{
		PairAddress:    p.PairAddress,
		ChainID:        p.ChainID,
		DexID:          p.DexID,
		BaseSymbol:     p.BaseToken.Symbol,
		QuoteSymbol:    p.QuoteToken.Symbol,
		CreatorAddress: p.CreatorAddress,
		PriceUSD:       parseDecimal(p.PriceUSD),
	}
	if p.Liquidity != nil {
		s.LiquidityUSD = parseDecimal(p.Liquidity.USD)
	}
	if p.Volume != nil {
		s.Volume24h = parseDecimal(p.Volume.H24)
	}
	if ms := parseMillis(p.PairCreatedAt); ms > 0 {
		t := time.UnixMilli(ms).UTC()
		s.PairCreatedAt = &t
	}
	return s
}

// parseDecimal 接受数字或数字字符串，其余情况Valid为false
func parseDecimal(raw json.RawMessage) decimal.NullDecimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.NullDecimal{}
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.NullDecimal{}
		}
		text = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// parseMillis 毫秒时间戳，无法解析时返回0
func parseMillis(raw json.RawMessage) int64 {
	ms := parseDecimal(raw)
	if !ms.Valid {
		return 0
	}
	return ms.Decimal.IntPart()
}
