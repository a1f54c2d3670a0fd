package filter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/internal/model"
)

const (
	evmPair    = "0x1234567890abcdef1234567890abcdef12345678"
	solanaPair = "So11111111111111111111111111111111111111112"
	v4PoolID   = "0x21c67e77068de97969ba93d4aab21826d33ca12bb9f565d8496e8fda8a82ca27"
)

func testConfig() config.FilterConfig {
	return config.FilterConfig{
		Chains:           []string{"ethereum", "bsc", "solana"},
		BlacklistedCoins: []string{"SCAM"},
		BlacklistedDevs:  []string{"0xbad"},
		MinLiquidity:     decimal.NewFromInt(1000),
		MinVolume:        decimal.NewFromInt(5000),
	}
}

func nd(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func goodPair() *model.PairSnapshot {
	return &model.PairSnapshot{
		PairAddress:  evmPair,
		ChainID:      "ethereum",
		BaseSymbol:   "PEPE",
		QuoteSymbol:  "WETH",
		PriceUSD:     nd("0.0001"),
		LiquidityUSD: nd("1500"),
		Volume24h:    nd("6000"),
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.PairSnapshot)
		ok     bool
		reason Reason
	}{
		{"admitted", func(p *model.PairSnapshot) {}, true, ReasonAdmitted},
		{"chain case-insensitive", func(p *model.PairSnapshot) { p.ChainID = "Ethereum" }, true, ReasonAdmitted},
		{"chain not allowed", func(p *model.PairSnapshot) { p.ChainID = "polygon" }, false, ReasonChainNotAllowed},
		{"unknown chain", func(p *model.PairSnapshot) { p.ChainID = "tron"; p.PairAddress = "TXYZ" }, false, ReasonChainNotAllowed},
		{"base blacklisted", func(p *model.PairSnapshot) { p.BaseSymbol = "SCAM" }, false, ReasonBlacklistedSymbol},
		{"quote blacklisted lowercase", func(p *model.PairSnapshot) { p.QuoteSymbol = "scam" }, false, ReasonBlacklistedSymbol},
		{"creator blacklisted", func(p *model.PairSnapshot) { p.CreatorAddress = "0xBAD" }, false, ReasonBlacklistedCreator},
		{"liquidity at minimum", func(p *model.PairSnapshot) { p.LiquidityUSD = nd("1000") }, true, ReasonAdmitted},
		{"liquidity below", func(p *model.PairSnapshot) { p.LiquidityUSD = nd("999.99") }, false, ReasonLowLiquidity},
		{"liquidity missing", func(p *model.PairSnapshot) { p.LiquidityUSD = decimal.NullDecimal{} }, false, ReasonLowLiquidity},
		{"volume at minimum", func(p *model.PairSnapshot) { p.Volume24h = nd("5000") }, true, ReasonAdmitted},
		{"volume below", func(p *model.PairSnapshot) { p.Volume24h = nd("4999") }, false, ReasonLowVolume},
		{"volume missing", func(p *model.PairSnapshot) { p.Volume24h = decimal.NullDecimal{} }, false, ReasonLowVolume},
		{"empty address", func(p *model.PairSnapshot) { p.PairAddress = "" }, false, ReasonInvalidPair},
		{"malformed evm address", func(p *model.PairSnapshot) { p.PairAddress = "0x1234" }, false, ReasonInvalidPair},
		{"uniswap v4 pool id", func(p *model.PairSnapshot) { p.PairAddress = v4PoolID }, true, ReasonAdmitted},
		{"evm id with 50 hex digits", func(p *model.PairSnapshot) { p.PairAddress = v4PoolID[:52] }, false, ReasonInvalidPair},
		{"solana address", func(p *model.PairSnapshot) { p.ChainID = "solana"; p.PairAddress = solanaPair }, true, ReasonAdmitted},
		{"malformed solana address", func(p *model.PairSnapshot) { p.ChainID = "solana"; p.PairAddress = "0OIl" }, false, ReasonInvalidPair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := goodPair()
			tt.mutate(p)
			ok, reason := Check(p, testConfig())
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
			assert.Equal(t, tt.ok, Admit(p, testConfig()))
		})
	}
}

func TestCheckNil(t *testing.T) {
	ok, reason := Check(nil, testConfig())
	assert.False(t, ok)
	assert.Equal(t, ReasonInvalidPair, reason)
}

func TestCheckDoesNotMutate(t *testing.T) {
	cfg := testConfig()
	p := goodPair()
	before := *p
	Check(p, cfg)
	assert.Equal(t, before, *p)
	assert.Equal(t, testConfig(), cfg)
}

func TestEmptyChainsRejectsAll(t *testing.T) {
	cfg := testConfig()
	cfg.Chains = nil
	assert.False(t, Admit(goodPair(), cfg))
}
