package dexscreener

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/internal/source"
)

const pairsBody = `{
  "schemaVersion": "1.0.0",
  "pairs": [
    {
      "chainId": "ethereum",
      "dexId": "uniswap",
      "pairAddress": "0x1234567890abcdef1234567890abcdef12345678",
      "baseToken": {"address": "0xaaa", "name": "Pepe", "symbol": "PEPE"},
      "quoteToken": {"address": "0xbbb", "name": "Wrapped Ether", "symbol": "WETH"},
      "priceUsd": "0.00001234",
      "liquidity": {"usd": 15000.5, "base": 1, "quote": 2},
      "volume": {"h24": 60000, "h6": 100},
      "pairCreatedAt": 1700000000000
    },
    {
      "chainId": "bsc",
      "dexId": "pancakeswap",
      "pairAddress": "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
      "baseToken": {"symbol": "CAKE"},
      "quoteToken": {"symbol": "WBNB"},
      "priceUsd": "not-a-number",
      "liquidity": {"usd": "12.5"},
      "creatorAddress": "0xdev"
    }
  ]
}`

func newTestClient(t *testing.T, h http.Handler, retries int) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := config.Default().Upstream
	cfg.BaseURL = srv.URL
	cfg.MaxRetries = retries
	return NewClient(cfg, WithBackoff(time.Millisecond, 5*time.Millisecond))
}

func TestListNewPairs(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/dex/pairs", r.URL.Path)
		_, _ = w.Write([]byte(pairsBody))
	}), 0)

	pairs, err := c.ListNewPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	p := pairs[0]
	assert.Equal(t, "ethereum", p.ChainID)
	assert.Equal(t, "uniswap", p.DexID)
	assert.Equal(t, "PEPE", p.BaseSymbol)
	assert.Equal(t, "WETH", p.QuoteSymbol)
	require.True(t, p.PriceUSD.Valid)
	assert.True(t, p.PriceUSD.Decimal.Equal(decimal.RequireFromString("0.00001234")))
	assert.True(t, p.LiquidityUSD.Decimal.Equal(decimal.RequireFromString("15000.5")))
	assert.True(t, p.Volume24h.Decimal.Equal(decimal.NewFromInt(60000)))
	require.NotNil(t, p.PairCreatedAt)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), *p.PairCreatedAt)

	// 格式错误只影响该字段
	q := pairs[1]
	assert.False(t, q.PriceUSD.Valid)
	assert.True(t, q.LiquidityUSD.Valid)
	assert.False(t, q.Volume24h.Valid)
	assert.Nil(t, q.PairCreatedAt)
	assert.Equal(t, "0xdev", q.CreatorAddress)
}

func TestSnapshot(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/dex/pairs/ethereum/0x1234567890abcdef1234567890abcdef12345678", r.URL.Path)
		_, _ = w.Write([]byte(pairsBody))
	}), 0)

	p, err := c.Snapshot(context.Background(), "ethereum", "0x1234567890abcdef1234567890abcdef12345678")
	require.NoError(t, err)
	assert.Equal(t, "PEPE", p.BaseSymbol)
}

func TestSnapshotSinglePairShape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pair":{"chainId":"solana","pairAddress":"Abc","priceUsd":"2"}}`))
	}), 0)

	p, err := c.Snapshot(context.Background(), "solana", "Abc")
	require.NoError(t, err)
	assert.True(t, p.PriceUSD.Decimal.Equal(decimal.NewFromInt(2)))
}

func TestSnapshotMissingPair(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pairs":null}`))
	}), 3)

	_, err := c.Snapshot(context.Background(), "ethereum", "0xgone")
	var ue *source.UpstreamFetchError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "0xgone", ue.PairAddress)
	assert.ErrorIs(t, err, source.ErrPairNotFound)
}

func TestRetriesTransientStatus(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(pairsBody))
		}
	}), 2)

	pairs, err := c.ListNewPairs(context.Background())
	require.NoError(t, err)
	assert.Len(t, pairs, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}), 2)

	_, err := c.ListNewPairs(context.Background())
	var ue *source.UpstreamFetchError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusServiceUnavailable, ue.StatusCode)
	assert.Equal(t, opListNewPairs, ue.Op)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientErrorNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}), 2)

	_, err := c.ListNewPairs(context.Background())
	var ue *source.UpstreamFetchError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusNotFound, ue.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMalformedBodyNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"pairs": [`))
	}), 2)

	_, err := c.ListNewPairs(context.Background())
	var ue *source.UpstreamFetchError
	require.True(t, errors.As(err, &ue))
	assert.Zero(t, ue.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
		want  string
	}{
		{`"1.5"`, true, "1.5"},
		{`2500`, true, "2500"},
		{`1e3`, true, "1000"},
		{`null`, false, ""},
		{``, false, ""},
		{`"abc"`, false, ""},
		{`{}`, false, ""},
	}
	for _, tt := range tests {
		got := parseDecimal([]byte(tt.raw))
		assert.Equal(t, tt.valid, got.Valid, tt.raw)
		if tt.valid {
			assert.True(t, got.Decimal.Equal(decimal.RequireFromString(tt.want)), tt.raw)
		}
	}
}
