package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/internal/repo"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func token(addr string, firstSeen time.Time) *model.Token {
	return &model.Token{
		PairAddress: addr,
		ChainID:     "ethereum",
		BaseSymbol:  "PEPE",
		QuoteSymbol: "WETH",
		FirstSeen:   firstSeen,
	}
}

func obs(price string, at time.Time) *model.PriceObservation {
	return &model.PriceObservation{
		PriceUSD:     decimal.RequireFromString(price),
		Volume24h:    decimal.NewFromInt(10000),
		LiquidityUSD: decimal.NewFromInt(5000),
		ObservedAt:   at,
	}
}

func TestUpsertTokenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.UpsertToken(ctx, token("0xaaa", t0)))
	second := token("0xaaa", t0.Add(time.Hour))
	second.BaseSymbol = "OTHER"
	require.NoError(t, s.UpsertToken(ctx, second))

	n, err := s.CountTokens(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	tokens, err := s.ListRecentTokens(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "PEPE", tokens[0].BaseSymbol)
	assert.True(t, tokens[0].FirstSeen.Equal(t0))
}

func TestAppendForUnknownPair(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.UpsertToken(ctx, token("0xaaa", t0)))
	require.NoError(t, s.AppendPriceObservation(ctx, "0xaaa", obs("1", t0)))

	err := s.AppendPriceObservation(ctx, "0xmissing", obs("1", t0))
	var nf *repo.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "0xmissing", nf.PairAddress)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = s.AppendEvent(ctx, "0xmissing", model.EventKindPump, decimal.NewFromInt(150))
	assert.ErrorIs(t, err, repo.ErrNotFound)

	rows, err := s.LatestTwoPrices(ctx, "0xmissing")
	require.NoError(t, err)
	assert.Empty(t, rows)

	tokens, err := s.CountTokens(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, tokens)
	events, err := s.CountEvents(ctx)
	require.NoError(t, err)
	assert.Zero(t, events)
	last, err := s.LastObservationTimestamp(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(t0))
}

func TestLatestTwoPricesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.UpsertToken(ctx, token("0xaaa", t0)))

	rows, err := s.LatestTwoPrices(ctx, "0xaaa")
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, s.AppendPriceObservation(ctx, "0xaaa", obs("1", t0)))
	rows, err = s.LatestTwoPrices(ctx, "0xaaa")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, s.AppendPriceObservation(ctx, "0xaaa", obs("2", t0.Add(time.Minute))))
	// 同一时间戳按写入顺序
	require.NoError(t, s.AppendPriceObservation(ctx, "0xaaa", obs("3", t0.Add(time.Minute))))

	rows, err = s.LatestTwoPrices(ctx, "0xaaa")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[0].PriceUSD.String())
	assert.Equal(t, "2", rows[1].PriceUSD.String())
}

func TestListRecentTokens(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i, addr := range []string{"0x1", "0x2", "0x3"} {
		require.NoError(t, s.UpsertToken(ctx, token(addr, t0.Add(time.Duration(i)*time.Minute))))
	}

	tokens, err := s.ListRecentTokens(ctx, 2)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "0x3", tokens[0].PairAddress)
	assert.Equal(t, "0x2", tokens[1].PairAddress)

	addrs, err := s.ListTrackedPairAddresses(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"0x1", "0x2", "0x3"}, addrs)

	pairs, err := s.ListTrackedPairs(ctx)
	require.NoError(t, err)
	assert.Len(t, pairs, 3)
	assert.Equal(t, "ethereum", pairs[0].ChainID)
}

func TestAppendEvent(t *testing.T) {
	ctx := context.Background()
	s := NewStore().WithClock(func() time.Time { return t0 })
	require.NoError(t, s.UpsertToken(ctx, token("0xaaa", t0)))

	e, err := s.AppendEvent(ctx, "0xaaa", model.EventKindRug, decimal.NewFromInt(-95))
	require.NoError(t, err)
	assert.NotEmpty(t, e.EventUID)
	assert.Equal(t, model.EventKindRug, e.Kind)
	assert.True(t, e.DetectedAt.Equal(t0))

	n, err := s.CountEvents(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore().UpsertToken(ctx, token("0xaaa", t0))
	var pe *repo.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, context.Canceled)
}
