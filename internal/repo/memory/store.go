package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/internal/repo"
)

// Store 进程内Store，用于dry-run和测试
type Store struct {
	mu     sync.RWMutex
	tokens map[string]*model.Token
	prices map[string][]*model.PriceObservation
	events []*model.Event
	lastID int64
	now    func() time.Time
}

var _ repo.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		tokens: make(map[string]*model.Token),
		prices: make(map[string][]*model.PriceObservation),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock 替换事件时间来源
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) UpsertToken(ctx context.Context, token *model.Token) error {
	if err := ctx.Err(); err != nil {
		return &repo.PersistenceError{Op: "upsert_token", PairAddress: token.PairAddress, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[token.PairAddress]; ok {
		return nil
	}
	t := *token
	t.Prices, t.Events = nil, nil
	s.tokens[token.PairAddress] = &t
	return nil
}

func (s *Store) AppendPriceObservation(ctx context.Context, pairAddress string, obs *model.PriceObservation) error {
	if err := ctx.Err(); err != nil {
		return &repo.PersistenceError{Op: "append_price_observation", PairAddress: pairAddress, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[pairAddress]; !ok {
		return &repo.NotFoundError{PairAddress: pairAddress}
	}
	s.lastID++
	obs.ID = s.lastID
	obs.PairAddress = pairAddress
	o := *obs
	s.prices[pairAddress] = append(s.prices[pairAddress], &o)
	return nil
}

func (s *Store) AppendEvent(ctx context.Context, pairAddress string, kind model.EventKind, percentChange decimal.Decimal) (*model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, &repo.PersistenceError{Op: "append_event", PairAddress: pairAddress, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[pairAddress]; !ok {
		return nil, &repo.NotFoundError{PairAddress: pairAddress}
	}
	s.lastID++
	e := &model.Event{
		ID:          s.lastID,
		EventUID:    uuid.NewString(),
		PairAddress: pairAddress,
		Kind:        kind,
		PriceChange: percentChange,
		DetectedAt:  s.now(),
	}
	s.events = append(s.events, e)

	out := *e
	return &out, nil
}

func (s *Store) LatestTwoPrices(ctx context.Context, pairAddress string) ([]*model.PriceObservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*model.PriceObservation, 0, len(s.prices[pairAddress]))
	for _, o := range s.prices[pairAddress] {
		c := *o
		rows = append(rows, &c)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].ObservedAt.Equal(rows[j].ObservedAt) {
			return rows[i].ObservedAt.After(rows[j].ObservedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	if len(rows) > 2 {
		rows = rows[:2]
	}
	return rows, nil
}

func (s *Store) ListTrackedPairAddresses(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addrs := make([]string, 0, len(s.tokens))
	for addr := range s.tokens {
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func (s *Store) ListTrackedPairs(ctx context.Context) ([]model.TrackedPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pairs := make([]model.TrackedPair, 0, len(s.tokens))
	for _, t := range s.tokens {
		pairs = append(pairs, model.TrackedPair{PairAddress: t.PairAddress, ChainID: t.ChainID})
	}
	return pairs, nil
}

func (s *Store) ListRecentTokens(ctx context.Context, limit int) ([]*model.Token, error) {
	if limit <= 0 {
		limit = repo.DefaultRecentLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := make([]*model.Token, 0, len(s.tokens))
	for _, t := range s.tokens {
		c := *t
		tokens = append(tokens, &c)
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].FirstSeen.After(tokens[j].FirstSeen)
	})
	if len(tokens) > limit {
		tokens = tokens[:limit]
	}
	return tokens, nil
}

func (s *Store) CountTokens(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.tokens)), nil
}

func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.events)), nil
}

func (s *Store) LastObservationTimestamp(ctx context.Context) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last *time.Time
	for _, rows := range s.prices {
		for _, o := range rows {
			if last == nil || o.ObservedAt.After(*last) {
				ts := o.ObservedAt
				last = &ts
			}
		}
	}
	return last, nil
}

// Events 已记录事件的副本
func (s *Store) Events() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, *e)
	}
	return out
}

func (s *Store) Close() error {
	return nil
}
