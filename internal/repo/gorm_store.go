package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ninja0404/pump-signal/internal/model"
)

type gormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore 基于gorm的Store实现，mysql与postgres均可
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// AutoMigrate 建表，失败时应终止启动
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(&model.Token{}, &model.PriceObservation{}, &model.Event{})
	return errors.Wrap(err, "migrate schema")
}

func (s *gormStore) UpsertToken(ctx context.Context, token *model.Token) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(token).Error
	})
	return wrapErr("upsert_token", token.PairAddress, errors.Wrap(err, "insert token"))
}

func (s *gormStore) AppendPriceObservation(ctx context.Context, pairAddress string, obs *model.PriceObservation) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTracked(tx, pairAddress); err != nil {
			return err
		}
		obs.PairAddress = pairAddress
		return errors.Wrap(tx.Create(obs).Error, "insert price observation")
	})
	return wrapErr("append_price_observation", pairAddress, err)
}

func (s *gormStore) AppendEvent(ctx context.Context, pairAddress string, kind model.EventKind, percentChange decimal.Decimal) (*model.Event, error) {
	event := &model.Event{
		EventUID:    uuid.NewString(),
		PairAddress: pairAddress,
		Kind:        kind,
		PriceChange: percentChange,
		DetectedAt:  s.now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTracked(tx, pairAddress); err != nil {
			return err
		}
		return errors.Wrap(tx.Create(event).Error, "insert event")
	})
	if err != nil {
		return nil, wrapErr("append_event", pairAddress, err)
	}
	return event, nil
}

func (s *gormStore) LatestTwoPrices(ctx context.Context, pairAddress string) ([]*model.PriceObservation, error) {
	var rows []*model.PriceObservation
	err := s.db.WithContext(ctx).
		Where("pair_address = ?", pairAddress).
		Order("observed_at DESC").
		Order("id DESC").
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr("latest_two_prices", pairAddress, err)
	}
	return rows, nil
}

func (s *gormStore) ListTrackedPairAddresses(ctx context.Context) ([]string, error) {
	var addrs []string
	err := s.db.WithContext(ctx).
		Model(&model.Token{}).
		Pluck("pair_address", &addrs).Error
	if err != nil {
		return nil, wrapErr("list_tracked_pair_addresses", "", err)
	}
	return addrs, nil
}

func (s *gormStore) ListTrackedPairs(ctx context.Context) ([]model.TrackedPair, error) {
	var pairs []model.TrackedPair
	err := s.db.WithContext(ctx).
		Model(&model.Token{}).
		Select("pair_address", "chain_id").
		Find(&pairs).Error
	if err != nil {
		return nil, wrapErr("list_tracked_pairs", "", err)
	}
	return pairs, nil
}

func (s *gormStore) ListRecentTokens(ctx context.Context, limit int) ([]*model.Token, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var tokens []*model.Token
	err := s.db.WithContext(ctx).
		Order("first_seen DESC").
		Limit(limit).
		Find(&tokens).Error
	if err != nil {
		return nil, wrapErr("list_recent_tokens", "", err)
	}
	return tokens, nil
}

func (s *gormStore) CountTokens(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Token{}).Count(&n).Error; err != nil {
		return 0, wrapErr("count_tokens", "", err)
	}
	return n, nil
}

func (s *gormStore) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Event{}).Count(&n).Error; err != nil {
		return 0, wrapErr("count_events", "", err)
	}
	return n, nil
}

func (s *gormStore) LastObservationTimestamp(ctx context.Context) (*time.Time, error) {
	var rows []model.PriceObservation
	err := s.db.WithContext(ctx).
		Select("observed_at").
		Order("observed_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr("last_observation_timestamp", "", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	ts := rows[0].ObservedAt
	return &ts, nil
}

// Close 连接池由gormdb.Stop统一关闭
func (s *gormStore) Close() error {
	return nil
}

// ensureTracked 在同一事务内确认Token存在
func ensureTracked(tx *gorm.DB, pairAddress string) error {
	var n int64
	err := tx.Model(&model.Token{}).
		Where("pair_address = ?", pairAddress).
		Count(&n).Error
	if err != nil {
		return errors.Wrap(err, "lookup token")
	}
	if n == 0 {
		return &NotFoundError{PairAddress: pairAddress}
	}
	return nil
}
