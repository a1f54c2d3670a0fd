package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventKindPump EventKind = "PUMP"
	EventKindRug  EventKind = "RUG"
)

// Event 一次拉盘或砸盘检测结果
type Event struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// 下游按EventUID去重
	EventUID    string          `gorm:"column:event_uid;type:varchar(36);not null;uniqueIndex" json:"event_uid"`
	PairAddress string          `gorm:"column:pair_address;type:varchar(128);not null;index" json:"pair_address"`
	Kind        EventKind       `gorm:"column:event_type;type:varchar(8);not null" json:"event_type"`
	PriceChange decimal.Decimal `gorm:"column:price_change;type:decimal(38,6);not null" json:"price_change"`
	DetectedAt  time.Time       `gorm:"column:detected_at;not null;index" json:"detected_at"`
}

func (Event) TableName() string {
	return "events"
}
