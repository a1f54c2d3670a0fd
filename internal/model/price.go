package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceObservation 一次价格采样，只追加
type PriceObservation struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PairAddress  string          `gorm:"column:pair_address;type:varchar(128);not null;index:idx_price_pair_time,priority:1" json:"pair_address"`
	PriceUSD     decimal.Decimal `gorm:"column:price_usd;type:decimal(38,18);not null" json:"price_usd"`
	Volume24h    decimal.Decimal `gorm:"column:volume_24h;type:decimal(38,6);not null" json:"volume_24h"`
	LiquidityUSD decimal.Decimal `gorm:"column:liquidity_usd;type:decimal(38,6);not null" json:"liquidity_usd"`
	ObservedAt   time.Time       `gorm:"column:observed_at;not null;index:idx_price_pair_time,priority:2" json:"observed_at"`
}

func (PriceObservation) TableName() string {
	return "price_history"
}
