package model

import "time"

// Token 已跟踪的交易对，按交易对地址唯一，写入后不再修改
type Token struct {
	PairAddress    string     `gorm:"column:pair_address;primaryKey;type:varchar(128)" json:"pair_address"`
	ChainID        string     `gorm:"column:chain_id;type:varchar(32);not null;index" json:"chain_id"`
	BaseSymbol     string     `gorm:"column:base_token;type:varchar(64)" json:"base_token"`
	QuoteSymbol    string     `gorm:"column:quote_token;type:varchar(64)" json:"quote_token"`
	CreatorAddress string     `gorm:"column:creator_address;type:varchar(128)" json:"creator_address,omitempty"`
	PairCreatedAt  *time.Time `gorm:"column:pair_created_at" json:"pair_created_at,omitempty"`
	FirstSeen      time.Time  `gorm:"column:first_seen;not null;index" json:"first_seen"`

	Prices []PriceObservation `gorm:"foreignKey:PairAddress;references:PairAddress;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Events []Event            `gorm:"foreignKey:PairAddress;references:PairAddress;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Token) TableName() string {
	return "tokens"
}

// Label BASE/QUOTE 形式的展示名
func (t *Token) Label() string {
	return t.BaseSymbol + "/" + t.QuoteSymbol
}

// TrackedPair 轮询快照所需的最小信息
type TrackedPair struct {
	PairAddress string `gorm:"column:pair_address"`
	ChainID     string `gorm:"column:chain_id"`
}
