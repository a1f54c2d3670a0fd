package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ninja0404/pump-signal/internal/model"
)

// MessageSender kafka生产者的最小接口
type MessageSender interface {
	SendMessageWithKey(topic string, key string, value []byte) error
	Close() error
}

// EventMessage 写入kafka的事件消息
type EventMessage struct {
	EventUID    string          `json:"event_uid"`
	Kind        model.EventKind `json:"event_type"`
	PairAddress string          `json:"pair_address"`
	ChainID     string          `json:"chain_id,omitempty"`
	BaseToken   string          `json:"base_token,omitempty"`
	QuoteToken  string          `json:"quote_token,omitempty"`
	PriceChange decimal.Decimal `json:"price_change"`
	DetectedAt  time.Time       `json:"detected_at"`
}

func NewEventMessage(alert *Alert) *EventMessage {
	e := alert.Event
	msg := &EventMessage{
		EventUID:    e.EventUID,
		Kind:        e.Kind,
		PairAddress: e.PairAddress,
		PriceChange: e.PriceChange,
		DetectedAt:  e.DetectedAt,
	}
	if t := alert.Token; t != nil {
		msg.ChainID = t.ChainID
		msg.BaseToken = t.BaseSymbol
		msg.QuoteToken = t.QuoteSymbol
	}
	return msg
}

// KafkaPublisher 以交易对地址为key写入topic，同一交易对有序
type KafkaPublisher struct {
	sender MessageSender
	topic  string
}

func NewKafkaPublisher(sender MessageSender, topic string) *KafkaPublisher {
	return &KafkaPublisher{sender: sender, topic: topic}
}

func (p *KafkaPublisher) GetType() string {
	return "kafka"
}

func (p *KafkaPublisher) Publish(_ context.Context, alert *Alert) error {
	value, err := json.Marshal(NewEventMessage(alert))
	if err != nil {
		return err
	}
	return p.sender.SendMessageWithKey(p.topic, alert.Event.PairAddress, value)
}

func (p *KafkaPublisher) Close() error {
	return p.sender.Close()
}
