package publisher

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/pkg/logger"
)

// Alert 一次需要通知的事件
type Alert struct {
	Event *model.Event
	Token *model.Token
}

// Publisher 事件发布器接口
type Publisher interface {
	// Publish 发布事件
	Publish(ctx context.Context, alert *Alert) error

	// GetType 获取发布器类型
	GetType() string

	// Close 关闭发布器
	Close() error
}

// TextPublisher 支持发送纯文本摘要的发布器
type TextPublisher interface {
	Publisher
	SendText(ctx context.Context, text string) error
}

// Manager 把事件分发到所有发布器，单个发布器失败只记录日志
type Manager struct {
	publishers []Publisher
}

// NewManager 创建发布管理器，日志发布器始终注册
func NewManager() *Manager {
	return &Manager{publishers: []Publisher{&LogPublisher{}}}
}

// AddPublisher 添加发布器
func (m *Manager) AddPublisher(publisher Publisher) {
	m.publishers = append(m.publishers, publisher)
	logger.Info("✅ 已加载事件发布器", logger.String("type", publisher.GetType()))
}

func (m *Manager) Publishers() []Publisher {
	return m.publishers
}

// Publish 发布事件到所有发布器
func (m *Manager) Publish(ctx context.Context, event *model.Event, token *model.Token) {
	alert := &Alert{Event: event, Token: token}
	for _, publisher := range m.publishers {
		if err := publisher.Publish(ctx, alert); err != nil {
			logger.Error("❌ 发布事件失败",
				logger.String("publisher", publisher.GetType()),
				logger.String("event_uid", event.EventUID),
				logger.FieldPair(event.PairAddress),
				logger.FieldOp("publish"),
				logger.FieldErr(err))
		}
	}
}

// SendText 发送摘要到支持文本的发布器
func (m *Manager) SendText(ctx context.Context, text string) {
	for _, publisher := range m.publishers {
		tp, ok := publisher.(TextPublisher)
		if !ok {
			continue
		}
		if err := tp.SendText(ctx, text); err != nil {
			logger.Error("❌ 发送文本消息失败",
				logger.String("publisher", publisher.GetType()),
				logger.FieldOp("send_text"),
				logger.FieldErr(err))
		}
	}
}

// Close 关闭所有发布器
func (m *Manager) Close() error {
	var merr error
	for _, publisher := range m.publishers {
		if err := publisher.Close(); err != nil {
			logger.Error("关闭发布器失败",
				logger.String("type", publisher.GetType()),
				logger.FieldErr(err))
			merr = multierror.Append(merr, err)
		}
	}
	logger.Info("事件发布管理器已停止")
	return merr
}

// LogPublisher 日志发布器
type LogPublisher struct{}

func (p *LogPublisher) GetType() string {
	return "log"
}

func (p *LogPublisher) Publish(_ context.Context, alert *Alert) error {
	e := alert.Event
	fields := []logger.Field{
		logger.String("event_uid", e.EventUID),
		logger.FieldKind(string(e.Kind)),
		logger.FieldPair(e.PairAddress),
		logger.String("price_change", e.PriceChange.StringFixed(2)),
	}
	if alert.Token != nil {
		fields = append(fields,
			logger.FieldChain(alert.Token.ChainID),
			logger.String("symbol", alert.Token.Label()))
	}
	logger.Info(kindEmoji(e.Kind)+" 检测到价格异动", fields...)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
