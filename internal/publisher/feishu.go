package publisher

import (
	"context"

	"github.com/ninja0404/pump-signal/internal/notifier"
)

// FeishuPublisher 飞书发布器
type FeishuPublisher struct {
	webhookURL string
}

func NewFeishuPublisher(webhookURL string) *FeishuPublisher {
	return &FeishuPublisher{webhookURL: webhookURL}
}

func (p *FeishuPublisher) GetType() string {
	return "feishu"
}

func (p *FeishuPublisher) Publish(ctx context.Context, alert *Alert) error {
	return notifier.SendToLark(ctx, FormatAlert(alert), p.webhookURL)
}

func (p *FeishuPublisher) SendText(ctx context.Context, text string) error {
	return notifier.SendToLark(ctx, text, p.webhookURL)
}

func (p *FeishuPublisher) Close() error {
	return nil
}
