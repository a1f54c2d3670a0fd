package publisher

import (
	"context"
)

// ChatSender 发送到固定chat
type ChatSender interface {
	Send(text string) error
	Stop()
}

// TelegramPublisher Telegram发布器
type TelegramPublisher struct {
	bot ChatSender
}

func NewTelegramPublisher(bot ChatSender) *TelegramPublisher {
	return &TelegramPublisher{bot: bot}
}

func (p *TelegramPublisher) GetType() string {
	return "telegram"
}

func (p *TelegramPublisher) Publish(_ context.Context, alert *Alert) error {
	return p.bot.Send(FormatAlert(alert))
}

func (p *TelegramPublisher) SendText(_ context.Context, text string) error {
	return p.bot.Send(text)
}

// Close 停止长轮询
func (p *TelegramPublisher) Close() error {
	p.bot.Stop()
	return nil
}
