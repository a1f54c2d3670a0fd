package notifier

import (
	"context"
	"fmt"
	"time"

	tb "gopkg.in/tucnak/telebot.v2"

	"github.com/ninja0404/pump-signal/internal/report"
	"github.com/ninja0404/pump-signal/pkg/logger"
)

const (
	pollingTimeout = 10 * time.Second
	commandTimeout = 10 * time.Second
)

// CommandFunc 命令处理，返回回复文本
type CommandFunc func(ctx context.Context) string

// Command 聊天命令
type Command struct {
	Text        string
	Description string
	Handle      CommandFunc
}

// ReportCommands /start /stats /tokens /config 映射到只读查询
// 查询失败时回复临时错误，不影响后台轮询
func ReportCommands(svc *report.Service) []Command {
	return []Command{
		{
			Text:        "/start",
			Description: "Show help",
			Handle:      func(context.Context) string { return report.HelpText() },
		},
		{
			Text:        "/stats",
			Description: "Show stats",
			Handle: func(ctx context.Context) string {
				stats, err := svc.Stats(ctx)
				if err != nil {
					logger.Warn("⚠️ 查询统计失败", logger.FieldOp("stats"), logger.FieldErr(err))
					return report.TransientErrorText
				}
				return report.FormatStats(stats)
			},
		},
		{
			Text:        "/tokens",
			Description: "List tracked tokens",
			Handle: func(ctx context.Context) string {
				tokens, err := svc.RecentTokens(ctx, report.ChatTokenLimit)
				if err != nil {
					logger.Warn("⚠️ 查询交易对失败", logger.FieldOp("tokens"), logger.FieldErr(err))
					return report.TransientErrorText
				}
				return report.FormatTokens(tokens)
			},
		},
		{
			Text:        "/config",
			Description: "Show configuration",
			Handle:      func(context.Context) string { return report.FormatConfig(svc.ConfigSummary()) },
		},
	}
}

// TelegramBot 告警推送到固定chat，同时响应聊天命令
type TelegramBot struct {
	client *tb.Bot
	chat   tb.ChatID
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	client, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: &tb.LongPoller{Timeout: pollingTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramBot{client: client, chat: tb.ChatID(chatID)}, nil
}

// RegisterCommands 注册命令并同步到Telegram命令菜单
func (t *TelegramBot) RegisterCommands(commands []Command) error {
	menu := make([]tb.Command, 0, len(commands))
	for _, cmd := range commands {
		cmd := cmd
		t.client.Handle(cmd.Text, func(m *tb.Message) {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			if _, err := t.client.Send(m.Chat, cmd.Handle(ctx)); err != nil {
				logger.Warn("⚠️ 回复Telegram命令失败",
					logger.String("command", cmd.Text),
					logger.FieldErr(err))
			}
		})
		menu = append(menu, tb.Command{Text: cmd.Text, Description: cmd.Description})
	}
	return t.client.SetCommands(menu)
}

// Send 发送到配置的chat
func (t *TelegramBot) Send(text string) error {
	_, err := t.client.Send(t.chat, text)
	return err
}

func (t *TelegramBot) Start() {
	go t.client.Start()
	logger.Info("🤖 Telegram机器人已启动")
}

func (t *TelegramBot) Stop() {
	t.client.Stop()
}
