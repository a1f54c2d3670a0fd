package report

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/pkg/utils"
)

// MaxMessageLength Telegram单条消息上限
const MaxMessageLength = 4000

const (
	TransientErrorText = "⚠️ Temporarily unavailable, please try again later"
	noTokensText       = "No tokens tracked yet"
)

func HelpText() string {
	return "🚀 DexScreenerBot is running!\n" +
		"/stats - Show stats\n" +
		"/tokens - List tracked tokens\n" +
		"/config - Show configuration"
}

func FormatStats(s Stats) string {
	return fmt.Sprintf("📊 Stats:\nTokens: %d\nEvents: %d\nLast Updated: %s",
		s.TokenCount, s.EventCount, s.LastUpdateText())
}

// FormatTokens 每行 BASE/QUOTE (chain)，超长截断
func FormatTokens(tokens []*model.Token) string {
	if len(tokens) == 0 {
		return noTokensText
	}
	lines := lo.Map(tokens, func(t *model.Token, _ int) string {
		return fmt.Sprintf("%s (%s)", t.Label(), t.ChainID)
	})
	return utils.TruncateRunes("🔍 Recent Tokens:\n"+strings.Join(lines, "\n"), MaxMessageLength)
}

func FormatConfig(kvs []KV) string {
	lines := lo.Map(kvs, func(kv KV, _ int) string {
		return kv.Key + ": " + kv.Value
	})
	return "⚙️ Configuration:\n" + strings.Join(lines, "\n")
}
