package publisher

import (
	"fmt"
	"strings"

	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/pkg/utils"
)

func kindEmoji(kind model.EventKind) string {
	switch kind {
	case model.EventKindPump:
		return "🚀"
	case model.EventKindRug:
		return "💣"
	default:
		return "❓"
	}
}

func kindName(kind model.EventKind) string {
	switch kind {
	case model.EventKindPump:
		return "Pump"
	case model.EventKindRug:
		return "Rug"
	default:
		return string(kind)
	}
}

// FormatAlert 聊天通道使用的告警文本
func FormatAlert(alert *Alert) string {
	e := alert.Event
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s detected: %s\n", kindEmoji(e.Kind), kindName(e.Kind), utils.FormatPercent(e.PriceChange))
	if t := alert.Token; t != nil {
		fmt.Fprintf(&b, "Token: %s (%s)\n", t.Label(), t.ChainID)
	}
	fmt.Fprintf(&b, "Pair: %s\n", utils.GetDisplayAddress(e.PairAddress))
	fmt.Fprintf(&b, "Time: %s UTC", e.DetectedAt.UTC().Format("2006-01-02 15:04:05"))
	return b.String()
}
