package report

import (
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/pkg/utils"
)

// WriteTokensTable 命令行下的交易对列表
func WriteTokensTable(w io.Writer, tokens []*model.Token) {
	if len(tokens) == 0 {
		_, _ = io.WriteString(w, noTokensText+"\n")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pair", "Chain", "Symbol", "Creator", "First Seen"})
	table.SetAutoWrapText(false)
	for _, t := range tokens {
		creator := "-"
		if t.CreatorAddress != "" {
			creator = utils.GetDisplayAddress(t.CreatorAddress)
		}
		table.Append([]string{
			utils.GetDisplayAddress(t.PairAddress),
			t.ChainID,
			t.Label(),
			creator,
			t.FirstSeen.UTC().Format(time.DateTime),
		})
	}
	table.Render()
}

// WriteConfigTable 命令行下的配置摘要
func WriteConfigTable(w io.Writer, kvs []KV) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Value"})
	table.SetAutoWrapText(false)
	for _, kv := range kvs {
		table.Append([]string{kv.Key, kv.Value})
	}
	table.Render()
}
