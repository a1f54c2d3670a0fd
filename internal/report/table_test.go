package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ninja0404/pump-signal/internal/model"
)

func TestWriteTokensTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTokensTable(&buf, []*model.Token{{
		PairAddress: "0x1111111111111111111111111111111111112222",
		ChainID:     "ethereum",
		BaseSymbol:  "PEPE",
		QuoteSymbol: "WETH",
		FirstSeen:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}})

	out := buf.String()
	assert.Contains(t, out, "PAIR")
	assert.Contains(t, out, "0x1111...2222")
	assert.Contains(t, out, "PEPE/WETH")
	assert.Contains(t, out, "2024-05-01 12:00:00")
}

func TestWriteTokensTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteTokensTable(&buf, nil)
	assert.Equal(t, "No tokens tracked yet\n", buf.String())
}

func TestWriteConfigTable(t *testing.T) {
	var buf bytes.Buffer
	WriteConfigTable(&buf, []KV{{Key: "Chains", Value: "ethereum, bsc"}})
	assert.Contains(t, buf.String(), "ethereum, bsc")
}
