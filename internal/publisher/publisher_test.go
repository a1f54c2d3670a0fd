package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-signal/internal/model"
)

func testAlert() (*model.Event, *model.Token) {
	return &model.Event{
			EventUID:    "uid-1",
			PairAddress: "0x1234567890abcdef1234567890abcdef12345678",
			Kind:        model.EventKindPump,
			PriceChange: decimal.NewFromInt(150),
			DetectedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}, &model.Token{
			PairAddress: "0x1234567890abcdef1234567890abcdef12345678",
			ChainID:     "ethereum",
			BaseSymbol:  "PEPE",
			QuoteSymbol: "WETH",
		}
}

type fakePublisher struct {
	mu     sync.Mutex
	name   string
	err    error
	alerts []*Alert
	texts  []string
	closed bool
}

func (f *fakePublisher) GetType() string { return f.name }

func (f *fakePublisher) Publish(_ context.Context, alert *Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alert)
	return f.err
}

func (f *fakePublisher) SendText(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return f.err
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return f.err
}

func TestManagerFanOutIgnoresFailures(t *testing.T) {
	failing := &fakePublisher{name: "failing", err: errors.New("boom")}
	ok := &fakePublisher{name: "ok"}

	m := NewManager()
	m.AddPublisher(failing)
	m.AddPublisher(ok)
	require.Len(t, m.Publishers(), 3)
	assert.Equal(t, "log", m.Publishers()[0].GetType())

	event, token := testAlert()
	m.Publish(context.Background(), event, token)

	assert.Len(t, failing.alerts, 1)
	require.Len(t, ok.alerts, 1)
	assert.Same(t, event, ok.alerts[0].Event)

	m.SendText(context.Background(), "summary")
	assert.Equal(t, []string{"summary"}, ok.texts)

	err := m.Close()
	assert.Error(t, err)
	assert.True(t, ok.closed)
	assert.True(t, failing.closed)
}

func TestFormatAlert(t *testing.T) {
	event, token := testAlert()
	text := FormatAlert(&Alert{Event: event, Token: token})
	assert.Equal(t, "🚀 Pump detected: +150.00%\n"+
		"Token: PEPE/WETH (ethereum)\n"+
		"Pair: 0x1234...5678\n"+
		"Time: 2024-01-02 03:04:05 UTC", text)

	event.Kind = model.EventKindRug
	event.PriceChange = decimal.RequireFromString("-95.5")
	text = FormatAlert(&Alert{Event: event})
	assert.Contains(t, text, "💣 Rug detected: -95.50%")
	assert.NotContains(t, text, "Token:")
}

type fakeSender struct {
	topic, key string
	value      []byte
	closed     bool
}

func (f *fakeSender) SendMessageWithKey(topic, key string, value []byte) error {
	f.topic, f.key, f.value = topic, key, value
	return nil
}

func (f *fakeSender) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	sender := &fakeSender{}
	p := NewKafkaPublisher(sender, "pump-events")
	event, token := testAlert()

	require.NoError(t, p.Publish(context.Background(), &Alert{Event: event, Token: token}))
	assert.Equal(t, "pump-events", sender.topic)
	assert.Equal(t, event.PairAddress, sender.key)

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(sender.value, &msg))
	assert.Equal(t, "uid-1", msg["event_uid"])
	assert.Equal(t, "PUMP", msg["event_type"])
	assert.Equal(t, "ethereum", msg["chain_id"])
	assert.Equal(t, "150", msg["price_change"])

	require.NoError(t, p.Close())
	assert.True(t, sender.closed)
}

type fakeBot struct {
	sent    []string
	stopped bool
}

func (f *fakeBot) Send(text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeBot) Stop() { f.stopped = true }

func TestTelegramPublisher(t *testing.T) {
	bot := &fakeBot{}
	p := NewTelegramPublisher(bot)
	event, token := testAlert()

	require.NoError(t, p.Publish(context.Background(), &Alert{Event: event, Token: token}))
	require.NoError(t, p.SendText(context.Background(), "hello"))
	require.Len(t, bot.sent, 2)
	assert.Contains(t, bot.sent[0], "PEPE/WETH")
	assert.Equal(t, "hello", bot.sent[1])

	require.NoError(t, p.Close())
	assert.True(t, bot.stopped)
}

func TestFeishuPublisher(t *testing.T) {
	var texts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content struct {
				Text string `json:"text"`
			} `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		texts = append(texts, body.Content.Text)
		_, _ = w.Write([]byte(`{"code":0}`))
	}))
	defer srv.Close()

	p := NewFeishuPublisher(srv.URL)
	event, token := testAlert()
	require.NoError(t, p.Publish(context.Background(), &Alert{Event: event, Token: token}))
	require.NoError(t, p.SendText(context.Background(), "stats"))
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Pump detected")
	assert.Equal(t, "stats", texts[1])
}
