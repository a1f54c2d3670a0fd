package dexscreener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jpillora/backoff"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/internal/source"
	"github.com/ninja0404/pump-signal/pkg/logger"
)

const (
	opListNewPairs = "list_new_pairs"
	opSnapshot     = "snapshot"

	maxBodySize = 8 << 20
)

// Client DexScreener行情接口
type Client struct {
	cfg        config.UpstreamConfig
	httpClient *http.Client
	newBackoff func() *backoff.Backoff
}

type Option func(*Client)

// WithHTTPClient 替换底层http客户端
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBackoff 替换重试间隔
func WithBackoff(min, max time.Duration) Option {
	return func(client *Client) {
		client.newBackoff = func() *backoff.Backoff {
			return &backoff.Backoff{Min: min, Max: max, Factor: 2}
		}
	}
}

var _ source.PairSource = (*Client)(nil)

func NewClient(cfg config.UpstreamConfig, opts ...Option) *Client {
	timeout := cfg.Timeout.Std()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	WithBackoff(500*time.Millisecond, 5*time.Second)(c)
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) String() string {
	return "dexscreener"
}

func (c *Client) ListNewPairs(ctx context.Context) ([]*model.PairSnapshot, error) {
	var resp pairsResponse
	if err := c.get(ctx, opListNewPairs, "", c.cfg.NewPairsPath, &resp); err != nil {
		return nil, err
	}

	pairs := resp.all()
	out := make([]*model.PairSnapshot, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.snapshot())
	}
	return out, nil
}

func (c *Client) Snapshot(ctx context.Context, chainID, pairAddress string) (*model.PairSnapshot, error) {
	path := strings.NewReplacer(
		"{chainId}", url.PathEscape(chainID),
		"{pairAddress}", url.PathEscape(pairAddress),
	).Replace(c.cfg.PairPath)

	var resp pairsResponse
	if err := c.get(ctx, opSnapshot, pairAddress, path, &resp); err != nil {
		return nil, err
	}

	pairs := resp.all()
	for _, p := range pairs {
		if strings.EqualFold(p.PairAddress, pairAddress) {
			return p.snapshot(), nil
		}
	}
	return nil, &source.UpstreamFetchError{Op: opSnapshot, PairAddress: pairAddress, Err: source.ErrPairNotFound}
}

// get 带重试的GET，网络错误、429和5xx按退避重试
func (c *Client) get(ctx context.Context, op, pairAddress, path string, out interface{}) error {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path
	b := c.newBackoff()

	var lastErr *source.UpstreamFetchError
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := b.Duration()
			logger.Debug("🔁 重试上游请求",
				logger.FieldOp(op),
				logger.FieldPair(pairAddress),
				logger.Int("attempt", attempt),
				logger.Duration("wait", wait),
				logger.FieldErr(lastErr))
			select {
			case <-ctx.Done():
				return &source.UpstreamFetchError{Op: op, PairAddress: pairAddress, Err: ctx.Err()}
			case <-time.After(wait):
			}
		}

		err := c.do(ctx, endpoint, out)
		if err == nil {
			return nil
		}
		lastErr = &source.UpstreamFetchError{Op: op, PairAddress: pairAddress, Err: err}
		var se *statusError
		if errors.As(err, &se) {
			lastErr.StatusCode = se.code
		}
		if !lastErr.Retryable() || ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

func (c *Client) do(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode, body: truncate(string(body), 256)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return source.DecodeError(err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
