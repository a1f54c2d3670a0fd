package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/ninja0404/pump-signal/internal/model"
)

// PairSource 交易对行情数据源
type PairSource interface {
	// ListNewPairs 最新上线的交易对
	ListNewPairs(ctx context.Context) ([]*model.PairSnapshot, error)

	// Snapshot 单个交易对的当前快照
	Snapshot(ctx context.Context, chainID, pairAddress string) (*model.PairSnapshot, error)

	// String 数据源名称
	String() string
}

var ErrPairNotFound = errors.New("pair not found in response")

// UpstreamFetchError 上游请求失败：网络、非2xx状态码或响应无法解析
type UpstreamFetchError struct {
	Op          string
	PairAddress string
	StatusCode  int
	Err         error
}

func (e *UpstreamFetchError) Error() string {
	msg := "upstream " + e.Op
	if e.PairAddress != "" {
		msg += " " + e.PairAddress
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// Retryable 网络错误、429和5xx可以重试
func (e *UpstreamFetchError) Retryable() bool {
	if e.StatusCode == 0 {
		return e.Err != nil && !errors.Is(e.Err, ErrPairNotFound) && !errors.Is(e.Err, errDecode)
	}
	return e.StatusCode == 429 || e.StatusCode >= 500
}

var errDecode = errors.New("decode response")

// DecodeError 响应体无法解析
func DecodeError(err error) error {
	return fmt.Errorf("%w: %v", errDecode, err)
}
