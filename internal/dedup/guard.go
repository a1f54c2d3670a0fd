package dedup

import (
	"context"
	"fmt"
	"strings"

	"github.com/ninja0404/pump-signal/internal/model"
)

// Guard 同一交易对同一类型事件的冷却控制
type Guard interface {
	// Allow 冷却期内重复事件返回false，返回true时同时记录本次
	Allow(ctx context.Context, pairAddress string, kind model.EventKind) (bool, error)

	// Release 撤销Allow记录的本次，事件未能写入时调用
	Release(ctx context.Context, pairAddress string, kind model.EventKind) error

	// GetType 获取实现类型
	GetType() string

	Close() error
}

func signalKey(pairAddress string, kind model.EventKind) string {
	return fmt.Sprintf("%s_%s", strings.ToLower(pairAddress), string(kind))
}

type nopGuard struct{}

// NewNop 不做任何抑制
func NewNop() Guard {
	return nopGuard{}
}

func (nopGuard) Allow(context.Context, string, model.EventKind) (bool, error) {
	return true, nil
}

func (nopGuard) Release(context.Context, string, model.EventKind) error {
	return nil
}

func (nopGuard) GetType() string {
	return "none"
}

func (nopGuard) Close() error {
	return nil
}
