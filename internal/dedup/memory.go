package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/pkg/logger"
)

const defaultCleanupInterval = 5 * time.Minute

// MemoryGuard 进程内冷却记录，定期清理过期条目
type MemoryGuard struct {
	cooldown    time.Duration
	sentSignals map[string]time.Time // key: pairAddress_kind
	mutex       sync.Mutex
	now         func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMemoryGuard 创建并启动清理协程
func NewMemoryGuard(cooldown time.Duration) *MemoryGuard {
	return newMemoryGuard(cooldown, defaultCleanupInterval, time.Now)
}

func newMemoryGuard(cooldown, cleanupInterval time.Duration, now func() time.Time) *MemoryGuard {
	ctx, cancel := context.WithCancel(context.Background())
	g := &MemoryGuard{
		cooldown:    cooldown,
		sentSignals: make(map[string]time.Time),
		now:         now,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	go g.startCleanupTask(ctx, cleanupInterval)
	return g
}

func (g *MemoryGuard) Allow(_ context.Context, pairAddress string, kind model.EventKind) (bool, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	key := signalKey(pairAddress, kind)
	now := g.now()
	if last, ok := g.sentSignals[key]; ok && now.Sub(last) < g.cooldown {
		return false, nil
	}
	g.sentSignals[key] = now
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, pairAddress string, kind model.EventKind) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.sentSignals, signalKey(pairAddress, kind))
	return nil
}

func (g *MemoryGuard) GetType() string {
	return "memory"
}

// Len 当前缓存的记录数
func (g *MemoryGuard) Len() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return len(g.sentSignals)
}

func (g *MemoryGuard) cleanupExpired() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	now := g.now()
	for key, sentAt := range g.sentSignals {
		if now.Sub(sentAt) >= g.cooldown {
			delete(g.sentSignals, key)
		}
	}
	return len(g.sentSignals)
}

func (g *MemoryGuard) startCleanupTask(ctx context.Context, interval time.Duration) {
	defer close(g.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if remaining := g.cleanupExpired(); remaining > 0 {
				logger.Debug("🧹 清理过期事件记录完成",
					logger.Int("remaining", remaining),
					logger.String("cooldown", g.cooldown.String()))
			}
		}
	}
}

// Close 停止清理协程
func (g *MemoryGuard) Close() error {
	g.cancel()
	<-g.done
	return nil
}
