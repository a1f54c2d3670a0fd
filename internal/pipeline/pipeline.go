package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/internal/dedup"
	"github.com/ninja0404/pump-signal/internal/detector"
	"github.com/ninja0404/pump-signal/internal/filter"
	"github.com/ninja0404/pump-signal/internal/model"
	"github.com/ninja0404/pump-signal/internal/repo"
	"github.com/ninja0404/pump-signal/internal/source"
	"github.com/ninja0404/pump-signal/pkg/logger"
	"github.com/ninja0404/pump-signal/pkg/utils"
)

type State string

const (
	StateStopped State = "STOPPED"
	StateRunning State = "RUNNING"

	DefaultErrorBackoff = 60 * time.Second
)

var (
	ErrAlreadyRunning = errors.New("scheduler already running")
	ErrNotRunning     = errors.New("scheduler not running")
)

// EventPublisher 事件通知，失败由实现自行记录
type EventPublisher interface {
	Publish(ctx context.Context, event *model.Event, token *model.Token)
}

// Stats 运行计数
type Stats struct {
	Cycles        int64
	FailedCycles  int64
	PairsAdmitted int64
	PairsRejected int64
	Observations  int64
	Events        int64
	Suppressed    int64
	PairErrors    int64
}

type counters struct {
	cycles        atomic.Int64
	failedCycles  atomic.Int64
	pairsAdmitted atomic.Int64
	pairsRejected atomic.Int64
	observations  atomic.Int64
	events        atomic.Int64
	suppressed    atomic.Int64
	pairErrors    atomic.Int64
}

// Scheduler 单协程轮询：拉取新交易对、过滤入库、刷新快照、检测并通知
type Scheduler struct {
	source    source.PairSource
	store     repo.Store
	detector  *detector.Detector
	guard     dedup.Guard
	publisher EventPublisher

	cfg          config.FilterConfig
	errorBackoff time.Duration
	now          func() time.Time

	// mu 只保护状态切换，轮询协程不持有
	mu     sync.Mutex
	state  State
	stopCh chan struct{}
	done   chan struct{}

	counters counters
}

type Option func(*Scheduler)

// WithErrorBackoff 周期失败后的等待时间
func WithErrorBackoff(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.errorBackoff = d
		}
	}
}

// WithGuard 重复事件抑制策略
func WithGuard(g dedup.Guard) Option {
	return func(s *Scheduler) {
		s.guard = g
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

func NewScheduler(src source.PairSource, store repo.Store, publisher EventPublisher, cfg config.FilterConfig, opts ...Option) *Scheduler {
	s := &Scheduler{
		source:       src,
		store:        store,
		detector:     detector.NewDetector(detector.ThresholdsFrom(cfg)),
		guard:        dedup.NewNop(),
		publisher:    publisher,
		cfg:          cfg,
		errorBackoff: DefaultErrorBackoff,
		now:          func() time.Time { return time.Now().UTC() },
		state:        StateStopped,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start STOPPED -> RUNNING，上一轮协程未退出时先等待
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runningLocked() {
		return ErrAlreadyRunning
	}
	if s.done != nil {
		<-s.done
	}

	s.state = StateRunning
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(ctx, s.stopCh, s.done)

	logger.Info("🚀 轮询已启动",
		logger.Duration("scan_interval", s.cfg.ScanInterval),
		logger.Duration("error_backoff", s.errorBackoff),
		logger.String("source", s.source.String()),
		logger.String("dedup", s.guard.GetType()))
	for _, rule := range s.detector.Rules() {
		logger.Info("📐 检测规则", logger.FieldKind(string(rule.Kind)), logger.String("condition", rule.Condition.String()))
	}
	return nil
}

// Stop RUNNING -> STOPPED，当前周期跑完后退出，等待中的sleep会被打断
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.runningLocked() {
		s.state = StateStopped
		return ErrNotRunning
	}
	s.state = StateStopped
	close(s.stopCh)
	logger.Info("🛑 轮询停止中，等待当前周期结束")
	return nil
}

// Wait 阻塞到轮询协程退出
func (s *Scheduler) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runningLocked() {
		return StateRunning
	}
	return StateStopped
}

// runningLocked ctx取消导致协程退出时也视为STOPPED
func (s *Scheduler) runningLocked() bool {
	if s.state != StateRunning {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *Scheduler) Stats() Stats {
	c := &s.counters
	return Stats{
		Cycles:        c.cycles.Load(),
		FailedCycles:  c.failedCycles.Load(),
		PairsAdmitted: c.pairsAdmitted.Load(),
		PairsRejected: c.pairsRejected.Load(),
		Observations:  c.observations.Load(),
		Events:        c.events.Load(),
		Suppressed:    c.suppressed.Load(),
		PairErrors:    c.pairErrors.Load(),
	}
}

func (s *Scheduler) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		default:
		}

		started := time.Now()
		wait := s.cfg.ScanInterval
		if err := s.RunOnce(ctx); err != nil {
			s.counters.failedCycles.Add(1)
			wait = s.errorBackoff
			logger.Error("❌ 轮询周期失败，稍后重试",
				logger.FieldOp("cycle"),
				logger.Duration("backoff", wait),
				logger.FieldErr(err))
		} else {
			logger.Info("✅ 轮询周期完成",
				logger.FieldCost(time.Since(started)),
				logger.Duration("next_in", wait))
		}

		timer := time.NewTimer(wait)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// RunOnce 执行一个完整周期，单个交易对的错误只记录不返回
// 返回错误时调用方应按error_backoff等待
func (s *Scheduler) RunOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("💥 轮询周期panic",
				logger.Any("panic", r),
				logger.FieldStack(utils.GetStack()))
			err = fmt.Errorf("cycle panic: %v", r)
		}
	}()
	defer s.counters.cycles.Add(1)

	s.ingestNewPairs(ctx)

	pairs, err := s.store.ListTrackedPairs(ctx)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		s.pollPair(ctx, p)
	}
	return nil
}

func (s *Scheduler) ingestNewPairs(ctx context.Context) {
	pairs, err := s.source.ListNewPairs(ctx)
	if err != nil {
		s.counters.pairErrors.Add(1)
		logger.Warn("⚠️ 拉取新交易对失败，本周期跳过", logger.FieldOp("list_new_pairs"), logger.FieldErr(err))
		return
	}

	for _, pair := range pairs {
		if ok, reason := filter.Check(pair, s.cfg); !ok {
			s.counters.pairsRejected.Add(1)
			if pair != nil {
				logger.Debug("过滤交易对",
					logger.FieldPair(pair.PairAddress),
					logger.FieldChain(pair.ChainID),
					logger.String("reason", string(reason)))
			}
			continue
		}
		s.counters.pairsAdmitted.Add(1)

		now := s.now()
		if err := s.store.UpsertToken(ctx, pair.Token(now)); err != nil {
			s.pairFailed("upsert_token", pair.PairAddress, err)
			continue
		}
		s.recordObservation(ctx, pair, now)
	}
}

func (s *Scheduler) pollPair(ctx context.Context, tracked model.TrackedPair) {
	snap, err := s.source.Snapshot(ctx, tracked.ChainID, tracked.PairAddress)
	if err != nil {
		s.pairFailed("snapshot", tracked.PairAddress, err)
		return
	}
	snap.PairAddress = tracked.PairAddress
	if !s.recordObservation(ctx, snap, s.now()) {
		return
	}

	c, err := s.detector.Classify(ctx, tracked.PairAddress, s.store)
	if err != nil {
		s.pairFailed("classify", tracked.PairAddress, err)
		return
	}
	if c == nil {
		return
	}

	allowed, err := s.guard.Allow(ctx, tracked.PairAddress, c.Kind)
	if err != nil {
		logger.Warn("⚠️ 去重检查失败，按未重复处理",
			logger.FieldPair(tracked.PairAddress),
			logger.FieldOp("dedup"),
			logger.FieldErr(err))
		allowed = true
	}
	if !allowed {
		s.counters.suppressed.Add(1)
		logger.Debug("⏭️ 冷却期内的重复事件，跳过",
			logger.FieldPair(tracked.PairAddress),
			logger.FieldKind(string(c.Kind)))
		return
	}

	event, err := s.store.AppendEvent(ctx, tracked.PairAddress, c.Kind, c.PercentChange)
	if err != nil {
		s.pairFailed("append_event", tracked.PairAddress, err)
		if rerr := s.guard.Release(ctx, tracked.PairAddress, c.Kind); rerr != nil {
			logger.Warn("⚠️ 撤销去重记录失败",
				logger.FieldPair(tracked.PairAddress),
				logger.FieldOp("dedup_release"),
				logger.FieldErr(rerr))
		}
		return
	}
	s.counters.events.Add(1)

	token := snap.Token(event.DetectedAt)
	if token.ChainID == "" {
		token.ChainID = tracked.ChainID
	}
	s.publisher.Publish(ctx, event, token)
}

// recordObservation 没有有效价格时跳过
func (s *Scheduler) recordObservation(ctx context.Context, pair *model.PairSnapshot, at time.Time) bool {
	obs, ok := pair.Observation(at)
	if !ok {
		logger.Debug("快照缺少有效价格", logger.FieldPair(pair.PairAddress))
		return false
	}
	if err := s.store.AppendPriceObservation(ctx, pair.PairAddress, obs); err != nil {
		s.pairFailed("append_price_observation", pair.PairAddress, err)
		return false
	}
	s.counters.observations.Add(1)
	return true
}

func (s *Scheduler) pairFailed(op, pairAddress string, err error) {
	s.counters.pairErrors.Add(1)
	logger.Error("❌ 处理交易对失败",
		logger.FieldPair(pairAddress),
		logger.FieldOp(op),
		logger.FieldErr(err))
}
