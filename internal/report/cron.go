package report

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/ninja0404/pump-signal/pkg/logger"
)

// TextSender 能发送纯文本摘要的通道
type TextSender interface {
	SendText(ctx context.Context, text string)
}

// CronReport 按cron表达式定时推送统计摘要
type CronReport struct {
	cron    *cron.Cron
	service *Service
	sender  TextSender
	timeout time.Duration
}

func NewCronReport(spec string, service *Service, sender TextSender) (*CronReport, error) {
	r := &CronReport{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		service: service,
		sender:  sender,
		timeout: 30 * time.Second,
	}
	if _, err := r.cron.AddFunc(spec, r.runOnce); err != nil {
		return nil, errors.Wrapf(err, "schedule report %q", spec)
	}
	return r, nil
}

func (r *CronReport) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.Send(ctx); err != nil {
		logger.Warn("⚠️ 定时统计推送失败", logger.FieldOp("report"), logger.FieldErr(err))
	}
}

// Send 立即推送一次统计
func (r *CronReport) Send(ctx context.Context) error {
	stats, err := r.service.Stats(ctx)
	if err != nil {
		return err
	}
	r.sender.SendText(ctx, FormatStats(stats))
	return nil
}

func (r *CronReport) Start() {
	r.cron.Start()
	logger.Info("⏰ 定时统计已启动", logger.Int("entries", len(r.cron.Entries())))
}

// Stop 等待正在执行的任务结束
func (r *CronReport) Stop() {
	<-r.cron.Stop().Done()
}
