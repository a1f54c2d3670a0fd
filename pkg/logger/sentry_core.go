package logger

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap/zapcore"
)

// SentryCore 将达到级别的日志作为Sentry事件上报
type SentryCore struct {
	level        zapcore.Level
	fields       []zapcore.Field
	flushTimeout time.Duration
}

func NewSentryCore(level zapcore.Level) zapcore.Core {
	return &SentryCore{
		level:        level,
		flushTimeout: 5 * time.Second,
	}
}

func (c *SentryCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

func (c *SentryCore) With(f []zapcore.Field) zapcore.Core {
	clone := &SentryCore{
		level:        c.level,
		flushTimeout: c.flushTimeout,
		fields:       make([]zapcore.Field, 0, len(c.fields)+len(f)),
	}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, f...)
	return clone
}

func (c *SentryCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c *SentryCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)

	sentry.WithScope(func(scope *sentry.Scope) {
		if len(all) > 0 {
			scope.SetExtras(fieldsToExtras(all))
		}
		if ent.LoggerName != "" {
			scope.SetTag("logger", ent.LoggerName)
		}
		scope.SetLevel(sentryLevel(ent.Level))
		sentry.CaptureMessage(ent.Message)
	})

	if ent.Level > zapcore.ErrorLevel {
		return c.Sync()
	}
	return nil
}

func (c *SentryCore) Sync() error {
	sentry.Flush(c.flushTimeout)
	return nil
}

// fieldsToExtras 借助zap自带的map编码器展开字段
func fieldsToExtras(fields []zapcore.Field) map[string]interface{} {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	return enc.Fields
}

func sentryLevel(lvl zapcore.Level) sentry.Level {
	switch lvl {
	case zapcore.DebugLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	default:
		return sentry.LevelFatal
	}
}
