package logger

import "context"

type activeLogKey struct{}

// ContextWithLog 把带上下文字段的logger放进ctx
func ContextWithLog(ctx context.Context, l *Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, activeLogKey{}, l)
}

// LogFromContext 取出ctx中的logger，没有则返回默认logger
func LogFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(activeLogKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}
