package logger

import "go.uber.org/zap"

// 未初始化前使用Nop，保证测试和命令行子命令可直接调用
var defaultLogger = zap.NewNop()
var defaultLoggerL1 = zap.NewNop()

func Default() *Logger {
	return defaultLogger
}

// DefaultL1 给封装层使用，调用栈多跳一层
func DefaultL1() *Logger {
	return defaultLoggerL1
}

func SetDefault(logger *Logger) {
	defaultLogger = logger
}

func SetDefaultL1(logger *Logger) {
	defaultLoggerL1 = logger
}

func Debug(msg string, fields ...Field) {
	defaultLogger.Debug(msg, fields...)
}

func Info(msg string, fields ...Field) {
	defaultLogger.Info(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	defaultLogger.Warn(msg, fields...)
}

func Error(msg string, fields ...Field) {
	defaultLogger.Error(msg, fields...)
}

// Fatal logs then calls os.Exit(1).
func Fatal(msg string, fields ...Field) {
	defaultLogger.Fatal(msg, fields...)
}

// With creates a child logger and adds structured context to it.
func With(fields ...Field) *Logger {
	return defaultLogger.With(fields...)
}

func Named(s string) *Logger {
	return defaultLogger.Named(s)
}

func Level() string {
	return defaultLogger.Level().String()
}

func Close() {
	_ = defaultLogger.Sync()
}
