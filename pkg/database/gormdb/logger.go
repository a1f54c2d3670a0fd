package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	gormUtils "gorm.io/gorm/utils"

	"github.com/ninja0404/pump-signal/pkg/logger"
)

var _ gormLogger.Interface = &GormLogger{}

// NewGormLogger 把gorm日志转到zap
func NewGormLogger(logger *logger.Logger, loggerLevel gormLogger.LogLevel) *GormLogger {
	return &GormLogger{
		logger:      logger,
		loggerLevel: loggerLevel,
		loggerConfig: gormLogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  loggerLevel,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	}
}

type GormLogger struct {
	logger       *logger.Logger
	loggerLevel  gormLogger.LogLevel
	loggerConfig gormLogger.Config
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	newLogger := *l
	newLogger.loggerLevel = level
	return &newLogger
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.loggerLevel >= gormLogger.Info {
		formattedMsg := fmt.Sprintf(msg, data...)
		l.logger.Info(formattedMsg)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.loggerLevel >= gormLogger.Warn {
		formattedMsg := fmt.Sprintf(msg, data...)
		l.logger.Warn(formattedMsg)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.loggerLevel >= gormLogger.Error {
		formattedMsg := fmt.Sprintf(msg, data...)
		l.logger.Error(formattedMsg)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.loggerLevel <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.loggerLevel >= gormLogger.Error && (!errors.Is(err, gorm.ErrRecordNotFound) || !l.loggerConfig.IgnoreRecordNotFoundError):
		sql, rows := fc()
		l.logger.Error("sql error", traceFields(sql, rows, elapsed, logger.FieldErr(err))...)
	case elapsed > l.loggerConfig.SlowThreshold && l.loggerConfig.SlowThreshold != 0 && l.loggerLevel >= gormLogger.Warn:
		sql, rows := fc()
		l.logger.Warn(fmt.Sprintf("slow sql >= %v", l.loggerConfig.SlowThreshold), traceFields(sql, rows, elapsed)...)
	case l.loggerLevel == gormLogger.Info:
		sql, rows := fc()
		l.logger.Info("sql", traceFields(sql, rows, elapsed)...)
	}
}

func traceFields(sql string, rows int64, elapsed time.Duration, extra ...logger.Field) []logger.Field {
	fields := []logger.Field{
		logger.String("sql", sql),
		logger.Int64("rows", rows),
		logger.FieldCost(elapsed),
		logger.String("source", gormUtils.FileWithLineNum()),
	}
	return append(fields, extra...)
}

func mappingLoggerLevel(level string, openDebug bool) gormLogger.LogLevel {
	if openDebug {
		return gormLogger.Info
	}
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "":
		return gormLogger.Warn
	case "error", "dpanic", "panic", "fatal":
		return gormLogger.Error
	default:
		return gormLogger.Silent
	}
}
