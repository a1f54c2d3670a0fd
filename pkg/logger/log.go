package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	Field  = zap.Field
	Logger = zap.Logger
	Option = zap.Option
)

var (
	String     = zap.String
	Any        = zap.Any
	Int64      = zap.Int64
	Int        = zap.Int
	Bool       = zap.Bool
	Time       = zap.Time
	Duration   = zap.Duration
	ByteString = zap.ByteString
	Float64    = zap.Float64
	Stringer   = zap.Stringer
)

func newLogger(c *Config) (*zap.Logger, error) {
	if c.Debug {
		color.NoColor = false
	}

	zapOptions := make([]zap.Option, 0)
	zapOptions = append(zapOptions, zap.AddStacktrace(zap.DPanicLevel))
	if c.AddCaller {
		zapOptions = append(zapOptions, zap.AddCaller(), zap.AddCallerSkip(c.CallerSkip))
	}

	var ws zapcore.WriteSyncer = os.Stdout
	if c.Discard {
		ws = zapcore.AddSync(io.Discard)
	} else if c.Output == "file" {
		ws = zapcore.AddSync(newRotate(c))
	}

	if c.Async {
		ws = &zapcore.BufferedWriteSyncer{
			WS:            ws,
			FlushInterval: c.FlushInterval,
			Size:          c.FlushBufferSize,
		}
	}

	lv := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if err := lv.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	if !c.DisableSentry {
		sentryLevel := zapcore.ErrorLevel
		if err := sentryLevel.UnmarshalText([]byte(c.SentryLevel)); err != nil {
			return nil, fmt.Errorf("invalid sentry level %q: %w", c.SentryLevel, err)
		}
		sentryCore := NewSentryCore(sentryLevel)
		zapOptions = append(zapOptions, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, sentryCore)
		}))
	}

	encoderConfig := defaultZapConfig()
	var enc zapcore.Encoder
	if c.Debug {
		encoderConfig.EncodeLevel = debugEncodeLevel
		enc = zapcore.NewConsoleEncoder(*encoderConfig)
	} else {
		enc = zapcore.NewJSONEncoder(*encoderConfig)
	}

	return zap.New(zapcore.NewCore(enc, ws, lv), zapOptions...).Named(c.Name), nil
}

func defaultZapConfig() *zapcore.EncoderConfig {
	return &zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func debugEncodeLevel(lv zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorize = color.RedString
	switch lv {
	case zapcore.DebugLevel:
		colorize = color.BlueString
	case zapcore.InfoLevel:
		colorize = color.GreenString
	case zapcore.WarnLevel:
		colorize = color.YellowString
	case zapcore.ErrorLevel, zapcore.PanicLevel, zapcore.DPanicLevel, zapcore.FatalLevel:
		colorize = color.RedString
	default:
	}
	enc.AppendString(colorize(fmt.Sprintf("[%s]", lv.CapitalString())))
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Local().Format("2006-01-02 15:04:05.000"))
}
