package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildRejectsBadLevel(t *testing.T) {
	c := DefaultConfig()
	c.Level = "loud"
	_, err := c.Build()
	assert.Error(t, err)
}

func TestBuildDiscard(t *testing.T) {
	c := DefaultConfig()
	c.Discard = true
	c.Debug = true
	l, err := c.Build()
	require.NoError(t, err)
	l.Info("discarded", FieldPair("0xabc"))
}

func TestFieldsToExtras(t *testing.T) {
	extras := fieldsToExtras([]zapcore.Field{
		FieldPair("0xabc"),
		FieldOp("append_event"),
		Int("n", 3),
		FieldErr(errors.New("boom")),
	})

	assert.Equal(t, "0xabc", extras["pair_address"])
	assert.Equal(t, "append_event", extras["op"])
	assert.EqualValues(t, 3, extras["n"])
	assert.Equal(t, "boom", extras["error"])
}

func TestSentryLevel(t *testing.T) {
	assert.Equal(t, sentry.LevelWarning, sentryLevel(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelError, sentryLevel(zapcore.ErrorLevel))
	assert.Equal(t, sentry.LevelFatal, sentryLevel(zapcore.PanicLevel))
}

func TestDefaultLoggerUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("before init")
		LogFromContext(context.Background()).Warn("still fine")
	})
}
