package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestWithKeepsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Wrap(zap.New(core)).With(zap.String("request_id", "abc"))

	l.Info("hello")
	l.Debug("dropped")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "abc", entries[0].ContextMap()["request_id"])
	}
}

func TestNewZapLoggerBuilds(t *testing.T) {
	l := NewZapLogger(&ZapLoggerConfig{IsDevelopment: true, Encoding: "console", Level: "debug"})
	assert.NotNil(t, l)
	l.Info("ready")
}
