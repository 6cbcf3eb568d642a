package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"production", "development", ""} {
		l, err := New(mode, "debug")
		require.NoError(t, err, mode)
		require.NotNil(t, l)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("development", "loud")
	assert.Error(t, err)
}

func TestLogger_WithFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("component", "ledger")

	l.Info("xp awarded", "amount", 5)
	l.Warn("persist failed")

	entries := observed.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "xp awarded", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "ledger", ctx["component"])
	assert.EqualValues(t, 5, ctx["amount"])
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored")
	l.Named("sub").Debug("ignored")
}
