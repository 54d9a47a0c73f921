package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	log, err := New()
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewHonorsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	log, err := New()
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "noisy")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestNamedNilBaseIsSafe(t *testing.T) {
	assert.NotNil(t, Named(nil, "svc.routes"))
}

func TestMustPanicsOnError(t *testing.T) {
	t.Setenv("LOG_LEVEL", "noisy")

	assert.Panics(t, func() {
		Must(New())
	})
}
