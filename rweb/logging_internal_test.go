package rweb

import (
	"testing"

	"github.com/advdv/rhttp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	env := BaseEnvironment{LogLevel: zapcore.WarnLevel}

	logs, err := NewLogger(env)
	require.NoError(t, err)

	assert.False(t, logs.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logs.Core().Enabled(zapcore.WarnLevel))
}

func TestZapRHTTPLogger(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logs := newZapRHTTPLogger(zap.New(core))

	t.Run("unhandled serve error", func(t *testing.T) {
		logs.LogUnhandledServeError(errors.New("boom"))

		entries := observed.FilterMessage("unhandled server error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "rhttp.rweb", entries[0].LoggerName)
	})

	t.Run("implicit flush error", func(t *testing.T) {
		logs.LogImplicitFlushError(errors.New("pipe broke"))

		entries := observed.FilterMessage("error while flushing implicitly").All()
		require.Len(t, entries, 1)
	})

	t.Run("error page", func(t *testing.T) {
		logs.LogErrorPage(rhttp.NewErrorf(rhttp.CodeNotFound, "no such thing").WithDetail("id 42"))

		entries := observed.FilterMessage("rendered error page").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

		fields := entries[0].ContextMap()
		assert.EqualValues(t, 404, fields["code"])
		assert.Equal(t, "no such thing", fields["message"])
		assert.Equal(t, "id 42", fields["detail"])
	})
}
