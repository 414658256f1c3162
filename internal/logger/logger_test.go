package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/cloudreader/internal/metrics"
)

func TestInitValidation(t *testing.T) {
	assert.Error(t, Init(Config{Level: "loud", AppName: "test"}))
	assert.ErrorIs(t, Init(Config{Level: "info"}), ErrAppNameIsEmpty)
}

func TestInitFileOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Level:   "debug",
		AppName: "test",
		File: File{
			Enabled:  true,
			Path:     filepath.Join(dir, "logs"),
			InfoLog:  "info.log",
			ErrorLog: "error.log",
			MaxSize:  1,
		},
	}
	require.NoError(t, Init(cfg))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("hello info")
	log.Warn().Msg("hello warn")
	log.Error().Err(errors.New("boom")).Msg("hello error")

	info, err := os.ReadFile(filepath.Join(dir, "logs", "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "hello info")
	assert.NotContains(t, string(info), "hello warn")

	errs, err := os.ReadFile(filepath.Join(dir, "logs", "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errs), "hello warn")
	assert.Contains(t, string(errs), "boom")
	assert.Contains(t, string(errs), `"app":"test"`)
}

func TestPrometheusHook(t *testing.T) {
	require.NoError(t, Init(Config{Level: "info", AppName: "test"}))

	before := testutil.ToFloat64(metrics.LogMessages.WithLabelValues("warn"))
	log.Warn().Msg("counted")
	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.LogMessages.WithLabelValues("warn")), 1e-9)
}

func TestPrometheusHookSkipsUnleveled(t *testing.T) {
	hook := NewPrometheusHook()
	before := testutil.ToFloat64(metrics.LogMessages.WithLabelValues(zerolog.NoLevel.String()))
	hook.Run(nil, zerolog.NoLevel, "plain")
	assert.InDelta(t, before, testutil.ToFloat64(metrics.LogMessages.WithLabelValues(zerolog.NoLevel.String())), 1e-9)

	before = testutil.ToFloat64(metrics.LogMessages.WithLabelValues("error"))
	hook.Run(nil, zerolog.ErrorLevel, "counted")
	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.LogMessages.WithLabelValues("error")), 1e-9)
}

func TestLevelWriter(t *testing.T) {
	var info, errs testWriter
	lw := &LevelWriter{InfoWriter: &info, ErrorWriter: &errs}

	_, _ = lw.WriteLevel(zerolog.DebugLevel, []byte("d"))
	_, _ = lw.WriteLevel(zerolog.ErrorLevel, []byte("e"))
	n, err := lw.WriteLevel(zerolog.Disabled, []byte("x"))

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "d", string(info))
	assert.Equal(t, "e", string(errs))
}

type testWriter []byte

func (w *testWriter) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}
