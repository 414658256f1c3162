package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/justyntemme/cloudreader/internal/metrics"
)

// PrometheusHook feeds every leveled log event into a counter by level
type PrometheusHook struct {
	messages *prometheus.CounterVec
}

// NewPrometheusHook returns a hook counting into metrics.LogMessages
func NewPrometheusHook() PrometheusHook {
	return PrometheusHook{messages: metrics.LogMessages}
}

// Run implements zerolog.Hook
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	switch level {
	case zerolog.NoLevel, zerolog.Disabled:
		return
	}
	h.messages.WithLabelValues(level.String()).Inc()
}
