// Package metrics holds the prometheus collectors of the reader and serves
// them over HTTP when a listen address is configured.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "cloudreader"

var (
	// ContentReadSeconds observes content provider reads by operation
	ContentReadSeconds = promauto.NewHistogramVec( //nolint:gochecknoglobals
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "content_read_seconds",
			Help:      "Latency of content provider reads, by operation.",
			Buckets:   []float64{.01, .05, .1, .2, .3, .5, 1, 2},
		},
		[]string{"op"},
	)

	// AssistantRequests counts assistant calls by outcome
	AssistantRequests = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_requests_total",
			Help:      "Number of assistant questions, by outcome.",
		},
		[]string{"outcome"},
	)

	// BookmarkChanges counts bookmark additions and removals
	BookmarkChanges = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookmark_changes_total",
			Help:      "Number of bookmark toggles, by action.",
		},
		[]string{"action"},
	)

	// LogMessages counts log events by level
	LogMessages = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_messages_total",
			Help:      "Number of log events written, by level.",
		},
		[]string{"level"},
	)
)

// ObserveRead records how long a content read took
func ObserveRead(op string, start time.Time) {
	ContentReadSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Serve exposes /metrics on addr until ctx is done. An empty addr disables
// the endpoint.
func Serve(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second) //nolint:mnd
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("stopping metrics server")
		}
	}()

	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
