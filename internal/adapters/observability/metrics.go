package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "basha", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "basha", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	InferenceCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "basha", Name: "inference_calls_total", Help: "Model/encoder collaborator calls."},
		[]string{"component", "outcome"}, // outcome: ok|fallback|error
	)
	InferenceLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "basha", Name: "inference_duration_seconds",
			Help:    "Model/encoder call duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"component"},
	)
	Predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "basha", Name: "predictions_total", Help: "Pipeline outcomes by classification."},
		[]string{"outcome"}, // "ok" or a fault kind
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "basha", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

// Serve starts the standalone metrics listener when METRICS_ADDR is set,
// exposing the given registry (the default handler would miss the basha_*
// vectors, which are registered on the custom registry only).
func Serve(reg *prometheus.Registry) {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, InferenceCalls, InferenceLatency, Predictions, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveInference(component, outcome string, dur time.Duration) {
	InferenceCalls.WithLabelValues(component, outcome).Inc()
	InferenceLatency.WithLabelValues(component).Observe(dur.Seconds())
}

func ObservePrediction(outcome string) {
	Predictions.WithLabelValues(outcome).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
