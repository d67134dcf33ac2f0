package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RestRequestsTotal общее количество HTTP запросов
	RestRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rest_hits_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path"},
	)

	// RestResponseDuration гистограмма длительности HTTP запросов в миллисекундах
	RestResponseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rest_response_duration_ms",
			Help:    "Duration of HTTP requests in milliseconds.",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000},
		},
		[]string{"path", "method"},
	)

	// RestEndpointsResponsesTotal счётчик ответов по статусам
	RestEndpointsResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rest_responses_total",
			Help: "Statuses for HTTP responses.",
		},
		[]string{"path", "status"},
	)

	// GenerationDuration длительность построения расписания без сохранения
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pairing_generation_duration_seconds",
			Help:    "Time spent building round-robin schedules.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
)

// IncRestRequestsTotal увеличивает счётчик HTTP запросов.
func IncRestRequestsTotal(path string) {
	RestRequestsTotal.WithLabelValues(path).Inc()
}

// IncRestResponsesDuration записывает длительность HTTP запроса.
func IncRestResponsesDuration(path, method string, timeServe time.Duration) {
	RestResponseDuration.WithLabelValues(path, method).Observe(float64(timeServe.Milliseconds()))
}

// IncRestResponsesStatusesTotal увеличивает счётчик ответов по статусу.
func IncRestResponsesStatusesTotal(path string, status int) {
	RestEndpointsResponsesTotal.WithLabelValues(path, http.StatusText(status)).Inc()
}

// ObserveGeneration записывает длительность генерации расписания.
func ObserveGeneration(d time.Duration) {
	GenerationDuration.Observe(d.Seconds())
}
