package metrics

import (
	"strconv"
	"sync"
	"time"

	"cofounder-match/internal/domain/ledger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the Prometheus collectors of the matching service.
//
// Metrics:
//   - cofounder_decisions_total{decision,outcome}
//   - cofounder_matches_created_total
//   - cofounder_match_races_recovered_total
//   - cofounder_discovery_queue_size
//   - cofounder_http_requests_total{method,route,status}
//   - cofounder_http_request_duration_seconds{method,route}
type Metrics struct {
	DecisionsTotal      *prometheus.CounterVec
	MatchesCreatedTotal prometheus.Counter
	MatchRacesTotal     prometheus.Counter
	QueueSize           prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the collectors with the default registry once per process.
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			DecisionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cofounder_decisions_total",
					Help: "Total number of discovery decisions by outcome",
				},
				[]string{"decision", "outcome"},
			),
			MatchesCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "cofounder_matches_created_total",
				Help: "Total number of matches created",
			}),
			MatchRacesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "cofounder_match_races_recovered_total",
				Help: "Reciprocal likes that found the match already created",
			}),
			QueueSize: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "cofounder_discovery_queue_size",
				Help:    "Number of candidates in rebuilt discovery queues",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200, 500},
			}),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cofounder_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "cofounder_http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
		}
	})
	return globalMetrics
}

func (m *Metrics) ObserveDecision(decision ledger.Decision, outcome string) {
	if m == nil {
		return
	}
	m.DecisionsTotal.WithLabelValues(string(decision), outcome).Inc()
}

func (m *Metrics) MatchCreated() {
	if m == nil {
		return
	}
	m.MatchesCreatedTotal.Inc()
}

func (m *Metrics) MatchRaceRecovered() {
	if m == nil {
		return
	}
	m.MatchRacesTotal.Inc()
}

func (m *Metrics) ObserveQueueSize(n int) {
	if m == nil {
		return
	}
	m.QueueSize.Observe(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(took.Seconds())
}
