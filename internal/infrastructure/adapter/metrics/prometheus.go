// Package metrics exports ledger, request and HTTP counters in the
// Prometheus format on a private registry.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hotfinet"

// Recorder implements core.Metrics and the pool statistics hook
type Recorder struct {
	registry *prometheus.Registry

	ledgerEntries  *prometheus.CounterVec
	ledgerCoins    *prometheus.CounterVec
	ledgerRejected *prometheus.CounterVec
	transitions    *prometheus.CounterVec
	settledCoins   *prometheus.CounterVec
	settlements    prometheus.Counter
	notifyFailures *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	poolOpen    prometheus.Gauge
	poolInUse   prometheus.Gauge
	poolIdle    prometheus.Gauge
	poolWaiting prometheus.Gauge
}

// NewRecorder registers every collector on a fresh registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ledgerEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "entries_total",
			Help:      "Ledger transactions appended, by type.",
		}, []string{"type"}),
		ledgerCoins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "coins_total",
			Help:      "Coins moved by ledger transactions, by type.",
		}, []string{"type"}),
		ledgerRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "rejected_total",
			Help:      "Debits refused for insufficient funds.",
		}, []string{"type"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "requests",
			Name:      "transitions_total",
			Help:      "Committed request state changes.",
		}, []string{"from", "to"}),
		settledCoins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "coins_total",
			Help:      "Coins paid to providers or refunded to requesters at settlement.",
		}, []string{"direction"}),
		settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settlement",
			Name:      "completed_total",
			Help:      "Sessions settled.",
		}),
		notifyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "failures_total",
			Help:      "Failed best-effort notification deliveries, by channel.",
		}, []string{"channel"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		poolOpen:    newPoolGauge("open_connections", "Open database connections."),
		poolInUse:   newPoolGauge("in_use_connections", "Database connections in use."),
		poolIdle:    newPoolGauge("idle_connections", "Idle database connections."),
		poolWaiting: newPoolGauge("wait_count", "Total waits for a database connection."),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ledgerEntries, r.ledgerCoins, r.ledgerRejected,
		r.transitions, r.settledCoins, r.settlements, r.notifyFailures,
		r.httpRequests, r.httpDuration,
		r.poolOpen, r.poolInUse, r.poolIdle, r.poolWaiting,
	)
	return r
}

func newPoolGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "db_pool",
		Name:      name,
		Help:      help,
	})
}

var _ core.Metrics = (*Recorder)(nil)

// Registry exposes the private registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) LedgerEntry(txType string, coins int64) {
	r.ledgerEntries.WithLabelValues(txType).Inc()
	r.ledgerCoins.WithLabelValues(txType).Add(float64(coins))
}

func (r *Recorder) LedgerRejected(txType string) {
	r.ledgerRejected.WithLabelValues(txType).Inc()
}

func (r *Recorder) RequestTransition(from, to string) {
	if from == "" {
		from = "none"
	}
	r.transitions.WithLabelValues(from, to).Inc()
}

func (r *Recorder) Settlement(coinsOwed, coinsRefunded int64) {
	r.settlements.Inc()
	r.settledCoins.WithLabelValues("provider").Add(float64(coinsOwed))
	r.settledCoins.WithLabelValues("refund").Add(float64(coinsRefunded))
}

func (r *Recorder) NotificationFailed(channel string) {
	r.notifyFailures.WithLabelValues(channel).Inc()
}

// ObserveHTTP records one served request
func (r *Recorder) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObservePool records a connection pool snapshot
func (r *Recorder) ObservePool(stats sql.DBStats) {
	r.poolOpen.Set(float64(stats.OpenConnections))
	r.poolInUse.Set(float64(stats.InUse))
	r.poolIdle.Set(float64(stats.Idle))
	r.poolWaiting.Set(float64(stats.WaitCount))
}
