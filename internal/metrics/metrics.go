package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the interface the availability engine and the write paths use
// to report outcomes without depending on prometheus directly.
type Recorder interface {
	RecordCheck(available bool)
	RecordConflicts(kind string, count int)
	RecordBlockedWrite(operation string)
}

// Collector collects prometheus metrics for the availability engine
// and the HTTP layer.
type Collector struct {
	checksTotal    *prometheus.CounterVec
	conflictsTotal *prometheus.CounterVec
	blockedWrites  *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_checks_total",
			Help: "Total availability checks by result.",
		}, []string{"result"}),
		conflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_conflicts_total",
			Help: "Total conflicting records returned, by conflict kind.",
		}, []string{"kind"}),
		blockedWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_blocked_writes_total",
			Help: "Writes rejected because of a detected conflict, by operation.",
		}, []string{"operation"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(c.checksTotal, c.conflictsTotal, c.blockedWrites, c.httpDuration)
	return c
}

// RecordCheck counts a completed availability check.
func (c *Collector) RecordCheck(available bool) {
	result := "available"
	if !available {
		result = "unavailable"
	}
	c.checksTotal.WithLabelValues(result).Inc()
}

// RecordConflicts counts conflicting records returned by a check.
func (c *Collector) RecordConflicts(kind string, count int) {
	if count <= 0 {
		return
	}
	c.conflictsTotal.WithLabelValues(kind).Add(float64(count))
}

// RecordBlockedWrite counts a write rejected by the conflict guard.
func (c *Collector) RecordBlockedWrite(operation string) {
	c.blockedWrites.WithLabelValues(operation).Inc()
}

// ObserveRequest records a finished HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
