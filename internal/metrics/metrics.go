// Package metrics exposes Prometheus collectors for the HTTP layer, the
// engine callers and the background jobs. Collectors register with the
// default registry at init.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leadrank"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		},
	)

	leadScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lead_score",
			Help:      "Distribution of computed lead total scores",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		},
	)

	investorVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "investor_verdicts_total",
			Help:      "Investors accepted or rejected by the match filter",
		},
		[]string{"verdict"},
	)

	outreachPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outreach_messages_total",
			Help:      "Outreach messages handed to the broker",
		},
		[]string{"result"},
	)

	priorityUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "priority_updates_total",
			Help:      "Property priorities rewritten by the refresher",
		},
		[]string{"priority"},
	)

	refreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "priority_refresh_runs_total",
			Help:      "Completed priority refresh passes",
		},
		[]string{"result"},
	)

	panicsRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panics_recovered_total",
			Help:      "Handler panics caught by the recovery middleware",
		},
	)
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// RequestStarted and RequestFinished bracket one HTTP request.
func RequestStarted() {
	httpInFlight.Inc()
}

// RequestFinished records a served request. route is the matched route
// template, never the raw path.
func RequestFinished(method, route string, status int, elapsed time.Duration) {
	httpInFlight.Dec()
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordScore observes one lead total.
func RecordScore(total int) {
	leadScores.Observe(float64(total))
}

// RecordVerdicts counts filter outcomes for one match run.
func RecordVerdicts(accepted, rejected int) {
	investorVerdicts.WithLabelValues("accepted").Add(float64(accepted))
	investorVerdicts.WithLabelValues("rejected").Add(float64(rejected))
}

// RecordOutreach counts one publish attempt.
func RecordOutreach(err error) {
	outreachPublished.WithLabelValues(result(err)).Inc()
}

// RecordPriorityUpdate counts one rewritten priority.
func RecordPriorityUpdate(priority string) {
	priorityUpdates.WithLabelValues(priority).Inc()
}

// RecordRefresh counts one refresher pass.
func RecordRefresh(err error) {
	refreshRuns.WithLabelValues(result(err)).Inc()
}

// RecordPanic counts one recovered panic.
func RecordPanic() {
	panicsRecovered.Inc()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
