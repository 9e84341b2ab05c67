// Package metrics exposes the Prometheus collectors of the fan-out worker.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// Trigger outcomes.
const (
	OutcomeSent      = "sent"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
	OutcomeDuplicate = "duplicate"
)

// NewRegistry creates the registry served on /metrics with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// CronJobMetrics records metadata for scheduled jobs.
type CronJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewCronJobMetrics registers the cron job metrics on the provided registry.
func NewCronJobMetrics(reg *prometheus.Registry) *CronJobMetrics {
	if reg == nil {
		return &CronJobMetrics{}
	}
	m := &CronJobMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "job_duration_seconds",
			Help:    "Duration of scheduled jobs in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		success: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "job_success_total",
			Help: "Successful scheduled job executions.",
		}, []string{"job"}),
		failure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "job_failure_total",
			Help: "Failed scheduled job executions.",
		}, []string{"job"}),
	}
	reg.MustRegister(m.duration, m.success, m.failure)

	return m
}

// ObserveDuration records the duration for the named job.
func (c *CronJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (c *CronJobMetrics) IncSuccess(job string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (c *CronJobMetrics) IncFailure(job string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// FanoutMetrics counts document events and trigger outcomes.
type FanoutMetrics struct {
	events   *prometheus.CounterVec
	triggers *prometheus.CounterVec
	removed  prometheus.Counter
}

// NewFanoutMetrics registers the fan-out metrics on the provided registry.
func NewFanoutMetrics(reg *prometheus.Registry) *FanoutMetrics {
	if reg == nil {
		return &FanoutMetrics{}
	}
	m := &FanoutMetrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fanout_events_total",
			Help: "Document events received, by collection and kind.",
		}, []string{"collection", "kind"}),
		triggers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fanout_trigger_outcomes_total",
			Help: "Trigger executions by outcome.",
		}, []string{"trigger", "outcome"}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fanout_stale_locations_removed_total",
			Help: "Location documents purged by the stale location cleanup.",
		}),
	}
	reg.MustRegister(m.events, m.triggers, m.removed)

	return m
}

// IncEvent counts a received document event.
func (f *FanoutMetrics) IncEvent(collection, kind string) {
	if f == nil || f.events == nil {
		return
	}
	f.events.WithLabelValues(normalizeLabel(collection), normalizeLabel(kind)).Inc()
}

// IncTrigger counts one trigger outcome.
func (f *FanoutMetrics) IncTrigger(trigger, outcome string) {
	if f == nil || f.triggers == nil {
		return
	}
	f.triggers.WithLabelValues(normalizeLabel(trigger), outcome).Inc()
}

// AddRemovedLocations adds n purged locations.
func (f *FanoutMetrics) AddRemovedLocations(n int) {
	if f == nil || f.removed == nil || n <= 0 {
		return
	}
	f.removed.Add(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}

	return v
}

// Module provides the metrics FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRegistry, NewCronJobMetrics, NewFanoutMetrics),
)
