package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCronJobMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)

	m.IncSuccess("cleanup")
	m.IncSuccess("cleanup")
	m.IncFailure("")
	m.ObserveDuration("cleanup", time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(m.success.WithLabelValues("cleanup")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.failure.WithLabelValues("unknown")), 0)
}

func TestFanoutMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFanoutMetrics(reg)

	m.IncEvent("alerts", "create")
	m.IncTrigger("alert_created", OutcomeSent)
	m.AddRemovedLocations(3)
	m.AddRemovedLocations(0)

	assert.InDelta(t, 1, testutil.ToFloat64(m.events.WithLabelValues("alerts", "create")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.triggers.WithLabelValues("alert_created", OutcomeSent)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.removed), 0)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var cron *CronJobMetrics
	var fanout *FanoutMetrics

	assert.NotPanics(t, func() {
		cron.IncSuccess("x")
		fanout.IncEvent("a", "b")
		NewFanoutMetrics(nil).IncTrigger("t", OutcomeFailed)
	})
}
