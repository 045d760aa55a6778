// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waystone Contributors

package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status constants for action application metrics. Rejected actions are
// labelled with their error code instead.
const (
	StatusAccepted = "accepted"
	StatusError    = "error"
)

// ActionApplications is the counter for action applications.
// Use RegisterMetrics to register this with a Prometheus registry.
var ActionApplications = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "waystone_action_applications_total",
		Help: "Total number of action applications",
	},
	[]string{"action", "status"},
)

// ActionDuration is the histogram for action application duration.
// Use RegisterMetrics to register this with a Prometheus registry.
var ActionDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "waystone_action_duration_seconds",
		Help:    "Action application duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"action"},
)

// RegisterMetrics registers engine package metrics with the given Prometheus
// registry. This must be called at startup to make metrics available on
// /metrics. Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(ActionApplications)
	reg.MustRegister(ActionDuration)
}

// RecordActionApplication increments the action application counter.
// Parameters:
//   - action: the action name that was applied
//   - status: application result ("accepted" or an error code)
func RecordActionApplication(action, status string) {
	ActionApplications.WithLabelValues(action, status).Inc()
}

// RecordActionDuration records the duration of an action application.
func RecordActionDuration(action string, duration time.Duration) {
	ActionDuration.WithLabelValues(action).Observe(duration.Seconds())
}
