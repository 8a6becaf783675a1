package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	PairingRuns        *prometheus.CounterVec
	PairingDuration    prometheus.Histogram
	GroupsCreated      prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge

	store MetricsStore
}
