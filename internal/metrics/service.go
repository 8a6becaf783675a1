package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PairingRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "club_pairing_runs_total",
			Help: "The total number of auto-pairing runs by pairing type and outcome.",
		}, []string{"pairing_type", "outcome"}),
		PairingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "club_pairing_duration_seconds",
			Help:    "The duration of auto-pairing runs from load to persist.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GroupsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_groups_created_total",
			Help: "The total number of groups persisted by successful runs.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "club_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PairingRuns,
		s.PairingDuration,
		s.GroupsCreated,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

// WithStore mirrors run and notification counters into a persistent store.
func (s *Service) WithStore(store MetricsStore) *Service {
	s.store = store
	return s
}

func (s *Service) increment(key string) {
	if s.store != nil {
		s.store.Increment(key)
	}
}

func (s *Service) IncPairingRuns(pairingType, outcome string) {
	s.PairingRuns.WithLabelValues(pairingType, outcome).Inc()
	s.increment("pairing_runs." + pairingType + "." + outcome)
}

func (s *Service) ObservePairingDuration(seconds float64) {
	s.PairingDuration.Observe(seconds)
}

func (s *Service) AddGroupsCreated(n int) {
	s.GroupsCreated.Add(float64(n))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
	s.increment("slack_notifications_sent")
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
	s.increment("slack_notifications_failed")
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
