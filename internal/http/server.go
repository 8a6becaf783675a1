package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/club-pairing/internal/auth"
	"github.com/mauv0809/club-pairing/internal/club"
	"github.com/mauv0809/club-pairing/internal/metrics"
	"github.com/mauv0809/club-pairing/internal/notifier"
	"github.com/mauv0809/club-pairing/internal/pubsub"
)

// NewServer wires the API. notifier may be nil when Slack is not configured.
func NewServer(store club.ClubStore, pairer Pairer, metricsSvc metrics.Metrics, metricsHandler http.Handler, stats metrics.MetricsStore, authManager *auth.Manager, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Pairer:         pairer,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Stats:          stats,
		Auth:           authManager,
		Notifier:       notifier,
		PubSub:         pubsub,
		Router:         http.NewServeMux(),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	member := []Middleware{paramsMiddleware, s.authMiddleware}
	admin := []Middleware{paramsMiddleware, s.authMiddleware, adminMiddleware}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(s.StatsHandler(), admin...))

	s.Router.Handle("POST /auto-pair", Chain(s.AutoPairHandler(), admin...))
	s.Router.Handle("GET /games/{id}/groups", Chain(s.GetGroupsHandler(), admin...))
	s.Router.Handle("PUT /games/{id}/groups/{number}/players", Chain(s.AddPlayersHandler(), admin...))
	s.Router.Handle("DELETE /games/{id}/groups/{number}/players", Chain(s.RemovePlayersHandler(), admin...))

	s.Router.Handle("POST /members", Chain(s.UpsertMemberHandler(), admin...))
	s.Router.Handle("GET /members", Chain(s.ListMembersHandler(), admin...))
	s.Router.Handle("POST /game-days", Chain(s.CreateGameDayHandler(), admin...))
	s.Router.Handle("GET /game-days", Chain(s.ListGameDaysHandler(), member...))
	s.Router.Handle("POST /game-days/{id}/interest", Chain(s.RecordInterestHandler(), member...))

	s.Router.Handle("POST /pubsub/grouping-replaced", Chain(s.GroupingReplacedHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
