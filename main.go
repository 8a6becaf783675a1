package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-pairing/internal/auth"
	"github.com/mauv0809/club-pairing/internal/club"
	"github.com/mauv0809/club-pairing/internal/config"
	"github.com/mauv0809/club-pairing/internal/database"
	"github.com/mauv0809/club-pairing/internal/grouping"
	server "github.com/mauv0809/club-pairing/internal/http"
	"github.com/mauv0809/club-pairing/internal/metrics"
	"github.com/mauv0809/club-pairing/internal/notifier"
	"github.com/mauv0809/club-pairing/internal/notifier/slack"
	"github.com/mauv0809/club-pairing/internal/pubsub"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	clubStore := club.New(db)
	statsStore := metrics.New(db)
	metricsSvc := metrics.NewService().WithStore(statsStore)
	metricsHandler := metrics.NewMetricsHandler()
	authManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var notif notifier.Notifier
	if cfg.Slack.Enabled() {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("SLACK_BOT_TOKEN or SLACK_CHANNEL_ID not set, grouping announcements are disabled")
	}

	opts := []grouping.Option{}
	pubsubClient := pubsub.NewOffline()
	if cfg.ProjectID != "" {
		pubsubClient, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer pubsubClient.Close()
		opts = append(opts, grouping.WithPublisher(pubsub.NewGroupingPublisher(pubsubClient)))
	} else {
		log.Warn("GCP_PROJECT not set, grouping events are not published")
	}
	groupingSvc := grouping.New(clubStore, metricsSvc, opts...)

	s := server.NewServer(
		clubStore,
		groupingSvc,
		metricsSvc,
		metricsHandler,
		statsStore,
		authManager,
		notif,
		pubsubClient,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
