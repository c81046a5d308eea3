package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/pickleball-courts/internal/booking"
	"github.com/mauv0809/pickleball-courts/internal/club"
	"github.com/mauv0809/pickleball-courts/internal/config"
	"github.com/mauv0809/pickleball-courts/internal/database"
	server "github.com/mauv0809/pickleball-courts/internal/http"
	"github.com/mauv0809/pickleball-courts/internal/inngest"
	"github.com/mauv0809/pickleball-courts/internal/metrics"
	"github.com/mauv0809/pickleball-courts/internal/notifier"
	"github.com/mauv0809/pickleball-courts/internal/notifier/slack"
	"github.com/mauv0809/pickleball-courts/internal/playtomic"
	"github.com/mauv0809/pickleball-courts/internal/pubsub"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}))
	}

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

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

	var buckets database.Buckets = database.NewBuckets(db)
	if cfg.RedisURL != "" {
		redisBuckets, err := database.NewRedisBuckets(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %s", err)
		}
		defer redisBuckets.Close()
		buckets = redisBuckets
		log.Info("Persisting club data to redis")
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	counters := metrics.New(db)

	today := now()
	clubStore := club.New(club.Options{
		Buckets:    buckets,
		Metrics:    metricsSvc,
		Seed:       club.DefaultSeed(today),
		WindowDays: cfg.Schedule.WindowDays,
		OpenHour:   cfg.Schedule.OpenHour,
		CloseHour:  cfg.Schedule.CloseHour,
		Exceptions: club.DefaultExceptions(today),
		MaxRetries: cfg.PersistMaxRetries,
		Now:        now,
	})
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := clubStore.Load(loadCtx); err != nil {
		log.Fatalf("Failed to load club data: %s", err)
	}
	cancelLoad()
	unsubscribe := clubStore.Subscribe(func(e club.Event) {
		log.Debug("Club data changed", "event", e.Type, "version", e.Version)
	})
	defer unsubscribe()

	slackNotifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	dispatcher := notifier.NewDispatcher(slackNotifier, nil)
	var ps pubsub.PubSubClient
	if cfg.ProjectID != "" {
		ps, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Info("No GCP project configured, delivering notifications in-process")
		ps = pubsub.NewInline(dispatcher.Inline())
	}
	defer ps.Close()
	dispatcher.SetClient(ps)

	bookingSvc := booking.New(booking.Options{
		Store:     clubStore,
		PubSub:    ps,
		Metrics:   metricsSvc,
		Counters:  counters,
		OpenHour:  cfg.Schedule.OpenHour,
		CloseHour: cfg.Schedule.CloseHour,
		Now:       now,
	})

	var importer *playtomic.Importer
	if cfg.TenantID != "" {
		importer = playtomic.NewImporter(playtomic.NewClient(), clubStore, cfg.TenantID, loc)
	}

	tasks := dailyTasks(clubStore, bookingSvc, importer, slackNotifier, now)
	var inngestClient inngest.InngestClient
	if cfg.Inngest.Enabled() {
		options := inngestgo.ClientOpts{
			AppID:      cfg.Inngest.AppID,
			SigningKey: &cfg.Inngest.SigningKey,
			EventKey:   &cfg.Inngest.EventKey,
			Dev:        &cfg.Inngest.Dev,
		}
		inngestProvider, err := inngestgo.NewClient(options)
		if err != nil {
			log.Fatalf("Failed to initialize inngest: %s", err)
		}
		inngestClient, err = inngest.New(inngestProvider, "", tasks...)
		if err != nil {
			log.Fatalf("Failed to register inngest functions: %s", err)
		}
	}

	s := server.NewServer(
		clubStore,
		bookingSvc,
		metricsSvc,
		metricsHandler,
		cfg,
		importer,
		dispatcher,
		inngestClient,
		tasks...,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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
		// Flush pending bucket writes before the database closes.
		if err := clubStore.Close(ctx); err != nil {
			log.Error("Failed to flush club data", "error", err)
		}
	}

	log.Info("Server process shutting down")
}

// dailyTasks rolls the slot window, imports Playtomic bookings when
// configured and posts the day's agenda.
func dailyTasks(store club.ClubStore, svc *booking.Service, importer *playtomic.Importer, n notifier.Notifier, now func() time.Time) []inngest.Task {
	tasks := []inngest.Task{{
		Name: "regenerate-slots",
		Run: func(ctx context.Context) error {
			store.RegenerateSlots(now())
			return nil
		},
	}}
	if importer != nil {
		tasks = append(tasks, inngest.Task{
			Name: "sync-playtomic",
			Run: func(ctx context.Context) error {
				_, err := importer.Sync(ctx, now())
				return err
			},
		})
	}
	tasks = append(tasks, inngest.Task{
		Name: "post-agenda",
		Run: func(ctx context.Context) error {
			date := now().Format(schedule.DateLayout)
			return n.SendDailyAgenda(date, svc.Agenda(date), false)
		},
	})
	return tasks
}
