package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"sciencehub-backend/internal/analytics"
	analyticsapi "sciencehub-backend/internal/analytics/api"
	"sciencehub-backend/internal/auth"
	"sciencehub-backend/internal/availability"
	"sciencehub-backend/internal/availability/availability_api"
	availabilitydb "sciencehub-backend/internal/availability/db"
	"sciencehub-backend/internal/config"
	"sciencehub-backend/internal/database/migrations"
	"sciencehub-backend/internal/events"
	eventsdb "sciencehub-backend/internal/events/db"
	"sciencehub-backend/internal/events/event_api"
	"sciencehub-backend/internal/kafka"
	"sciencehub-backend/internal/logger"
	"sciencehub-backend/internal/notify"
	"sciencehub-backend/internal/registration"
	registrationdb "sciencehub-backend/internal/registration/db"
	"sciencehub-backend/internal/registration/qr"
	registrationredis "sciencehub-backend/internal/registration/redis"
	"sciencehub-backend/internal/registration/registration_api"
	"sciencehub-backend/internal/utils"
)

func openDatabase(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	sqldb, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("failed to open postgres: %v", err))
	}
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("failed to connect to postgres: %v", err))
	}
	log.Info("DATABASE", "postgres connection successful")

	return bun.NewDB(sqldb, pgdialect.New())
}

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	if cfg.Auth.AdminSecret == "" {
		log.Fatal("AUTH", "ADMIN_JWT_SECRET is required")
	}

	bunDB := openDatabase(cfg.Database, log)
	defer bunDB.Close()

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, "./migrations")
		if err := runner.Up(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("migrations failed: %v", err))
		}
		log.Info("DATABASE", "migrations applied")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("REDIS", fmt.Sprintf("failed to connect to redis: %v", err))
	}
	defer redisClient.Close()

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ActivityTopic, log)
		defer producer.Close()
		log.Info("KAFKA", fmt.Sprintf("activity stream on topic %s", cfg.Kafka.ActivityTopic))
	} else {
		log.Warn("KAFKA", "activity stream disabled")
	}

	notifier := notify.NewNotifier(
		&http.Client{Timeout: cfg.Notify.Timeout}, cfg.Notify.WebhookURL, log)

	eventLock := registrationredis.NewLock(redisClient, cfg.Redis.LockTTL)

	regService := registration.NewService(
		&registrationdb.DB{Bun: bunDB}, eventLock, kafkaOrNil(producer), log)
	regService.LockRetries = cfg.Redis.LockRetries

	var qrGen *qr.Generator
	if cfg.Auth.QRSecret != "" {
		qrGen = qr.NewGenerator(cfg.Auth.QRSecret)
	}

	regHandler := registration_api.NewHandler(regService, notifier, qrGen, log)

	eventService := events.NewService(&eventsdb.DB{Bun: bunDB}, eventsKafkaOrNil(producer), log)
	eventHandler := event_api.NewHandler(eventService, notifier, log)

	analyticsService := analytics.NewService(analytics.NewDB(bunDB))
	analyticsHandler := analyticsapi.NewHandler(analyticsService, log)

	availabilityService := availability.NewService(&availabilitydb.DB{Bun: bunDB})
	availabilityHandler := availability_api.NewHandler(availabilityService, log)

	r := chi.NewRouter()
	r.Use(requestLogger(log))
	r.Use(utils.PreflightStatus(http.StatusNoContent))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register-event", regHandler.RegisterEvent)
		r.Post("/track-page-view", analyticsHandler.TrackPageView)
		r.Post("/update-time-spent", analyticsHandler.UpdateTimeSpent)
		r.Post("/availability", availabilityHandler.Days)
		r.Post("/availability/probe", availabilityHandler.Probe)
		r.Get("/events", eventHandler.ListEvents)
		r.Get("/settings", eventHandler.GetSettings)

		r.Group(func(r chi.Router) {
			r.Use(auth.AdminMiddleware(cfg.Auth.AdminSecret))
			r.Post("/save-event", eventHandler.SaveEvent)
			r.Post("/cancel-registration", regHandler.CancelRegistration)
			r.Put("/settings", eventHandler.SaveSettings)
			r.Get("/admin/analytics/summary", analyticsHandler.GetSummary)
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", fmt.Sprintf("ScienceHub API on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "shutdown complete")
}

// requestLogger records every request through the category logger.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.LogAPI(r.Method, r.URL.Path, strconv.Itoa(ww.Status()), time.Since(start).String())
		})
	}
}

// kafkaOrNil keeps the registration service's publisher nil when the
// stream is disabled, so a typed nil never sneaks into the interface.
func kafkaOrNil(p *kafka.Producer) registration.ActivityPublisher {
	if p == nil {
		return nil
	}
	return p
}

func eventsKafkaOrNil(p *kafka.Producer) events.ActivityPublisher {
	if p == nil {
		return nil
	}
	return p
}
