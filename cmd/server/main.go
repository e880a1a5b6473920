package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"vigil/internal/alerts"
	alertshandler "vigil/internal/alerts/handler"
	alertsmetrics "vigil/internal/alerts/metrics"
	"vigil/internal/alerts/service"
	"vigil/internal/entities"
	"vigil/internal/notify"
	"vigil/internal/platform/config"
	"vigil/internal/platform/httpserver"
	"vigil/internal/platform/logger"
	platformredis "vigil/internal/platform/redis"
	"vigil/internal/readstate"
	"vigil/internal/thresholds"
	httptransport "vigil/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages. Every
// external collaborator has an in-memory fallback so the service runs
// without infrastructure in dev.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var (
		db              *sql.DB
		entityStore     entities.Store
		settingsFetcher thresholds.Fetcher
		notifyLog       notify.LogStore
	)
	if cfg.PostgresDSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("open postgres failed", "error", err)
			os.Exit(1)
		}
		entityStore = entities.NewPostgresStore(db)
		settingsFetcher = thresholds.NewPostgresFetcher(db)
		notifyLog = notify.NewPostgresLogStore(db)
	} else {
		log.Warn("no postgres DSN configured, using seeded in-memory stores")
		memStore := entities.NewInMemoryStore()
		entities.SeedDemoEntities(memStore, time.Now())
		entityStore = memStore
		settingsFetcher = thresholds.NewInMemoryFetcher()
		notifyLog = notify.NewInMemoryLogStore()
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	var readStore readstate.Store
	if redisClient != nil {
		readStore = readstate.NewRedisStore(redisClient.Client)
	} else {
		log.Warn("no redis URL configured, read state is in-memory")
		readStore = readstate.NewInMemoryStore()
	}

	var queue notify.Queue = notify.LoggingQueue{Logger: log}
	var kafkaQueue *notify.KafkaQueue
	if len(cfg.KafkaBrokers) > 0 {
		kafkaQueue, err = notify.NewKafkaQueue(ctx, cfg.KafkaBrokers, cfg.NotifyTopic)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		queue = kafkaQueue
	}

	engineMetrics := alertsmetrics.New()
	dispatcher := notify.NewDispatcher(queue, notifyLog, log, notify.NewMetrics())

	svc, err := service.New(service.Deps{
		Entities:         entityStore,
		AlertThresholds:  thresholds.NewStore(settingsFetcher, thresholds.AlertConfigKey, config.ThresholdCacheTTL, log),
		StatusThresholds: thresholds.NewStore(settingsFetcher, thresholds.StatusConfigKey, config.ThresholdCacheTTL, log),
		Cache:            alerts.NewCache(config.AlertCacheTTL, engineMetrics),
		ReadState:        readStore,
		Notifier:         dispatcher,
		Logger:           log,
		Metrics:          engineMetrics,
		Timeout:          config.GenerateTimeout,
	})
	if err != nil {
		log.Error("service wiring failed", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(
		alertshandler.New(svc, log),
		httptransport.Deps{DB: db, Redis: redisClient},
	)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting vigil", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if kafkaQueue != nil {
		kafkaQueue.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
