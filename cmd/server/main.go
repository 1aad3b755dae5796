package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edcalderon/hashpass.tech/internal/auth/token"
	mmhandler "github.com/edcalderon/hashpass.tech/internal/matchmaking/handler"
	mmmetrics "github.com/edcalderon/hashpass.tech/internal/matchmaking/metrics"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/oracle"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/ports"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/service/lifecycle"
	"github.com/edcalderon/hashpass.tech/internal/matchmaking/service/quota"
	requeststore "github.com/edcalderon/hashpass.tech/internal/matchmaking/store/request"
	"github.com/edcalderon/hashpass.tech/internal/platform/config"
	"github.com/edcalderon/hashpass.tech/internal/platform/httpserver"
	"github.com/edcalderon/hashpass.tech/internal/platform/logger"
	platformmetrics "github.com/edcalderon/hashpass.tech/internal/platform/metrics"
	platformredis "github.com/edcalderon/hashpass.tech/internal/platform/redis"
	"github.com/edcalderon/hashpass.tech/internal/platform/supabase"
	"github.com/edcalderon/hashpass.tech/internal/speakers/cache"
	sphandler "github.com/edcalderon/hashpass.tech/internal/speakers/handler"
	"github.com/edcalderon/hashpass.tech/internal/speakers/resolver"
	speakerstore "github.com/edcalderon/hashpass.tech/internal/speakers/store/speaker"
	"github.com/edcalderon/hashpass.tech/internal/speakers/static"
	kafkaaudit "github.com/edcalderon/hashpass.tech/pkg/platform/audit/publishers/kafka"
)

// main wires dependencies from config and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	httpMetrics := platformmetrics.New()
	matchMetrics := mmmetrics.New()

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Error("database ping failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	var store ports.RequestStore
	if db != nil {
		store = requeststore.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory request store")
		store = requeststore.New()
	}

	var quotaOracle ports.QuotaOracle
	if cfg.PassSystem.URL != "" {
		supaClient, err := supabase.New(cfg.PassSystem.URL, cfg.PassSystem.APIKey, cfg.PassSystem.Timeout)
		if err != nil {
			log.Error("failed to build pass system client", "error", err)
			os.Exit(1)
		}
		quotaOracle, err = oracle.NewPassSystem(supaClient)
		if err != nil {
			log.Error("failed to build pass system oracle", "error", err)
			os.Exit(1)
		}
	} else {
		log.Warn("PASS_SYSTEM_URL not set, using in-process quota oracle")
		var err error
		quotaOracle, err = oracle.NewInProcess(store)
		if err != nil {
			log.Error("failed to build in-process oracle", "error", err)
			os.Exit(1)
		}
	}

	var auditPublisher ports.AuditPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafkaaudit.New(ctx, cfg.KafkaBrokers, kafkaaudit.WithTopic(cfg.AuditTopic))
		if err != nil {
			log.Error("failed to build kafka audit publisher", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = publisher.Close(shutdownCtx)
		}()
		auditPublisher = publisher
	}

	quotaOpts := []quota.Option{quota.WithLogger(log), quota.WithMetrics(matchMetrics)}
	if auditPublisher != nil {
		quotaOpts = append(quotaOpts, quota.WithAuditPublisher(auditPublisher))
	}
	quotaSvc, err := quota.New(quotaOracle, quotaOpts...)
	if err != nil {
		log.Error("failed to build quota service", "error", err)
		os.Exit(1)
	}

	lifecycleOpts := []lifecycle.Option{lifecycle.WithLogger(log), lifecycle.WithMetrics(matchMetrics)}
	if auditPublisher != nil {
		lifecycleOpts = append(lifecycleOpts, lifecycle.WithAuditPublisher(auditPublisher))
	}
	lifecycleSvc, err := lifecycle.New(store, quotaSvc, lifecycleOpts...)
	if err != nil {
		log.Error("failed to build lifecycle service", "error", err)
		os.Exit(1)
	}

	catalog, err := static.Load()
	if err != nil {
		log.Error("failed to load bundled speaker dataset", "error", err)
		os.Exit(1)
	}
	var primary resolver.Directory
	if db != nil {
		primary = speakerstore.NewPostgresDirectory(db)
	}
	speakerResolver, err := resolver.New(primary, catalog,
		resolver.WithLogger(log),
		resolver.WithPrimaryTimeout(config.SpeakerSourceTimeout),
	)
	if err != nil {
		log.Error("failed to build speaker resolver", "error", err)
		os.Exit(1)
	}

	var speakerSource sphandler.Resolver = speakerResolver
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		speakerSource = cache.New(speakerResolver, redisClient.Client, config.SpeakerCacheTTL, log)
	}

	tokenSvc := token.NewService(cfg.JWTSigningKey, "hashpass.tech", "hashpass-app")

	router := chi.NewRouter()
	mmhandler.New(lifecycleSvc, quotaSvc, log, httpMetrics, tokenSvc).Register(router)
	sphandler.New(speakerSource, log, httpMetrics).Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting hashpass matchmaking server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
