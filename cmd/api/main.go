package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/token"
)

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	return logger
}

func main() {

	cfg := config.Load()

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	httperr.Configure(cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.JWTSecret == "changeme" {
		logger.Warn("JWT_SECRET is not set, using the development default")
	}
	if !timezone.IsValid(cfg.Timezone) {
		logger.Warn("invalid APP_TIMEZONE, falling back to UTC", zap.String("timezone", cfg.Timezone))
	}

	ctx := context.Background()

	store, err := dbpkg.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	// ======================================================
	// METRICS / AUDIT
	// ======================================================
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	dispatcher := audit.NewDispatcher(audit.New(store.Audit), logger, m)

	deps := routes.Deps{
		Config:   cfg,
		Store:    store,
		Tokens:   token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL()),
		Logger:   logger,
		Audit:    dispatcher,
		Metrics:  m,
		Gatherer: registry,
	}

	// ======================================================
	// OPTIONAL INTEGRATIONS
	// ======================================================
	if cfg.RedisAddr != "" {
		client := cache.NewRedisClient(cache.Options{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = client.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, salon cache falls back to the store", zap.Error(err))
		}
		cancel()

		deps.SalonCache = cache.NewSalonCache(store.Salons, cache.NewRedisCache(client), cfg.SalonCacheTTL, logger)
		logger.Info("salon cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.SalonCacheTTL))
	}

	if cfg.ImageUploadsEnabled() {
		deps.Images = storage.NewS3Uploader(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		logger.Info("salon image uploads enabled", zap.String("bucket", cfg.S3Bucket))
	}

	if !cfg.GoogleOAuthEnabled() {
		logger.Info("google login disabled, GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET missing")
	}

	router := routes.NewRouter(deps)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("address", cfg.Addr()), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("audit queue not drained", zap.Error(err))
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Warn("failed to close store", zap.Error(err))
	}

	logger.Info("server exited")
}
