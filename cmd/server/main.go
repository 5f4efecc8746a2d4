package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"seopages-backend-go/internal/cache"
	"seopages-backend-go/internal/config"
	"seopages-backend-go/internal/db"
	httpapi "seopages-backend-go/internal/http"
	"seopages-backend-go/internal/logging"
	"seopages-backend-go/internal/metrics"
	"seopages-backend-go/internal/migrations"
	"seopages-backend-go/internal/services"
	"seopages-backend-go/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.Development)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	metrics.Init()

	contentStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("store setup failed", zap.Error(err))
	}
	defer func() { _ = contentStore.Close() }()

	var resolveCache *cache.ResolveCache
	if cfg.RedisAddr != "" {
		resolveCache = cache.New(cfg.RedisAddr, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		defer func() { _ = resolveCache.Close() }()
		logger.Info("resolve cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := services.NewViewHub()
	go hub.Run(ctx)
	go services.ReconcileLoop(ctx, contentStore, time.Duration(cfg.ReconcileSeconds)*time.Second, logger)

	resolver := services.NewResolver(contentStore, resolveCache,
		time.Duration(cfg.ResolveTimeoutMillis)*time.Millisecond, logger)
	recorder := services.NewViewRecorder(contentStore, hub, logger)
	server := httpapi.NewServer(contentStore, cfg, resolver, recorder, hub, logger)

	addr := ":8080"
	if value := os.Getenv("PORT"); value != "" {
		addr = ":" + value
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	cancel()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(shutdownCtx)
	logger.Info("shutdown complete")
}

// openStore picks the backing store. DATABASE_URL=memory runs without
// Postgres for local development.
func openStore(cfg config.Config, logger *zap.Logger) (store.ContentStore, error) {
	if cfg.DatabaseURL == "memory" {
		logger.Warn("using in-memory store, data will not survive restarts")
		return store.NewMemoryStore(), nil
	}
	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migrations.Apply(database, "migrations"); err != nil {
		return nil, err
	}
	return store.NewPostgresStore(database), nil
}
