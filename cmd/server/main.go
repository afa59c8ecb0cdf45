package main

import (
	"context"   // Context for Redis and shutdown
	"errors"    // Server close detection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"digiwallet/internal/api"     // HTTP handlers and router
	"digiwallet/internal/cache"   // Wallet read cache
	"digiwallet/internal/config"  // Configuration
	"digiwallet/internal/db"      // Database bootstrap
	"digiwallet/internal/metrics" // Prometheus collectors
	"digiwallet/internal/service" // Business services
	"digiwallet/internal/store"   // Persistence

	"github.com/gin-gonic/gin"                                  // Gin web framework
	"github.com/prometheus/client_golang/prometheus"            // Metrics registry
	"github.com/prometheus/client_golang/prometheus/collectors" // Runtime collectors
	"github.com/redis/go-redis/v9"                              // Redis client
	"github.com/sirupsen/logrus"                                // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	setupLogger(cfg)

	// Connect to the database and bring the schema up to date
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logrus.Fatalf("failed to get DB handle: %v", err)
	}
	defer sqlDB.Close()

	walletCache := setupCache(cfg) // Redis when configured, no-op otherwise

	// Metrics registry with runtime collectors
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Wire services
	gateway := store.New(gdb)
	ledger := service.NewLedgerService(gateway, walletCache, metrics.NewLedger(reg))
	services := api.Services{
		Users:      service.NewUserService(gateway),
		Wallets:    service.NewWalletService(gateway, walletCache, cfg.CacheTTL, ledger),
		Cards:      service.NewCardService(gateway),
		Categories: service.NewCategoryService(gateway),
		Ledger:     ledger,
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := api.NewRouter(services, api.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,       // Frontend origins
		TrustedProxies: []string{"127.0.0.1"}, // Local reverse proxy
		Gatherer:       reg,                   // /metrics source
		HealthCheck:    sqlDB.PingContext,     // DB liveness
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DBDriver}).Info("Server running") // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for SIGINT or SIGTERM and drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithField("error", err.Error()).Error("Forced shutdown")
	}
}

// setupLogger configures logrus from the config
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{}) // Machine readable in production
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// setupCache connects to Redis when REDIS_ADDR is set. An unreachable Redis
// disables caching instead of stopping the server.
func setupCache(cfg *config.Config) cache.Cache {
	if cfg.RedisAddr == "" {
		logrus.Info("REDIS_ADDR not set, wallet cache disabled")
		return cache.Noop{}
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.WithFields(logrus.Fields{"addr": cfg.RedisAddr, "error": err.Error()}).Warn("Redis unreachable, wallet cache disabled")
		_ = redisClient.Close()
		return cache.Noop{}
	}
	return cache.NewRedis(redisClient)
}
