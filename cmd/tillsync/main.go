package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/tillsync/internal/aggregation"
	corecfg "github.com/aevon-lab/tillsync/internal/core/config"
	"github.com/aevon-lab/tillsync/internal/core/storage"
	"github.com/aevon-lab/tillsync/internal/core/storage/memory"
	"github.com/aevon-lab/tillsync/internal/core/storage/postgres"
	"github.com/aevon-lab/tillsync/internal/devicesync"
	"github.com/aevon-lab/tillsync/internal/ingestion"
	"github.com/aevon-lab/tillsync/internal/lock"
	"github.com/aevon-lab/tillsync/internal/metrics"
	"github.com/aevon-lab/tillsync/internal/migrations"
	"github.com/aevon-lab/tillsync/internal/projection"
	"github.com/aevon-lab/tillsync/internal/server"
	"github.com/aevon-lab/tillsync/internal/tenant"
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	flag.Parse()

	// 0. Initialize Logger with defaults until config is known
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))
	slog.Info("Loaded config",
		"database", cfg.Database.Type,
		"nats", cfg.NATS.URL,
		"lock", cfg.Lock.Backend,
		"scheduler", cfg.Scheduler.Enabled,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Initialize Storage
	store, closeStore, err := openStore(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// 3. Device transport (dialed lazily on first cycle)
	channel := devicesync.NewClient(devicesync.Options{
		URL:            cfg.NATS.URL,
		Name:           cfg.NATS.Name,
		RequestTimeout: cfg.NATS.RequestTimeout,
	})
	defer channel.Close()

	// 4. Business lock
	locker, closeLock, err := openLocker(ctx, cfg.Lock)
	if err != nil {
		slog.Error("Failed to initialize business lock", "error", err)
		os.Exit(1)
	}
	defer closeLock()

	// 5. Orchestrator + tenant resolution
	var recorder *metrics.Metrics
	if cfg.Metrics.Enabled {
		recorder = metrics.New()
	}
	orchestrator := aggregation.NewOrchestrator(store, channel, locker,
		aggregation.WithMetrics(recorder),
		aggregation.WithOpTimeout(cfg.Database.OpTimeout),
	)
	resolver := tenant.NewResolver(store, cfg.Tenant.CacheSize, cfg.Tenant.CacheTTL)
	auth := tenant.Middleware(resolver)

	// 6. HTTP surface
	srvOpts := server.Options{
		Addr:            cfg.Server.Addr(),
		Mode:            cfg.Server.Mode,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	if recorder != nil {
		srvOpts.MetricsPath = cfg.Metrics.Path
		srvOpts.MetricsHandler = recorder.Handler()
	}
	srv := server.New(srvOpts, store)
	ingestion.NewService(orchestrator, auth).RegisterRoutes(srv.Engine)
	projection.NewService(store, auth).RegisterRoutes(srv.Engine)

	// 7. Start Services
	if cfg.Scheduler.Enabled {
		scheduler := aggregation.NewScheduler(cfg.Scheduler.Interval, cfg.Scheduler.Concurrency, store, orchestrator)
		go func() {
			if err := scheduler.Start(ctx); err != nil {
				slog.Error("Scheduler stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Device poll scheduler disabled by config")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func newLogger(cfg corecfg.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func openStore(cfg corecfg.DatabaseConfig) (storage.DocumentStore, func(), error) {
	if cfg.Type == "memory" {
		slog.Warn("Using in-memory store; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	// Migrations run before the adapter validates the documents table.
	db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(db, cfg.AutoMigrate); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	adapter, err := postgres.NewAdapterFromDB(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return adapter, func() { _ = adapter.Close() }, nil
}

func openLocker(ctx context.Context, cfg corecfg.LockConfig) (lock.Locker, func(), error) {
	if cfg.Backend != "redis" {
		return lock.NewLocal(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	slog.Info("Using Redis business lock", "addr", cfg.Redis.Addr, "ttl", cfg.TTL)
	return lock.NewRedis(client, cfg.TTL, cfg.RetryInterval), func() { _ = client.Close() }, nil
}
