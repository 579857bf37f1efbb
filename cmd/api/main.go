package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rithysok/restock-backend/api/routes"
	"github.com/rithysok/restock-backend/internal/cart"
	"github.com/rithysok/restock-backend/internal/items"
	"github.com/rithysok/restock-backend/internal/orders"
	"github.com/rithysok/restock-backend/internal/seed"
	"github.com/rithysok/restock-backend/internal/state"
	"github.com/rithysok/restock-backend/internal/stores"
	"github.com/rithysok/restock-backend/internal/suppliers"
	syncpkg "github.com/rithysok/restock-backend/internal/sync"
	"github.com/rithysok/restock-backend/pkg/config"
	"github.com/rithysok/restock-backend/pkg/db"
	"github.com/rithysok/restock-backend/pkg/logger"
	"github.com/rithysok/restock-backend/pkg/metrics"
	"github.com/rithysok/restock-backend/pkg/migrate"
	"github.com/rithysok/restock-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency disabled")
	}

	registry := prometheus.NewRegistry()
	syncMetrics := metrics.NewSyncMetrics(registry)

	syncer, err := syncpkg.NewSyncer(
		items.NewRepository(dbClient.DB()),
		suppliers.NewRepository(dbClient.DB()),
		orders.NewRepository(dbClient.DB()),
		cart.NewRepository(dbClient.DB()),
		syncMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build syncer", err)
		os.Exit(1)
	}

	store, err := state.New(state.Params{
		Remote: syncer,
		Seed:   seed.Load,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build state store", err)
		os.Exit(1)
	}
	if err := store.Load(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to load state store", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			Store:      store,
			StoresRepo: stores.NewRepository(dbClient.DB()),
			DB:         dbClient,
			Redis:      redisClient,
			Registry:   registry,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-shutdown
	logg.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// push whatever is in memory before the process dies
	if err := store.Flush(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "final sync flush failed", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "server shutdown failed", err)
	}
}
