package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rafaeltorres/rocketcart-backend/api/controllers"
	"github.com/rafaeltorres/rocketcart-backend/api/routes"
	"github.com/rafaeltorres/rocketcart-backend/internal/cart"
	"github.com/rafaeltorres/rocketcart-backend/internal/catalog"
	"github.com/rafaeltorres/rocketcart-backend/internal/notify"
	"github.com/rafaeltorres/rocketcart-backend/internal/store"
	"github.com/rafaeltorres/rocketcart-backend/pkg/config"
	"github.com/rafaeltorres/rocketcart-backend/pkg/db"
	"github.com/rafaeltorres/rocketcart-backend/pkg/logger"
	"github.com/rafaeltorres/rocketcart-backend/pkg/metrics"
	"github.com/rafaeltorres/rocketcart-backend/pkg/redis"
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

	registry := prometheus.NewRegistry()
	cartMetrics := metrics.NewCartMetrics(registry)

	oracles, err := catalog.NewClient(cfg.Catalog, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	pingers := map[string]controllers.Pinger{}

	var snapshots store.Store
	switch cfg.Cart.Backend() {
	case config.StorageRedis:
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		snapshots, err = store.NewRedis(redisClient, cfg.Cart.KeyNamespace)
		if err != nil {
			logg.Error(context.Background(), "failed to create redis store", err)
			os.Exit(1)
		}
		pingers["redis"] = redisClient

	case config.StorageSQL:
		dbClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		snapshots, err = store.NewSQL(dbClient, cfg.Cart.KeyNamespace)
		if err != nil {
			logg.Error(context.Background(), "failed to create sql store", err)
			os.Exit(1)
		}
		pingers["database"] = dbClient

	case config.StorageMemory:
		logg.Warn(context.Background(), "using in-memory cart storage, carts will not survive restarts")
		snapshots = store.NewMemory()

	default:
		logg.Error(context.Background(), "unsupported cart storage backend", nil)
		os.Exit(1)
	}

	manager, err := cart.NewManager(cart.ManagerParams{
		Stock:        oracles,
		Catalog:      oracles,
		Store:        snapshots,
		BaseNotifier: notify.NewLoggerNotifier(logg),
		FeedCapacity: cfg.Cart.FeedCapacity,
		Metrics:      cartMetrics,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Cart.Backend(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:   cfg,
			Logger:   logg,
			Sessions: manager,
			Pingers:  pingers,
			Gatherer: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
