package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jbrucker/stock-price-ws/config"
	"github.com/jbrucker/stock-price-ws/internal/api"
	"github.com/jbrucker/stock-price-ws/internal/provider"
	"github.com/jbrucker/stock-price-ws/internal/scheduler"
	"github.com/jbrucker/stock-price-ws/internal/serializer"
	"github.com/jbrucker/stock-price-ws/internal/service"
	"github.com/jbrucker/stock-price-ws/internal/stockinfo"
	"github.com/jbrucker/stock-price-ws/internal/storage"
)

// InitializeApp sets up all application dependencies and returns a fully
// configured Gin router, a cleanup function for graceful shutdown, and any
// error encountered during initialization.
//
// Responsibilities:
//   - Creates the Yahoo Finance provider and the shared price cache.
//   - Connects to PostgreSQL and wires the snapshot recorder, when enabled.
//   - Creates the service, serializer and HTTP handler layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Starts the watchlist cache warmer, when configured.
//   - Provides a cleanup function to release resources.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	yahoo := provider.NewYahooProvider(time.Duration(cfg.Provider.TimeoutSeconds) * time.Second)

	cache, err := stockinfo.NewCache(cfg.Stock.CacheSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create price cache: %w", err)
	}

	// Optional snapshot persistence
	var snapshots storage.SnapshotRepository
	var dbPing func() error
	cleanupDB := func() {}
	if cfg.Snapshots.Enabled {
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		snapshots = storage.NewSnapshotRepository(db)
		dbPing = db.Ping
		cleanupDB = func() { _ = db.Close() }
	}

	// Service layer (business logic)
	svc := service.NewStockService(yahoo, cache, cfg.Stock.DecimalPlaces, snapshots)

	// Wire serializer and HTTP layers
	ser := serializer.New(cfg.Stock.ProtobufEnabled)
	handler := api.NewHandler(svc, ser, cfg.Stock.DefaultLimit)
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(dbPing)
	healthHandler.Register(router)

	// Scheduled cache warming for the configured watchlist
	warmer := scheduler.NewWarmer(svc, cfg.Warmer.Symbols, cfg.Stock.DefaultLimit, cfg.Warmer.CronSpec)
	if err := warmer.Start(); err != nil {
		cleanupDB()
		return nil, nil, err
	}

	cleanup := func() {
		warmer.Stop()
		cleanupDB()
	}

	return router, cleanup, nil
}

// NewWarmService builds the service stack without the HTTP layer, used by
// the one-shot warm mode. Snapshot persistence is wired in when enabled, so
// a warm run records the fetched history.
func NewWarmService() (service.StockService, func(), error) {
	cfg := config.AppConfig

	yahoo := provider.NewYahooProvider(time.Duration(cfg.Provider.TimeoutSeconds) * time.Second)
	cache, err := stockinfo.NewCache(cfg.Stock.CacheSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create price cache: %w", err)
	}

	var snapshots storage.SnapshotRepository
	cleanup := func() {}
	if cfg.Snapshots.Enabled {
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		snapshots = storage.NewSnapshotRepository(db)
		cleanup = func() { _ = db.Close() }
	}

	return service.NewStockService(yahoo, cache, cfg.Stock.DecimalPlaces, snapshots), cleanup, nil
}
