package main

//
//  @title           stock-price-ws API
//  @version         1.0
//  @description     Web service for historical stock price data with JSON and protobuf responses.
//  @termsOfService  https://github.com/jbrucker/stock-price-ws
//  @contact.name    API Support
//  @contact.url     https://github.com/jbrucker/stock-price-ws
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        stock
//  @tag.description Endpoints for querying daily price history
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jbrucker/stock-price-ws/config"
	_ "github.com/jbrucker/stock-price-ws/docs" // swagger docs
	"github.com/jbrucker/stock-price-ws/internal/app"
	"github.com/jbrucker/stock-price-ws/internal/logger"
	"github.com/jbrucker/stock-price-ws/internal/scheduler"
)

// startServer initializes and starts the HTTP server in a separate
// goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up
// resources when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the stock-price-ws application.
//
// Modes (selected via --mode flag):
//   - api:  Starts the REST API serving price history.
//   - warm: Fetches the watchlist once (populating snapshots when enabled)
//     and exits. Useful as a smoke check and for pre-loading the snapshot
//     table.
//
// Flags:
//   - --mode:    Execution mode ("api" or "warm"). Default: "api".
//   - --port:    Port for the API server. Defaults to SERVER_PORT from config.
//   - --symbols: Comma-separated tickers for warm mode. Defaults to WATCH_SYMBOLS.
//   - --limit:   Trading-day window for warm mode. Defaults to DEFAULT_LIMIT.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or warm")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	symbols := flag.String("symbols", "", "Comma-separated symbols for warm mode (default: WATCH_SYMBOLS)")
	limit := flag.Int("limit", config.AppConfig.Stock.DefaultLimit, "Trading-day window for warm mode")
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "warm":
		watchlist := config.AppConfig.Warmer.Symbols
		if *symbols != "" {
			watchlist = nil
			for _, s := range strings.Split(*symbols, ",") {
				if sym := strings.ToUpper(strings.TrimSpace(s)); sym != "" {
					watchlist = append(watchlist, sym)
				}
			}
		}
		if len(watchlist) == 0 {
			logger.L().Fatal().Msg("warm mode needs --symbols or WATCH_SYMBOLS")
		}

		svc, cleanup, err := app.NewWarmService()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer cleanup()

		warmer := scheduler.NewWarmer(svc, watchlist, *limit, "")
		if err := warmer.RefreshOnce(ctx); err != nil {
			logger.L().Fatal().Err(err).Msg("warm run failed")
		}
		logger.L().Info().Int("symbols", len(watchlist)).Msg("warm run completed")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
