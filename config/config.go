package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// It is composed of smaller structs representing the different concerns of
// the service: the HTTP server, price normalization and caching, the
// protobuf capability, the optional cache warmer and the optional Postgres
// snapshot recorder.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	DEFAULT_LIMIT=100
//	DECIMAL_PLACES=2
//	CACHE_SIZE=64
//	PROTOBUF_ENABLED=true
//	PROVIDER_TIMEOUT_SECONDS=30
//	WATCH_SYMBOLS=AAPL,MSFT
//	REFRESH_CRON=0 30 13 * * MON-FRI
//	SNAPSHOTS_ENABLED=false
//	POSTGRES_HOST=localhost
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Stock     StockConfig     // price normalization and caching knobs
	Provider  ProviderConfig  // upstream market-data provider settings
	Warmer    WarmerConfig    // scheduled cache-warming settings
	Snapshots SnapshotsConfig // optional price snapshot persistence
	Postgres  PostgresConfig  // PostgreSQL connection settings (snapshots)
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// StockConfig controls how fetched price history is normalized and cached.
//
// Fields:
//   - DefaultLimit: window size used when a request omits ?limit.
//   - DecimalPlaces: open/high/low/close are rounded to this many decimal
//     places to suppress scraping noise; 0 disables rounding. Dividends and
//     stock splits are never rounded.
//   - CacheSize: capacity of the (symbol, window) LRU cache.
//   - ProtobufEnabled: whether the binary response format is available in
//     this deployment. When false, protobuf requests get HTTP 501.
type StockConfig struct {
	DefaultLimit    int
	DecimalPlaces   int
	CacheSize       int
	ProtobufEnabled bool
}

// ProviderConfig holds settings for the upstream market-data provider.
type ProviderConfig struct {
	TimeoutSeconds int // HTTP client timeout toward the provider
}

// WarmerConfig configures the scheduled watchlist refresh. An empty symbol
// list disables the warmer entirely.
type WarmerConfig struct {
	Symbols  []string // tickers to keep warm in the cache
	CronSpec string   // robfig/cron spec (with seconds field)
}

// SnapshotsConfig toggles persistence of fetched price bars to Postgres.
type SnapshotsConfig struct {
	Enabled bool
}

// PostgresConfig defines connection details for PostgreSQL, used only when
// snapshot persistence is enabled.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read throughout the application
// instead of reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from a .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure required fields are sane.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig()
//     terminates the process with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("DEFAULT_LIMIT", 100)
	viper.SetDefault("DECIMAL_PLACES", 2)
	viper.SetDefault("CACHE_SIZE", 64)
	viper.SetDefault("PROTOBUF_ENABLED", true)

	viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 30)

	viper.SetDefault("WATCH_SYMBOLS", "")
	// Weekdays at 21:30 UTC, shortly after the US market close.
	viper.SetDefault("REFRESH_CRON", "0 30 21 * * MON-FRI")

	viper.SetDefault("SNAPSHOTS_ENABLED", false)
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "stockprices")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Stock: StockConfig{
			DefaultLimit:    viper.GetInt("DEFAULT_LIMIT"),
			DecimalPlaces:   viper.GetInt("DECIMAL_PLACES"),
			CacheSize:       viper.GetInt("CACHE_SIZE"),
			ProtobufEnabled: viper.GetBool("PROTOBUF_ENABLED"),
		},
		Provider: ProviderConfig{
			TimeoutSeconds: viper.GetInt("PROVIDER_TIMEOUT_SECONDS"),
		},
		Warmer: WarmerConfig{
			Symbols:  splitSymbols(viper.GetString("WATCH_SYMBOLS")),
			CronSpec: viper.GetString("REFRESH_CRON"),
		},
		Snapshots: SnapshotsConfig{
			Enabled: viper.GetBool("SNAPSHOTS_ENABLED"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	// Construct Postgres DSN (used by database/sql when snapshots are on)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// splitSymbols turns a comma-separated watchlist into uppercase tickers,
// dropping empty entries.
func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		sym := strings.ToUpper(strings.TrimSpace(part))
		if sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// validateConfig ensures required variables are present and sane, and
// terminates the application if they are not.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects offending ones in a slice.
//   - If any are invalid, logs them and terminates with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Stock.DefaultLimit < 1 {
		missing = append(missing, "DEFAULT_LIMIT")
	}
	if AppConfig.Stock.DecimalPlaces < 0 {
		missing = append(missing, "DECIMAL_PLACES")
	}
	if AppConfig.Stock.CacheSize < 1 {
		missing = append(missing, "CACHE_SIZE")
	}
	if AppConfig.Provider.TimeoutSeconds < 1 {
		missing = append(missing, "PROVIDER_TIMEOUT_SECONDS")
	}
	if AppConfig.Snapshots.Enabled {
		if AppConfig.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if AppConfig.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if AppConfig.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if AppConfig.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}
