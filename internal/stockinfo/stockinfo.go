// Package stockinfo fetches, normalizes and caches daily price history for
// single ticker symbols.
//
// A StockInfo instance is created per symbol. Fetch populates its price
// table from the provider (or from the shared LRU cache); the render methods
// (Records, Result, Metadata) expose the cached table in the shapes the
// serialization layer consumes.
package stockinfo

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jbrucker/stock-price-ws/internal/domain/models"
	"github.com/jbrucker/stock-price-ws/internal/logger"
	"github.com/jbrucker/stock-price-ws/internal/provider"
)

// DefaultCacheSize bounds the shared (symbol, window) cache.
const DefaultCacheSize = 64

// Key identifies one cached fetch: a symbol and its window size.
type Key struct {
	Symbol string
	Window int
}

// Cache is the shared, concurrency-safe LRU holding normalized price tables
// keyed by (symbol, window). Concurrent identical fetches may each query the
// provider once; the cache tolerates that, last write wins.
type Cache = lru.Cache[Key, []models.PriceBar]

// NewCache creates a bounded LRU cache for normalized price tables.
func NewCache(size int) (*Cache, error) {
	if size < 1 {
		size = DefaultCacheSize
	}
	return lru.New[Key, []models.PriceBar](size)
}

// StockInfo retrieves and renders historical price data for one symbol.
type StockInfo struct {
	symbol   string
	provider provider.Provider
	cache    *Cache
	decimals int
	prices   []models.PriceBar
	fetched  bool
	now      func() time.Time
}

// New creates a StockInfo for symbol. The cache is shared across instances;
// decimals is the number of decimal places price fields are rounded to
// (0 disables rounding).
func New(symbol string, p provider.Provider, cache *Cache, decimals int) *StockInfo {
	return &StockInfo{
		symbol:   strings.TrimSpace(symbol),
		provider: p,
		cache:    cache,
		decimals: decimals,
		now:      time.Now,
	}
}

// Symbol returns the ticker symbol, normalized to uppercase.
func (s *StockInfo) Symbol() string { return strings.ToUpper(s.symbol) }

// Fetch retrieves the most recent `window` trading days for the symbol and
// caches the normalized result, keyed by (symbol, window).
//
// Behavior:
//   - window must be >= 1.
//   - A cache hit skips the provider entirely.
//   - Fewer bars than requested is not an error (holidays, recent listing).
//   - An empty provider result returns an error wrapping ErrSymbolNotFound.
//   - A provider failure returns a *ProviderError wrapping the cause.
func (s *StockInfo) Fetch(ctx context.Context, window int) ([]models.PriceBar, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be a positive number of days, got %d", window)
	}

	key := Key{Symbol: s.Symbol(), Window: window}
	if cached, ok := s.cache.Get(key); ok {
		bars := cloneBars(cached)
		s.prices = bars
		s.fetched = true
		return bars, nil
	}

	raw, err := s.provider.History(ctx, s.symbol, window)
	if err != nil {
		return nil, &ProviderError{Symbol: s.Symbol(), Err: err}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no data available for symbol %q, check that the symbol is correct: %w",
			s.Symbol(), ErrSymbolNotFound)
	}

	bars := s.normalize(raw)
	s.cache.Add(key, cloneBars(bars))
	s.prices = bars
	s.fetched = true
	return bars, nil
}

// cloneBars copies a price table so cache entries and caller-held slices
// never share a backing array. The copy is shallow; records are treated as
// values and the optional pointers are never written through.
func cloneBars(bars []models.PriceBar) []models.PriceBar {
	out := make([]models.PriceBar, len(bars))
	copy(out, bars)
	return out
}

// normalize converts raw provider bars into PriceBar records: ISO dates,
// rounded price fields, and dividends/splits kept only when positive and
// never rounded.
func (s *StockInfo) normalize(raw []provider.Bar) []models.PriceBar {
	bars := make([]models.PriceBar, 0, len(raw))
	for _, b := range raw {
		bar := models.PriceBar{
			Date:   b.Date.Format("2006-01-02"),
			Open:   s.round(b.Open),
			High:   s.round(b.High),
			Low:    s.round(b.Low),
			Close:  s.round(b.Close),
			Volume: b.Volume,
		}
		if bar.Volume < 0 {
			bar.Volume = 0
		}
		if b.Dividends > 0 {
			d := b.Dividends
			bar.Dividends = &d
		}
		if b.StockSplits > 0 {
			sp := b.StockSplits
			bar.StockSplits = &sp
		}
		bars = append(bars, bar)
	}
	return bars
}

func (s *StockInfo) round(v float64) float64 {
	if s.decimals <= 0 {
		return v
	}
	pow := math.Pow(10, float64(s.decimals))
	return math.Round(v*pow) / pow
}

// Records returns the cached price table, one record per trading day in
// ascending date order. It fails with ErrNoData when Fetch has not
// succeeded yet.
func (s *StockInfo) Records() ([]models.PriceBar, error) {
	if !s.fetched {
		return nil, ErrNoData
	}
	return s.prices, nil
}

// Result wraps the cached price table in a StockResult. RetrievedAt is the
// render time, recomputed on every call.
//
// When includeMetadata is set, company metadata is looked up from the
// provider. A metadata failure does not abort the price response; the
// result degrades to a nil Metadata field and the failure is logged.
func (s *StockInfo) Result(ctx context.Context, includeMetadata bool) (*models.StockResult, error) {
	prices, err := s.Records()
	if err != nil {
		return nil, err
	}

	result := &models.StockResult{
		Symbol:      s.Symbol(),
		RetrievedAt: s.now(),
		Prices:      prices,
	}
	if includeMetadata {
		meta, err := s.Metadata(ctx)
		if err != nil {
			log := logger.With("stockinfo")
			log.Warn().Str("symbol", s.Symbol()).Err(err).Msg("metadata lookup failed, responding without metadata")
		} else {
			result.Metadata = meta
		}
	}
	return result, nil
}

// Metadata looks up company metadata for the symbol. Missing fields come
// back as zero values; only a failed provider call produces an error.
func (s *StockInfo) Metadata(ctx context.Context) (*models.StockMetadata, error) {
	meta, err := s.provider.Metadata(ctx, s.symbol)
	if err != nil {
		return nil, &ProviderError{Symbol: s.Symbol(), Err: err}
	}
	return meta, nil
}
