// Package service holds the business logic between the HTTP handlers and
// the stockinfo retrieval layer.
package service

import (
	"context"
	"strings"

	"github.com/jbrucker/stock-price-ws/internal/analysis"
	"github.com/jbrucker/stock-price-ws/internal/domain/models"
	"github.com/jbrucker/stock-price-ws/internal/logger"
	"github.com/jbrucker/stock-price-ws/internal/provider"
	"github.com/jbrucker/stock-price-ws/internal/stockinfo"
	"github.com/jbrucker/stock-price-ws/internal/storage"
)

// StockService defines the operations the HTTP layer depends on. It
// decouples handlers from data retrieval and keeps HTTP semantics out of
// the lower layers.
type StockService interface {
	// History fetches the most recent `limit` trading days for symbol and
	// returns the renderable result. Metadata is looked up only when
	// includeMetadata is set.
	History(ctx context.Context, symbol string, limit int, includeMetadata bool) (*models.StockResult, error)

	// Analyze fetches the same window and reduces it to summary statistics.
	Analyze(ctx context.Context, symbol string, limit int) (*models.PriceAnalysis, error)
}

type stockService struct {
	provider  provider.Provider
	cache     *stockinfo.Cache
	decimals  int
	snapshots storage.SnapshotRepository // nil when snapshots are disabled
}

// NewStockService constructs the default StockService. snapshots may be nil
// to disable persistence of fetched windows.
func NewStockService(p provider.Provider, cache *stockinfo.Cache, decimals int, snapshots storage.SnapshotRepository) StockService {
	return &stockService{provider: p, cache: cache, decimals: decimals, snapshots: snapshots}
}

func (s *stockService) History(ctx context.Context, symbol string, limit int, includeMetadata bool) (*models.StockResult, error) {
	info := stockinfo.New(symbol, s.provider, s.cache, s.decimals)
	bars, err := info.Fetch(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.record(info.Symbol(), bars)
	return info.Result(ctx, includeMetadata)
}

func (s *stockService) Analyze(ctx context.Context, symbol string, limit int) (*models.PriceAnalysis, error) {
	info := stockinfo.New(symbol, s.provider, s.cache, s.decimals)
	bars, err := info.Fetch(ctx, limit)
	if err != nil {
		return nil, err
	}
	return analysis.Analyze(info.Symbol(), bars)
}

// record persists a fetched window when the snapshot recorder is wired in.
// Persistence is best-effort: a failure is logged and never fails the
// request that triggered it.
func (s *stockService) record(symbol string, bars []models.PriceBar) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveBars(strings.ToUpper(symbol), bars); err != nil {
		log := logger.With("service")
		log.Warn().Str("symbol", symbol).Err(err).Msg("snapshot persistence failed")
	}
}
