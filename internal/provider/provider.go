package provider

import (
	"context"
	"time"

	"github.com/jbrucker/stock-price-ws/internal/domain/models"
)

// Bar is one raw daily price bar as returned by the upstream provider.
// Values are unrounded; normalization (rounding, optional-field pruning)
// happens downstream.
type Bar struct {
	Date        time.Time
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      int64
	Dividends   float64 // 0 when no dividend was paid that day
	StockSplits float64 // 0 when no split occurred that day
}

// Provider is the upstream source of daily price history and company
// metadata for a ticker symbol.
//
// Contract:
//   - History returns at most `days` bars in ascending date order. Fewer
//     bars than requested is normal (holidays, recent listings). An unknown
//     or delisted symbol yields an empty slice and a nil error; errors are
//     reserved for transport or protocol failures.
//   - Metadata returns company-level fields on a best-effort basis; fields
//     the provider does not know stay at their zero value. Only transport
//     failures produce an error.
type Provider interface {
	History(ctx context.Context, symbol string, days int) ([]Bar, error)
	Metadata(ctx context.Context, symbol string) (*models.StockMetadata, error)
}
