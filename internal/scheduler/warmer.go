// Package scheduler keeps the price cache warm for a configured watchlist
// by refreshing it on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/jbrucker/stock-price-ws/internal/logger"
	"github.com/jbrucker/stock-price-ws/internal/service"
)

// maxConcurrentRefreshes bounds parallel provider queries during a refresh
// run, so a large watchlist does not hammer the upstream scraper.
const maxConcurrentRefreshes = 4

// Warmer schedules periodic refreshes of a symbol watchlist. Each run
// fetches every symbol through the regular service path, which populates
// the shared LRU cache as a side effect.
type Warmer struct {
	cron    *cron.Cron
	svc     service.StockService
	symbols []string
	limit   int
	spec    string
}

// NewWarmer creates a Warmer refreshing `symbols` with window size `limit`
// on the given cron spec (with seconds field).
func NewWarmer(svc service.StockService, symbols []string, limit int, spec string) *Warmer {
	return &Warmer{
		cron:    cron.New(cron.WithSeconds()),
		svc:     svc,
		symbols: symbols,
		limit:   limit,
		spec:    spec,
	}
}

// Start registers the refresh job and starts the cron scheduler. It is a
// no-op when the watchlist is empty.
func (w *Warmer) Start() error {
	if len(w.symbols) == 0 {
		return nil
	}
	log := logger.With("warmer")
	_, err := w.cron.AddFunc(w.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := w.RefreshOnce(ctx); err != nil {
			log.Warn().Err(err).Msg("scheduled refresh finished with failures")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh cron spec %q: %w", w.spec, err)
	}
	w.cron.Start()
	log.Info().Strs("symbols", w.symbols).Str("cron", w.spec).Msg("cache warmer started")
	return nil
}

// Stop halts the cron scheduler. Running jobs complete.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
}

// RefreshOnce fetches every watchlist symbol once, bounded to
// maxConcurrentRefreshes parallel queries. A failing symbol is logged and
// does not stop the others; the returned error summarizes the failure
// count.
func (w *Warmer) RefreshOnce(ctx context.Context) error {
	log := logger.With("warmer")
	var failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRefreshes)
	for _, symbol := range w.symbols {
		sym := symbol
		g.Go(func() error {
			if _, err := w.svc.History(gctx, sym, w.limit, false); err != nil {
				failures.Add(1)
				log.Warn().Str("symbol", sym).Err(err).Msg("refresh failed")
				return nil // keep refreshing the rest
			}
			log.Debug().Str("symbol", sym).Msg("refreshed")
			return nil
		})
	}
	_ = g.Wait()

	if n := failures.Load(); n > 0 {
		return fmt.Errorf("%d of %d symbols failed to refresh", n, len(w.symbols))
	}
	return nil
}
