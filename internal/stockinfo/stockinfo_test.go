package stockinfo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jbrucker/stock-price-ws/internal/domain/models"
	"github.com/jbrucker/stock-price-ws/internal/provider"
)

// fakeProvider returns canned bars and counts queries per method.
type fakeProvider struct {
	bars         []provider.Bar
	historyErr   error
	metadata     *models.StockMetadata
	metadataErr  error
	historyCalls int
}

func (f *fakeProvider) History(_ context.Context, _ string, days int) ([]provider.Bar, error) {
	f.historyCalls++
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	if len(f.bars) > days {
		return f.bars[len(f.bars)-days:], nil
	}
	return f.bars, nil
}

func (f *fakeProvider) Metadata(_ context.Context, _ string) (*models.StockMetadata, error) {
	return f.metadata, f.metadataErr
}

var _ provider.Provider = (*fakeProvider)(nil)

func day(offset int) time.Time {
	return time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

// fiveDays mirrors the AAPL example: five raw closes with scraping noise.
func fiveDays() []provider.Bar {
	closes := []float64{151.223, 150.0, 149.8, 152.1, 153.45}
	bars := make([]provider.Bar, 0, len(closes))
	for i, c := range closes {
		bars = append(bars, provider.Bar{
			Date:   day(i),
			Open:   c - 0.5004,
			High:   c + 1.0002,
			Low:    c - 1.2001,
			Close:  c,
			Volume: int64(1000000 + i),
		})
	}
	return bars
}

func newCache(t *testing.T, size int) *Cache {
	t.Helper()
	c, err := NewCache(size)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return c
}

func TestFetch_NormalizesAndRounds(t *testing.T) {
	p := &fakeProvider{bars: fiveDays()}
	s := New("aapl", p, newCache(t, 8), 2)

	bars, err := s.Fetch(context.Background(), 5)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 5 {
		t.Fatalf("expected 5 bars, got %d", len(bars))
	}
	if got := bars[len(bars)-1].Close; got != 153.45 {
		t.Fatalf("last close = %v, want 153.45", got)
	}
	if got := bars[0].Close; got != 151.22 {
		t.Fatalf("first close = %v, want 151.22 (rounded from 151.223)", got)
	}

	// ascending, unique ISO dates
	seen := map[string]bool{}
	for i, b := range bars {
		if seen[b.Date] {
			t.Fatalf("duplicate date %s", b.Date)
		}
		seen[b.Date] = true
		if i > 0 && bars[i-1].Date >= b.Date {
			t.Fatalf("dates not ascending: %s then %s", bars[i-1].Date, b.Date)
		}
	}
	if bars[0].Date != "2026-02-02" {
		t.Fatalf("unexpected first date %s", bars[0].Date)
	}
}

func TestFetch_OptionalFieldsNeverRounded(t *testing.T) {
	bars := fiveDays()
	bars[1].Dividends = 0.20501 // raw value must survive as-is
	bars[2].StockSplits = 4
	bars[3].Dividends = -1 // non-positive values are dropped
	p := &fakeProvider{bars: bars}
	s := New("AAPL", p, newCache(t, 8), 2)

	out, err := s.Fetch(context.Background(), 5)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if out[0].Dividends != nil || out[0].StockSplits != nil {
		t.Fatalf("day 0 should have no optional fields: %+v", out[0])
	}
	if out[1].Dividends == nil || *out[1].Dividends != 0.20501 {
		t.Fatalf("dividend rounded or dropped: %+v", out[1].Dividends)
	}
	if out[2].StockSplits == nil || *out[2].StockSplits != 4 {
		t.Fatalf("split missing: %+v", out[2].StockSplits)
	}
	if out[3].Dividends != nil {
		t.Fatalf("non-positive dividend must be omitted")
	}
}

func TestFetch_FewerBarsThanRequestedIsNotAnError(t *testing.T) {
	p := &fakeProvider{bars: fiveDays()}
	s := New("AAPL", p, newCache(t, 8), 2)

	bars, err := s.Fetch(context.Background(), 50)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 5 {
		t.Fatalf("expected the 5 available bars, got %d", len(bars))
	}
}

func TestFetch_EmptyResultIsNotFound(t *testing.T) {
	p := &fakeProvider{}
	s := New("zzzzinvalid", p, newCache(t, 8), 2)

	_, err := s.Fetch(context.Background(), 10)
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
	if want := "ZZZZINVALID"; err == nil || !strings.Contains(err.Error(), want) {
		t.Fatalf("error should name the symbol %q: %v", want, err)
	}
}

func TestFetch_ProviderFailureIsWrapped(t *testing.T) {
	cause := errors.New("connection refused")
	p := &fakeProvider{historyErr: cause}
	s := New("AAPL", p, newCache(t, 8), 2)

	_, err := s.Fetch(context.Background(), 10)
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %T: %v", err, err)
	}
	if pe.Symbol != "AAPL" {
		t.Fatalf("symbol = %q", pe.Symbol)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause must not be swallowed")
	}
}

func TestFetch_InvalidWindow(t *testing.T) {
	p := &fakeProvider{bars: fiveDays()}
	s := New("AAPL", p, newCache(t, 8), 2)
	if _, err := s.Fetch(context.Background(), 0); err == nil {
		t.Fatalf("expected error for window 0")
	}
	if p.historyCalls != 0 {
		t.Fatalf("provider must not be queried for an invalid window")
	}
}

func TestFetch_CacheHitSkipsProvider(t *testing.T) {
	p := &fakeProvider{bars: fiveDays()}
	cache := newCache(t, 64)

	for i := 0; i < 3; i++ {
		s := New("AAPL", p, cache, 2)
		if _, err := s.Fetch(context.Background(), 5); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if p.historyCalls != 1 {
		t.Fatalf("provider queried %d times, want 1 (cache hit)", p.historyCalls)
	}

	// A different window is a different cache key.
	s := New("AAPL", p, cache, 2)
	if _, err := s.Fetch(context.Background(), 3); err != nil {
		t.Fatalf("fetch window 3: %v", err)
	}
	if p.historyCalls != 2 {
		t.Fatalf("provider queried %d times, want 2", p.historyCalls)
	}
}

func TestFetch_LRUEviction(t *testing.T) {
	p := &fakeProvider{bars: manyDays(70)}
	cache := newCache(t, 64)

	// Fill the cache with 64 distinct windows, then add a 65th: the first
	// key (window 1) is least recently used and must be evicted.
	for w := 1; w <= 65; w++ {
		s := New("AAPL", p, cache, 2)
		if _, err := s.Fetch(context.Background(), w); err != nil {
			t.Fatalf("fetch window %d: %v", w, err)
		}
	}
	queries := p.historyCalls
	if queries != 65 {
		t.Fatalf("expected 65 provider queries, got %d", queries)
	}

	// window 2 is still cached
	s := New("AAPL", p, cache, 2)
	if _, err := s.Fetch(context.Background(), 2); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if p.historyCalls != queries {
		t.Fatalf("window 2 should be a cache hit")
	}

	// window 1 was evicted and requires a fresh query
	s = New("AAPL", p, cache, 2)
	if _, err := s.Fetch(context.Background(), 1); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if p.historyCalls != queries+1 {
		t.Fatalf("window 1 should have been evicted, calls=%d", p.historyCalls)
	}
}

func TestFetch_CachedBarsAreIsolatedFromCallers(t *testing.T) {
	cache := newCache(t, 8)
	p := &fakeProvider{bars: fiveDays()}

	first := New("AAPL", p, cache, 2)
	bars, err := first.Fetch(context.Background(), 5)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := bars[0].Close

	// A caller scribbling over its slice must not poison the cache.
	bars[0].Close = -1

	second := New("AAPL", p, cache, 2)
	again, err := second.Fetch(context.Background(), 5)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if p.historyCalls != 1 {
		t.Fatalf("second fetch must be served from cache, calls=%d", p.historyCalls)
	}
	if again[0].Close != want {
		t.Fatalf("cached close = %v, want %v (caller mutation leaked into the cache)", again[0].Close, want)
	}
}

func TestRecords_BeforeFetch(t *testing.T) {
	s := New("AAPL", &fakeProvider{}, newCache(t, 8), 2)
	if _, err := s.Records(); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, err := s.Result(context.Background(), false); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData from Result, got %v", err)
	}
}

func TestResult_SymbolUppercaseAndFreshTimestamp(t *testing.T) {
	p := &fakeProvider{bars: fiveDays()}
	s := New("aapl", p, newCache(t, 8), 2)
	if _, err := s.Fetch(context.Background(), 5); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	times := []time.Time{
		time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 10, 9, 5, 0, 0, time.UTC),
	}
	i := 0
	s.now = func() time.Time { t := times[i]; i++; return t }

	r1, err := s.Result(context.Background(), false)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	r2, err := s.Result(context.Background(), false)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if r1.Symbol != "AAPL" {
		t.Fatalf("symbol = %q, want AAPL", r1.Symbol)
	}
	if !r2.RetrievedAt.After(r1.RetrievedAt) {
		t.Fatalf("retrieved_at must be recomputed per render: %v vs %v", r1.RetrievedAt, r2.RetrievedAt)
	}
	if len(r1.Prices) != 5 {
		t.Fatalf("expected 5 prices, got %d", len(r1.Prices))
	}
}

func TestResult_MetadataLazyAndDegrading(t *testing.T) {
	meta := &models.StockMetadata{Name: "Apple Inc.", Currency: "USD"}
	p := &fakeProvider{bars: fiveDays(), metadata: meta}
	s := New("AAPL", p, newCache(t, 8), 2)
	if _, err := s.Fetch(context.Background(), 5); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	r, err := s.Result(context.Background(), false)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if r.Metadata != nil {
		t.Fatalf("metadata must not be looked up unless requested")
	}

	r, err = s.Result(context.Background(), true)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if r.Metadata == nil || r.Metadata.Name != "Apple Inc." {
		t.Fatalf("metadata missing: %+v", r.Metadata)
	}

	// A failing metadata lookup degrades to a nil field, not an error.
	p.metadataErr = errors.New("quoteSummary down")
	r, err = s.Result(context.Background(), true)
	if err != nil {
		t.Fatalf("metadata failure must not abort the price response: %v", err)
	}
	if r.Metadata != nil {
		t.Fatalf("expected nil metadata after lookup failure")
	}
}

func manyDays(n int) []provider.Bar {
	bars := make([]provider.Bar, 0, n)
	for i := 0; i < n; i++ {
		bars = append(bars, provider.Bar{
			Date:   day(i),
			Open:   100 + float64(i),
			High:   101 + float64(i),
			Low:    99 + float64(i),
			Close:  100.5 + float64(i),
			Volume: int64(1000 + i),
		})
	}
	return bars
}
