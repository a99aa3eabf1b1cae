package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// timestamps for 2026-02-02 .. 2026-02-04 (UTC midnight)
const (
	ts1 = 1769990400
	ts2 = 1770076800
	ts3 = 1770163200
)

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL"},
      "timestamp": [1769990400, 1770076800, 1770163200],
      "events": {
        "dividends": {"1770076800": {"amount": 0.205, "date": 1770076800}},
        "splits": {"1770163200": {"date": 1770163200, "numerator": 4, "denominator": 1, "splitRatio": "4:1"}}
      },
      "indicators": {
        "quote": [{
          "open":   [150.119995, 151.5, null],
          "high":   [152.339996, 153.6, null],
          "low":    [149.770004, 151.0, null],
          "close":  [151.220001, 153.45, null],
          "volume": [98765432, 87654321, null]
        }]
      }
    }],
    "error": null
  }
}`

const notFoundBody = `{
  "chart": {
    "result": null,
    "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
  }
}`

const quoteSummaryBody = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "longName": "Apple Inc.",
        "currency": "USD",
        "marketCap": {"raw": 2500000000000, "fmt": "2.5T"}
      },
      "assetProfile": {
        "sector": "Technology",
        "industry": "Consumer Electronics"
      }
    }],
    "error": null
  }
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*YahooProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewYahooProvider(5 * time.Second)
	p.BaseURL = srv.URL
	return p, srv
}

func TestHistory_ParsesBarsAndEvents(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval = %q, want 1d", got)
		}
		if got := r.URL.Query().Get("events"); got != "div|split" {
			t.Errorf("events = %q, want div|split", got)
		}
		_, _ = w.Write([]byte(chartBody))
	})

	bars, err := p.History(context.Background(), "AAPL", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	// the third entry is all-null (non-trading day) and must be skipped
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}

	first := bars[0]
	if first.Date.Unix() != ts1 {
		t.Fatalf("first date = %v", first.Date)
	}
	if first.Open != 150.119995 || first.Close != 151.220001 || first.Volume != 98765432 {
		t.Fatalf("unexpected first bar: %+v", first)
	}
	if first.Dividends != 0 || first.StockSplits != 0 {
		t.Fatalf("first bar should carry no events: %+v", first)
	}

	second := bars[1]
	if second.Date.Unix() != ts2 {
		t.Fatalf("second date = %v", second.Date)
	}
	if second.Dividends != 0.205 {
		t.Fatalf("dividend = %v, want 0.205", second.Dividends)
	}
}

func TestHistory_TrimsToRequestedWindow(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chartBody))
	})

	bars, err := p.History(context.Background(), "AAPL", 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}
	if bars[0].Date.Unix() != ts2 {
		t.Fatalf("trim must keep the most recent day, got %v", bars[0].Date)
	}
}

func TestHistory_UnknownSymbolIsEmptyNotError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(notFoundBody))
	})

	bars, err := p.History(context.Background(), "ZZZZINVALID", 10)
	if err != nil {
		t.Fatalf("unknown symbol must not be an error, got %v", err)
	}
	if len(bars) != 0 {
		t.Fatalf("expected empty result, got %d bars", len(bars))
	}
}

func TestHistory_ServerFailure(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	})

	if _, err := p.History(context.Background(), "AAPL", 10); err == nil {
		t.Fatalf("expected error on upstream 500")
	}
}

func TestHistory_APIError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Internal","description":"backend exploded"}}}`))
	})

	_, err := p.History(context.Background(), "AAPL", 10)
	if err == nil {
		t.Fatalf("expected error from chart.error payload")
	}
}

func TestMetadata_FullAndPartial(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(quoteSummaryBody))
	})

	meta, err := p.Metadata(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Name != "Apple Inc." || meta.Currency != "USD" || meta.Sector != "Technology" || meta.Industry != "Consumer Electronics" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if meta.MarketCap == nil || *meta.MarketCap != 2_500_000_000_000 {
		t.Fatalf("market cap = %v", meta.MarketCap)
	}

	// Missing fields map to zero values, currency defaults to USD.
	p2, _ := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[{"price":{}}],"error":null}}`))
	})
	meta, err = p2.Metadata(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("partial metadata must not fail: %v", err)
	}
	if meta.Name != "" || meta.Sector != "" || meta.MarketCap != nil {
		t.Fatalf("expected zero values: %+v", meta)
	}
	if meta.Currency != "USD" {
		t.Fatalf("currency default = %q, want USD", meta.Currency)
	}
}

func TestChartRange(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{1, "5d"},
		{5, "5d"},
		{20, "1mo"},
		{100, "6mo"},
		{250, "1y"},
		{400, "2y"},
		{1000, "5y"},
	}
	for _, tc := range cases {
		if got := chartRange(tc.days); got != tc.want {
			t.Fatalf("chartRange(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}
