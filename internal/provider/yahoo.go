package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/jbrucker/stock-price-ws/internal/domain/models"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// browser-like UA; Yahoo rejects the default Go user agent
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// YahooProvider implements Provider using the public Yahoo Finance API:
// v8 chart for daily price history (including dividend and split events)
// and v10 quoteSummary for company metadata.
type YahooProvider struct {
	Client  *http.Client
	BaseURL string // overridable for tests
}

// NewYahooProvider creates a Yahoo Finance provider with the given request
// timeout.
func NewYahooProvider(timeout time.Duration) *YahooProvider {
	return &YahooProvider{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: defaultBaseURL,
	}
}

// chartRange maps a day count onto the smallest Yahoo range parameter that
// covers it. Yahoo counts calendar time, so ranges overshoot trading days;
// the response is trimmed to the requested count afterwards.
func chartRange(days int) string {
	switch {
	case days <= 5:
		return "5d"
	case days <= 20:
		return "1mo"
	case days <= 60:
		return "3mo"
	case days <= 120:
		return "6mo"
	case days <= 250:
		return "1y"
	case days <= 500:
		return "2y"
	default:
		return "5y"
	}
}

// History fetches up to `days` daily bars for symbol from the Yahoo chart
// API. An unknown symbol returns an empty slice with a nil error.
func (p *YahooProvider) History(ctx context.Context, symbol string, days int) ([]Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s&events=div%%7Csplit",
		p.BaseURL, url.PathEscape(symbol), chartRange(days))

	body, status, err := p.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	doc := gjson.ParseBytes(body)
	if apiErr := doc.Get("chart.error"); apiErr.Exists() && apiErr.Type != gjson.Null {
		// "Not Found" means unknown/delisted symbol, which is an empty
		// result rather than a failure.
		if apiErr.Get("code").String() == "Not Found" {
			return nil, nil
		}
		return nil, fmt.Errorf("yahoo chart %s: %s", symbol, apiErr.Get("description").String())
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo chart %s: status %d", symbol, status)
	}

	result := doc.Get("chart.result.0")
	timestamps := result.Get("timestamp").Array()
	if !result.Exists() || len(timestamps) == 0 {
		return nil, nil
	}

	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	dividends := eventsByDay(result.Get("events.dividends"), "amount")
	splits := splitsByDay(result.Get("events.splits"))

	bars := make([]Bar, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(opens) || i >= len(highs) || i >= len(lows) || i >= len(closes) {
			break
		}
		// null entries mark non-trading days in some responses
		if opens[i].Type == gjson.Null && closes[i].Type == gjson.Null {
			continue
		}
		day := time.Unix(ts.Int(), 0).UTC()
		key := day.Format("2006-01-02")
		bar := Bar{
			Date:        day,
			Open:        opens[i].Float(),
			High:        highs[i].Float(),
			Low:         lows[i].Float(),
			Close:       closes[i].Float(),
			Dividends:   dividends[key],
			StockSplits: splits[key],
		}
		if i < len(volumes) {
			bar.Volume = volumes[i].Int()
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	// Trim to the requested count, keeping the most recent days.
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// Metadata fetches company information from the quoteSummary API. Missing
// fields are left at their zero value; only transport or protocol failures
// return an error.
func (p *YahooProvider) Metadata(ctx context.Context, symbol string) (*models.StockMetadata, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile%%2Cprice",
		p.BaseURL, url.PathEscape(symbol))

	body, status, err := p.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo quoteSummary %s: status %d", symbol, status)
	}

	doc := gjson.ParseBytes(body).Get("quoteSummary.result.0")
	price := doc.Get("price")
	profile := doc.Get("assetProfile")

	meta := &models.StockMetadata{
		Name:     price.Get("longName").String(),
		Currency: price.Get("currency").String(),
		Sector:   profile.Get("sector").String(),
		Industry: profile.Get("industry").String(),
	}
	if meta.Currency == "" {
		meta.Currency = "USD"
	}
	if mc := price.Get("marketCap.raw"); mc.Exists() {
		v := mc.Int()
		meta.MarketCap = &v
	}
	return meta, nil
}

func (p *YahooProvider) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// eventsByDay flattens a Yahoo event map (keyed by Unix timestamp) into a
// date-string keyed map, reading `field` from each event.
func eventsByDay(events gjson.Result, field string) map[string]float64 {
	out := make(map[string]float64)
	events.ForEach(func(key, value gjson.Result) bool {
		ts, err := strconv.ParseInt(key.String(), 10, 64)
		if err != nil {
			ts = value.Get("date").Int()
		}
		day := time.Unix(ts, 0).UTC().Format("2006-01-02")
		out[day] = value.Get(field).Float()
		return true
	})
	return out
}

// splitsByDay computes the split ratio (numerator/denominator) per date,
// matching how split events are conventionally reported (e.g. a 4:1 split
// is 4.0).
func splitsByDay(events gjson.Result) map[string]float64 {
	out := make(map[string]float64)
	events.ForEach(func(key, value gjson.Result) bool {
		ts, err := strconv.ParseInt(key.String(), 10, 64)
		if err != nil {
			ts = value.Get("date").Int()
		}
		day := time.Unix(ts, 0).UTC().Format("2006-01-02")
		num := value.Get("numerator").Float()
		den := value.Get("denominator").Float()
		if den != 0 {
			out[day] = num / den
		}
		return true
	})
	return out
}
