package models

import "time"

// PriceBar is one trading day of OHLCV data for a symbol.
//
// Open/High/Low/Close are rounded to a fixed number of decimal places when
// the bar is normalized (scraped data carries float noise). Dividends and
// StockSplits are kept raw and are only set when the provider reported a
// positive value for that day; a nil pointer means the key is omitted from
// every serialized form, it is never rendered as 0 or null.
//
// swagger:model PriceBar
type PriceBar struct {
	Date        string   `json:"date" example:"2026-02-06"`
	Open        float64  `json:"open" example:"150.12"`
	High        float64  `json:"high" example:"152.34"`
	Low         float64  `json:"low" example:"149.77"`
	Close       float64  `json:"close" example:"151.22"`
	Volume      int64    `json:"volume" example:"98765432"`
	Dividends   *float64 `json:"dividends,omitempty" example:"0.24"`
	StockSplits *float64 `json:"stock_splits,omitempty" example:"4"`
}

// StockMetadata holds company-level information looked up separately from
// price history. Every field is optional on the provider side; absent fields
// stay at their zero value.
//
// swagger:model StockMetadata
type StockMetadata struct {
	Name      string `json:"name" example:"Apple Inc."`
	Currency  string `json:"currency" example:"USD"`
	MarketCap *int64 `json:"market_cap" example:"2500000000000"`
	Sector    string `json:"sector" example:"Technology"`
	Industry  string `json:"industry" example:"Consumer Electronics"`
}

// StockResult is one fetch outcome for one symbol. It is the single
// in-memory value both wire formats (JSON and protobuf) are rendered from.
//
// Fields:
//   - Symbol: ticker, uppercase on output.
//   - RetrievedAt: render time, recomputed on every render call.
//   - Prices: chronological ascending, at most the requested window length.
//   - Metadata: only populated when explicitly requested.
//
// swagger:model StockResult
type StockResult struct {
	Symbol      string         `json:"symbol" example:"AAPL"`
	RetrievedAt time.Time      `json:"retrieved_at"`
	Prices      []PriceBar     `json:"prices"`
	Metadata    *StockMetadata `json:"metadata,omitempty"`
}
