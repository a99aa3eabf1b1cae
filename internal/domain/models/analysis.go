package models

// AnalysisPeriod describes the date range covered by an analysis.
type AnalysisPeriod struct {
	Start string `json:"start" example:"2026-01-05"`
	End   string `json:"end" example:"2026-02-06"`
	Days  int    `json:"days" example:"24"`
}

// AnalysisPrices summarizes closing prices over the analyzed window.
type AnalysisPrices struct {
	Current       float64 `json:"current" example:"151.22"`
	Average       float64 `json:"average" example:"148.91"`
	High          float64 `json:"high" example:"153.45"`
	Low           float64 `json:"low" example:"144.02"`
	Change        float64 `json:"change" example:"3.11"`
	ChangePercent float64 `json:"change_percent" example:"2.1"`
}

// AnalysisVolume summarizes traded volume over the analyzed window.
type AnalysisVolume struct {
	Average float64 `json:"average" example:"78123456.5"`
	Max     int64   `json:"max" example:"120345678"`
	Min     int64   `json:"min" example:"45678901"`
}

// PriceAnalysis holds trivial summary statistics computed from a window of
// price bars, returned by GET /stock/{symbol}/analysis.
//
// swagger:model PriceAnalysis
type PriceAnalysis struct {
	Symbol string         `json:"symbol" example:"AAPL"`
	Period AnalysisPeriod `json:"period"`
	Prices AnalysisPrices `json:"prices"`
	Volume AnalysisVolume `json:"volume"`
}
