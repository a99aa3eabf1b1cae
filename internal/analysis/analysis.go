// Package analysis computes trivial summary statistics over a window of
// daily price bars.
package analysis

import (
	"errors"

	"github.com/jbrucker/stock-price-ws/internal/domain/models"
)

// ErrNoBars reports an analysis request over an empty price window.
var ErrNoBars = errors.New("no price data to analyze")

// Analyze summarizes closing prices and traded volume over the given bars.
// Bars are expected in ascending date order, as produced by stockinfo.
func Analyze(symbol string, bars []models.PriceBar) (*models.PriceAnalysis, error) {
	if len(bars) == 0 {
		return nil, ErrNoBars
	}

	first := bars[0]
	last := bars[len(bars)-1]

	var closeSum, volumeSum float64
	high := bars[0].Close
	low := bars[0].Close
	maxVol := bars[0].Volume
	minVol := bars[0].Volume
	for _, b := range bars {
		closeSum += b.Close
		volumeSum += float64(b.Volume)
		if b.Close > high {
			high = b.Close
		}
		if b.Close < low {
			low = b.Close
		}
		if b.Volume > maxVol {
			maxVol = b.Volume
		}
		if b.Volume < minVol {
			minVol = b.Volume
		}
	}

	change := last.Close - first.Close
	changePct := 0.0
	if first.Close != 0 {
		changePct = change / first.Close * 100
	}

	return &models.PriceAnalysis{
		Symbol: symbol,
		Period: models.AnalysisPeriod{
			Start: first.Date,
			End:   last.Date,
			Days:  len(bars),
		},
		Prices: models.AnalysisPrices{
			Current:       last.Close,
			Average:       closeSum / float64(len(bars)),
			High:          high,
			Low:           low,
			Change:        change,
			ChangePercent: changePct,
		},
		Volume: models.AnalysisVolume{
			Average: volumeSum / float64(len(bars)),
			Max:     maxVol,
			Min:     minVol,
		},
	}, nil
}
