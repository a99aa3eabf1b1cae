package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/jbrucker/stock-price-ws/internal/domain/models"
)

func TestAnalyze_Empty(t *testing.T) {
	if _, err := Analyze("AAPL", nil); !errors.Is(err, ErrNoBars) {
		t.Fatalf("expected ErrNoBars, got %v", err)
	}
}

func TestAnalyze_Stats(t *testing.T) {
	bars := []models.PriceBar{
		{Date: "2026-02-02", Close: 100, Volume: 1000},
		{Date: "2026-02-03", Close: 110, Volume: 3000},
		{Date: "2026-02-04", Close: 90, Volume: 2000},
		{Date: "2026-02-05", Close: 105, Volume: 4000},
	}

	out, err := Analyze("AAPL", bars)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if out.Symbol != "AAPL" {
		t.Fatalf("symbol = %q", out.Symbol)
	}
	if out.Period.Start != "2026-02-02" || out.Period.End != "2026-02-05" || out.Period.Days != 4 {
		t.Fatalf("unexpected period: %+v", out.Period)
	}
	if out.Prices.Current != 105 || out.Prices.High != 110 || out.Prices.Low != 90 {
		t.Fatalf("unexpected prices: %+v", out.Prices)
	}
	if got, want := out.Prices.Average, (100.0+110+90+105)/4; math.Abs(got-want) > 1e-9 {
		t.Fatalf("average = %v, want %v", got, want)
	}
	if out.Prices.Change != 5 {
		t.Fatalf("change = %v, want 5", out.Prices.Change)
	}
	if math.Abs(out.Prices.ChangePercent-5.0) > 1e-9 {
		t.Fatalf("change_percent = %v, want 5", out.Prices.ChangePercent)
	}
	if out.Volume.Max != 4000 || out.Volume.Min != 1000 || out.Volume.Average != 2500 {
		t.Fatalf("unexpected volume: %+v", out.Volume)
	}
}

func TestAnalyze_SingleDay(t *testing.T) {
	out, err := Analyze("MSFT", []models.PriceBar{{Date: "2026-02-02", Close: 402.5, Volume: 777}})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out.Prices.Change != 0 || out.Prices.ChangePercent != 0 {
		t.Fatalf("single day should have zero change: %+v", out.Prices)
	}
	if out.Period.Days != 1 {
		t.Fatalf("days = %d", out.Period.Days)
	}
}
