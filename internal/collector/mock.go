package collector

import (
	"time"

	"StockScreener/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	BarsBySymbol map[string][]model.PriceBar
	Err          error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchWeeklyBars(symbol string, weeks int) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.BarsBySymbol[symbol]; ok {
		return bars, nil
	}
	return GenerateBars(100, weeks), nil
}

// GenerateBars produces a gently trending synthetic weekly series.
func GenerateBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	start := time.Now().AddDate(0, 0, -7*count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Time:   start.AddDate(0, 0, 7*i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
