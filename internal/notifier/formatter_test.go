package notifier

import (
	"strings"
	"testing"
	"time"

	"StockScreener/internal/model"
)

func sampleResult() (model.ScanRequest, *model.ScanResult) {
	req := model.ScanRequest{
		Symbols:    []model.Symbol{{ID: "2330"}, {ID: "2317"}, {ID: "1101"}},
		Strategies: []model.StrategyID{model.StrategyS8},
		MinPrice:   10,
		MaxPrice:   500,
	}
	result := &model.ScanResult{
		Matches: []model.MatchRecord{
			{Symbol: model.Symbol{ID: "2330"}, LastClose: 123.5, Strategies: []model.StrategyID{model.StrategyS8}},
		},
		Processed: 3,
		Matched:   1,
		Excluded: map[model.ExclusionReason]int{
			model.ExclusionFetchFailed:       1,
			model.ExclusionNoStrategyMatched: 1,
		},
		Duration: 2 * time.Second,
	}
	return req, result
}

func TestFormatScanReport(t *testing.T) {
	req, result := sampleResult()
	msg := FormatScanReport(req, result)

	for _, want := range []string{
		"Scan report",
		"S8 (MACD gradual ascent)",
		"10.00 - 500.00",
		"Processed: 3/3",
		"2330 @ 123.50",
		"fetch_failed=1",
		"no_strategy_matched=1",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatScanReport_NoMatches(t *testing.T) {
	req, result := sampleResult()
	result.Matches = nil
	result.Matched = 0
	msg := FormatScanReport(req, result)
	if !strings.Contains(msg, "No symbols matched") {
		t.Errorf("expected empty-match notice:\n%s", msg)
	}
}

func TestFormatScanReport_TruncatesLongMatchList(t *testing.T) {
	req, result := sampleResult()
	result.Matches = nil
	for i := 0; i < maxReportMatches+7; i++ {
		result.Matches = append(result.Matches, model.MatchRecord{
			Symbol: model.Symbol{ID: "2330"}, LastClose: 100,
			Strategies: []model.StrategyID{model.StrategyS8},
		})
	}
	result.Matched = len(result.Matches)
	msg := FormatScanReport(req, result)
	if !strings.Contains(msg, "and 7 more") {
		t.Errorf("expected truncation notice:\n%s", msg)
	}
	if got := strings.Count(msg, "2330 @"); got != maxReportMatches {
		t.Errorf("expected %d listed matches, got %d", maxReportMatches, got)
	}
}

func TestFormatMatchDetail(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, 8)
	col := func() []float64 { return make([]float64, len(bars)) }
	ind := &model.IndicatorSeries{
		Symbol: "2330",
		Bars:   bars,
		MACD:   col(), Signal: col(), Hist: col(),
	}
	for i := range bars {
		bars[i] = model.PriceBar{Time: start.AddDate(0, 0, 7*i), Close: 100 + float64(i)}
		ind.MACD[i] = 1.5
		ind.Signal[i] = 1.0
		ind.Hist[i] = 0.5
	}

	msg := FormatMatchDetail(&model.MatchRecord{
		Symbol:     model.Symbol{ID: "2330"},
		LastClose:  107,
		Indicators: ind,
		Strategies: []model.StrategyID{model.StrategyS8},
	})

	if !strings.Contains(msg, "2330") || !strings.Contains(msg, "<pre>") {
		t.Errorf("unexpected detail message:\n%s", msg)
	}
	// Only the trailing five rows appear.
	if strings.Contains(msg, "2024-01-01") {
		t.Errorf("detail should omit rows before the trailing window:\n%s", msg)
	}
	if !strings.Contains(msg, "2024-02-19") {
		t.Errorf("detail should include the last row:\n%s", msg)
	}
}

func TestFormatUniverseStatus(t *testing.T) {
	msg := FormatUniverseStatus(1800, time.Date(2026, 8, 25, 7, 30, 0, 0, time.UTC))
	if !strings.Contains(msg, "1800") || !strings.Contains(msg, "2026-08-25 07:30") {
		t.Errorf("unexpected status message:\n%s", msg)
	}

	empty := FormatUniverseStatus(0, time.Time{})
	if !strings.Contains(empty, "none") {
		t.Errorf("expected empty-snapshot notice:\n%s", empty)
	}
}
