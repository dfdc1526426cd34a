package collector

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockScreener/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsJSON(t *testing.T, n int, start time.Time, step time.Duration) []byte {
	t.Helper()
	type bar struct {
		Timestamp int64   `json:"timestamp"`
		Open      float64 `json:"open"`
		High      float64 `json:"high"`
		Low       float64 `json:"low"`
		Close     float64 `json:"close"`
		Volume    float64 `json:"volume"`
	}
	out := make([]bar, n)
	for i := range out {
		p := 100 + float64(i)
		out[i] = bar{
			Timestamp: start.Add(time.Duration(i) * step).Unix(),
			Open:      p, High: p + 1, Low: p - 1, Close: p, Volume: 1000,
		}
	}
	data, err := json.Marshal(out)
	require.NoError(t, err)
	return data
}

func TestRESTFetcher_WeeklyEndpoint(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bars/weekly", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		w.Write(barsJSON(t, 50, start, 7*24*time.Hour))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "k", "")
	bars, err := f.FetchWeeklyBars("2330", 40)
	require.NoError(t, err)
	assert.Len(t, bars, 40, "result must be trimmed to the requested window")
	assert.Equal(t, 149.0, bars[len(bars)-1].Close, "most recent bars must be kept")
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i].Time.After(bars[i-1].Time), "bars must be chronological")
	}
}

func TestRESTFetcher_DailyFallbackAggregates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // a Monday
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/bars/weekly" {
			http.Error(w, "weekly not supported", http.StatusInternalServerError)
			return
		}
		w.Write(barsJSON(t, 10, start, 24*time.Hour))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "", "")
	bars, err := f.FetchWeeklyBars("2330", 10)
	require.NoError(t, err)
	// 10 daily bars starting on a Monday span two ISO weeks.
	require.Len(t, bars, 2)
	assert.Equal(t, 106.0, bars[0].Close, "weekly close is the last daily close")
	assert.Equal(t, 7000.0, bars[0].Volume, "weekly volume sums the daily volumes")
}

func TestRESTFetcher_BothEndpointsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "", "")
	_, err := f.FetchWeeklyBars("2330", 40)
	assert.Error(t, err)
}

func TestAggregateDailyToWeekly(t *testing.T) {
	mon := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	daily := []model.PriceBar{
		{Time: mon, Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},
		{Time: mon.AddDate(0, 0, 1), Open: 11, High: 15, Low: 10, Close: 14, Volume: 200},
		{Time: mon.AddDate(0, 0, 4), Open: 14, High: 14, Low: 8, Close: 9, Volume: 300},
		// next ISO week
		{Time: mon.AddDate(0, 0, 7), Open: 9, High: 10, Low: 9, Close: 10, Volume: 400},
	}
	weekly := aggregateDailyToWeekly(daily)
	require.Len(t, weekly, 2)

	first := weekly[0]
	assert.Equal(t, 10.0, first.Open)
	assert.Equal(t, 15.0, first.High)
	assert.Equal(t, 8.0, first.Low)
	assert.Equal(t, 9.0, first.Close)
	assert.Equal(t, 600.0, first.Volume)

	assert.Equal(t, 10.0, weekly[1].Close)
	assert.Empty(t, aggregateDailyToWeekly(nil))
}
