package collector

import (
	"errors"

	"StockScreener/internal/model"
)

// ErrUnavailable indicates the provider has no data for the symbol.
var ErrUnavailable = errors.New("price data unavailable")

// Fetcher defines the interface for fetching historical price data.
type Fetcher interface {
	// FetchWeeklyBars returns up to `weeks` weekly bars in chronological
	// order, or ErrUnavailable when the provider has nothing for the symbol.
	FetchWeeklyBars(symbol string, weeks int) ([]model.PriceBar, error)
	Name() string
}
