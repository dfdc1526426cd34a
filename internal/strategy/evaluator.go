package strategy

import (
	"errors"

	"StockScreener/internal/model"
)

// trailingBars is how many fully-defined bars every rule inspects.
const trailingBars = 3

// ErrInsufficientHistory indicates the series does not end with enough
// fully-defined bars to evaluate any rule.
var ErrInsufficientHistory = errors.New("insufficient indicator history for strategy evaluation")

// Evaluate runs the requested strategies against the most recent three bars
// and returns the matching IDs in registry order. The requested set must have
// passed ValidateSelection.
func Evaluate(ind *model.IndicatorSeries, requested []model.StrategyID) ([]model.StrategyID, error) {
	n := ind.Len()
	if n < trailingBars {
		return nil, ErrInsufficientHistory
	}
	for i := n - trailingBars; i < n; i++ {
		if !ind.FullyDefined(i) {
			return nil, ErrInsufficientHistory
		}
	}

	want := make(map[model.StrategyID]bool, len(requested))
	for _, id := range requested {
		want[id] = true
	}

	var matched []model.StrategyID
	for _, s := range Registry {
		if s.Rule == nil || !want[s.ID] {
			continue
		}
		if s.Rule(ind) {
			matched = append(matched, s.ID)
		}
	}
	return matched, nil
}
