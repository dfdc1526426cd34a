package strategy

import (
	"fmt"

	"StockScreener/internal/model"
)

// Rule inspects the trailing bars of an indicator series and reports a match.
// The evaluator guarantees the last three bars are fully defined before any
// rule runs.
type Rule func(ind *model.IndicatorSeries) bool

// Strategy pairs a registry ID with its display name and rule. A nil Rule
// marks a registry placeholder that cannot be selected for scanning.
type Strategy struct {
	ID   model.StrategyID
	Name string
	Rule Rule
}

// Registry lists all strategies in canonical order. Evaluation iterates this
// slice, so match output is deterministic for identical input.
var Registry = []Strategy{
	{ID: model.StrategyS1, Name: "placeholder"},
	{ID: model.StrategyS2, Name: "placeholder"},
	{ID: model.StrategyS3, Name: "Bollinger breakout", Rule: bollingerBreakout},
	{ID: model.StrategyS4, Name: "placeholder"},
	{ID: model.StrategyS5, Name: "placeholder"},
	{ID: model.StrategyS6, Name: "placeholder"},
	{ID: model.StrategyS7, Name: "placeholder"},
	{ID: model.StrategyS8, Name: "MACD gradual ascent", Rule: macdGradualAscent},
}

// Lookup returns the registry entry for id.
func Lookup(id model.StrategyID) (Strategy, bool) {
	for _, s := range Registry {
		if s.ID == id {
			return s, true
		}
	}
	return Strategy{}, false
}

// Implemented returns the IDs of all strategies with a real rule.
func Implemented() []model.StrategyID {
	var ids []model.StrategyID
	for _, s := range Registry {
		if s.Rule != nil {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// ValidateSelection rejects unknown and placeholder strategy IDs. Selecting an
// unimplemented strategy is a configuration error surfaced before any scan
// work starts, never a silent per-symbol no-op.
func ValidateSelection(ids []model.StrategyID) error {
	if len(ids) == 0 {
		return fmt.Errorf("at least one strategy must be selected")
	}
	for _, id := range ids {
		s, ok := Lookup(id)
		if !ok {
			return fmt.Errorf("unknown strategy %q", id)
		}
		if s.Rule == nil {
			return fmt.Errorf("strategy %q is not implemented (available: %v)", id, Implemented())
		}
	}
	return nil
}

// DisplayName returns the human-readable name for id, or the raw ID when the
// registry does not know it.
func DisplayName(id model.StrategyID) string {
	if s, ok := Lookup(id); ok && s.Rule != nil {
		return s.Name
	}
	return string(id)
}
