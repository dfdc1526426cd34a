package universe

import (
	"context"

	"StockScreener/internal/model"
)

// Provider returns the list of scannable symbols.
type Provider interface {
	// Symbols returns the universe in source order with no duplicate IDs.
	Symbols(ctx context.Context) ([]model.Symbol, error)
	Name() string
}

// StaticProvider serves a fixed symbol list.
type StaticProvider struct {
	List []model.Symbol
}

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) Symbols(_ context.Context) ([]model.Symbol, error) {
	return Dedupe(p.List), nil
}

// Dedupe removes duplicate symbol IDs, keeping the first occurrence and the
// original order.
func Dedupe(symbols []model.Symbol) []model.Symbol {
	seen := make(map[string]bool, len(symbols))
	out := make([]model.Symbol, 0, len(symbols))
	for _, s := range symbols {
		if s.ID == "" || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}

// FilterByCategory keeps only symbols tagged with the given category. An empty
// category selects the whole universe.
func FilterByCategory(symbols []model.Symbol, category string) []model.Symbol {
	if category == "" {
		return symbols
	}
	var out []model.Symbol
	for _, s := range symbols {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns the distinct category tags present in the universe,
// in first-seen order.
func Categories(symbols []model.Symbol) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range symbols {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		out = append(out, s.Category)
	}
	return out
}
