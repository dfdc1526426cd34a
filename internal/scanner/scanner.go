package scanner

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"StockScreener/internal/collector"
	"StockScreener/internal/indicator"
	"StockScreener/internal/model"
	"StockScreener/internal/strategy"
)

const (
	// DefaultWorkers bounds concurrent in-flight symbol tasks.
	DefaultWorkers = 10
	// DefaultLookbackWeeks covers two years of weekly bars.
	DefaultLookbackWeeks = 104
)

// ProgressFunc receives the running processed count after every completed
// symbol, matched or not. It is called from a single goroutine.
type ProgressFunc func(processed, total int)

// Outcome is the typed result of one symbol task. Exactly one of Match or
// Reason is meaningful; Err carries the contained failure for diagnostics.
type Outcome struct {
	Symbol model.Symbol
	Match  *model.MatchRecord
	Reason model.ExclusionReason
	Err    error
}

// Scanner screens a symbol universe against the selected strategies with a
// fixed worker budget.
type Scanner struct {
	Fetcher       collector.Fetcher
	Workers       int
	LookbackWeeks int
}

// New creates a Scanner, applying defaults for zero values.
func New(fetcher collector.Fetcher, workers, lookbackWeeks int) *Scanner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if lookbackWeeks <= 0 {
		lookbackWeeks = DefaultLookbackWeeks
	}
	return &Scanner{Fetcher: fetcher, Workers: workers, LookbackWeeks: lookbackWeeks}
}

// ValidateRequest checks scan-level preconditions. A request that fails here
// never dispatches a single symbol.
func ValidateRequest(req model.ScanRequest) error {
	if err := strategy.ValidateSelection(req.Strategies); err != nil {
		return err
	}
	if req.MinPrice < 0 {
		return fmt.Errorf("min price must not be negative, got %.2f", req.MinPrice)
	}
	if req.MaxPrice < req.MinPrice {
		return fmt.Errorf("price range inverted: min %.2f > max %.2f", req.MinPrice, req.MaxPrice)
	}
	return nil
}

// Scan fans the universe out over the worker pool and aggregates match
// records in completion order. Per-symbol failures are contained and counted;
// only precondition violations return an error before dispatch. Cancelling ctx
// stops dispatching new symbols, lets in-flight tasks drain, and returns the
// partial result together with ctx.Err().
func (s *Scanner) Scan(ctx context.Context, req model.ScanRequest, onProgress ProgressFunc) (*model.ScanResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	total := len(req.Symbols)
	result := &model.ScanResult{
		Excluded:  make(map[model.ExclusionReason]int),
		StartedAt: time.Now(),
	}

	tasks := make(chan model.Symbol)
	outcomes := make(chan Outcome)

	var wg sync.WaitGroup
	for i := 0; i < s.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range tasks {
				outcomes <- s.screen(req, sym)
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, sym := range req.Symbols {
			select {
			case tasks <- sym:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	// Single-writer aggregation: workers never touch the result directly.
	for out := range outcomes {
		result.Processed++
		if out.Match != nil {
			result.Matches = append(result.Matches, *out.Match)
			result.Matched++
		} else {
			result.Excluded[out.Reason]++
			if out.Err != nil {
				log.Printf("[WARN] %s excluded (%s): %v", out.Symbol.ID, out.Reason, out.Err)
			}
		}
		if onProgress != nil {
			onProgress(result.Processed, total)
		}
	}

	result.Duration = time.Since(result.StartedAt)
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// screen runs the full per-symbol pipeline: fetch, sanity checks, price
// filter, indicators, strategy evaluation. Every failure, panics included, is
// converted to a typed exclusion so one symbol can never abort the scan.
func (s *Scanner) screen(req model.ScanRequest, sym model.Symbol) (out Outcome) {
	out.Symbol = sym
	defer func() {
		if r := recover(); r != nil {
			out.Match = nil
			out.Reason = model.ExclusionTaskPanic
			out.Err = fmt.Errorf("symbol task panic: %v", r)
		}
	}()

	bars, err := s.Fetcher.FetchWeeklyBars(sym.ID, s.LookbackWeeks)
	if err != nil {
		out.Reason = model.ExclusionFetchFailed
		out.Err = err
		return out
	}
	if len(bars) < indicator.MinBars {
		out.Reason = model.ExclusionInsufficientData
		return out
	}

	series := &model.PriceSeries{Symbol: sym.ID, Bars: bars, FetchedAt: time.Now()}
	if err := series.Validate(); err != nil {
		out.Reason = model.ExclusionMalformedSeries
		out.Err = err
		return out
	}

	last := series.LastClose()
	if last < req.MinPrice || last > req.MaxPrice {
		out.Reason = model.ExclusionPriceOutOfRange
		return out
	}

	ind, err := indicator.Compute(series)
	if err != nil {
		out.Reason = model.ExclusionInsufficientData
		out.Err = err
		return out
	}

	matched, err := strategy.Evaluate(ind, req.Strategies)
	if err != nil {
		out.Reason = model.ExclusionInsufficientHistory
		return out
	}
	if len(matched) == 0 {
		out.Reason = model.ExclusionNoStrategyMatched
		return out
	}

	out.Match = &model.MatchRecord{
		Symbol:     sym,
		LastClose:  last,
		Indicators: ind,
		Strategies: matched,
	}
	return out
}
