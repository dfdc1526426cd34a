package model

import "time"

// StrategyID is a tag from the fixed screening strategy registry.
type StrategyID string

const (
	StrategyS1 StrategyID = "S1"
	StrategyS2 StrategyID = "S2"
	StrategyS3 StrategyID = "S3" // Bollinger breakout
	StrategyS4 StrategyID = "S4"
	StrategyS5 StrategyID = "S5"
	StrategyS6 StrategyID = "S6"
	StrategyS7 StrategyID = "S7"
	StrategyS8 StrategyID = "S8" // MACD gradual ascent
)

// ScanRequest describes one scan run. Immutable once the scan starts.
type ScanRequest struct {
	Symbols    []Symbol
	Strategies []StrategyID
	MinPrice   float64
	MaxPrice   float64
}

// MatchRecord is emitted once per symbol that passes every screening step.
type MatchRecord struct {
	Symbol     Symbol
	LastClose  float64
	Indicators *IndicatorSeries
	Strategies []StrategyID
}

// ExclusionReason classifies why a symbol produced no match.
type ExclusionReason string

const (
	ExclusionNone                ExclusionReason = ""
	ExclusionFetchFailed         ExclusionReason = "fetch_failed"
	ExclusionInsufficientData    ExclusionReason = "insufficient_data"
	ExclusionMalformedSeries     ExclusionReason = "malformed_series"
	ExclusionPriceOutOfRange     ExclusionReason = "price_out_of_range"
	ExclusionInsufficientHistory ExclusionReason = "insufficient_history"
	ExclusionNoStrategyMatched   ExclusionReason = "no_strategy_matched"
	ExclusionTaskPanic           ExclusionReason = "task_panic"
)

// ScanResult aggregates a completed scan. Matches are in completion order.
type ScanResult struct {
	Matches   []MatchRecord
	Processed int
	Matched   int
	Excluded  map[ExclusionReason]int
	StartedAt time.Time
	Duration  time.Duration
}
