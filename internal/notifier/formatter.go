package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockScreener/internal/model"
	"StockScreener/internal/strategy"
)

// maxReportMatches caps the per-message match list; Telegram rejects
// oversized messages.
const maxReportMatches = 30

// FormatScanReport formats a completed scan into a Telegram message.
func FormatScanReport(req model.ScanRequest, result *model.ScanResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔍 <b>Scan report</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Strategies: %s\n", strategyNames(req.Strategies)))
	b.WriteString(fmt.Sprintf("Price range: %.2f - %.2f\n", req.MinPrice, req.MaxPrice))
	b.WriteString(fmt.Sprintf("Processed: %d/%d in %s\n\n", result.Processed, len(req.Symbols), result.Duration.Round(time.Second)))

	if result.Matched == 0 {
		b.WriteString("No symbols matched.\n")
	} else {
		b.WriteString(fmt.Sprintf("📈 <b>%d matches:</b>\n", result.Matched))
		for i, m := range result.Matches {
			if i == maxReportMatches {
				b.WriteString(fmt.Sprintf("  ... and %d more\n", result.Matched-maxReportMatches))
				break
			}
			b.WriteString(fmt.Sprintf("  %s @ %.2f | %s\n", m.Symbol.ID, m.LastClose, strategyNames(m.Strategies)))
		}
	}

	if len(result.Excluded) > 0 {
		b.WriteString("\nExcluded: ")
		var parts []string
		for _, reason := range []model.ExclusionReason{
			model.ExclusionFetchFailed,
			model.ExclusionInsufficientData,
			model.ExclusionMalformedSeries,
			model.ExclusionPriceOutOfRange,
			model.ExclusionInsufficientHistory,
			model.ExclusionNoStrategyMatched,
			model.ExclusionTaskPanic,
		} {
			if n := result.Excluded[reason]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", reason, n))
			}
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatMatchDetail formats the trailing indicator rows of one match, the
// detail a user drills into after the summary.
func FormatMatchDetail(m *model.MatchRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>%s</b> @ %.2f\n", m.Symbol.ID, m.LastClose))
	b.WriteString(fmt.Sprintf("Matched: %s\n\n", strategyNames(m.Strategies)))

	ind := m.Indicators
	n := ind.Len()
	start := n - 5
	if start < 0 {
		start = 0
	}
	b.WriteString("<pre>date        close    macd   signal   hist\n")
	for i := start; i < n; i++ {
		b.WriteString(fmt.Sprintf("%s %8.2f %7.3f %7.3f %7.3f\n",
			ind.Bars[i].Time.Format("2006-01-02"),
			ind.Bars[i].Close, ind.MACD[i], ind.Signal[i], ind.Hist[i]))
	}
	b.WriteString("</pre>")
	return b.String()
}

// FormatUniverseStatus formats the cached universe state for display.
func FormatUniverseStatus(size int, expiresAt time.Time) string {
	var b strings.Builder
	b.WriteString("🗂 <b>Universe status</b>\n\n")
	b.WriteString(fmt.Sprintf("Symbols: %d\n", size))
	if expiresAt.IsZero() {
		b.WriteString("Snapshot: none (will fetch on next scan)\n")
	} else {
		b.WriteString(fmt.Sprintf("Snapshot expires: %s\n", expiresAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

func strategyNames(ids []model.StrategyID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s (%s)", id, strategy.DisplayName(id))
	}
	return strings.Join(parts, ", ")
}
