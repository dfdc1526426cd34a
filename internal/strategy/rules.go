package strategy

import "StockScreener/internal/model"

// macdGradualAscent (S8) matches when MACD has risen strictly across the last
// three bars and sits above its signal line with a positive histogram.
func macdGradualAscent(ind *model.IndicatorSeries) bool {
	t := ind.Len() - 1
	return ind.MACD[t] > ind.MACD[t-1] &&
		ind.MACD[t-1] > ind.MACD[t-2] &&
		ind.MACD[t] > ind.Signal[t] &&
		ind.Hist[t] > 0
}

// bollingerBreakout (S3) matches a fresh breach of the upper band: the last
// close is above it while the previous close was not. A sustained stay above
// the band matches only on the transition bar.
func bollingerBreakout(ind *model.IndicatorSeries) bool {
	t := ind.Len() - 1
	return ind.Bars[t].Close > ind.BollUpper[t] &&
		ind.Bars[t-1].Close <= ind.BollUpper[t-1]
}
