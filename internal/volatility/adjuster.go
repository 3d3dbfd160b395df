package volatility

import (
	"math"

	"github.com/caravanmasterx/risk-engine/pkg/types"
)

const (
	// DefaultPeriod is the rolling window for historical volatility.
	DefaultPeriod = 14

	// periodsPerYear annualizes daily volatility (crypto trades every day).
	periodsPerYear = 365
)

// Adjuster derives a position size multiplier from recent market
// volatility. Calm markets allow a slightly larger size, turbulent
// markets force a smaller one.
type Adjuster struct {
	period int
}

// NewAdjuster creates an adjuster with the given rolling window.
// Non-positive periods fall back to DefaultPeriod.
func NewAdjuster(period int) *Adjuster {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Adjuster{period: period}
}

// HistoricalVolatility computes the annualized standard deviation of log
// returns over the last `period` candles. Returns 0 when there is not
// enough data to fill the window.
func (a *Adjuster) HistoricalVolatility(candles []types.OHLCV) float64 {
	returns := logReturns(types.Closes(candles))
	if len(returns) < a.period {
		return 0
	}

	window := returns[len(returns)-a.period:]

	mean := 0.0
	for _, r := range window {
		mean += r
	}
	mean /= float64(len(window))

	variance := 0.0
	for _, r := range window {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(window) - 1)

	return math.Sqrt(variance) * math.Sqrt(periodsPerYear)
}

// AdjustmentFactor maps annualized volatility to a size multiplier.
// Tiers: below 5% -> 1.2, below 10% -> 1.0, below 20% -> 0.8,
// anything above -> 0.5.
func (a *Adjuster) AdjustmentFactor(vol float64) float64 {
	switch {
	case vol < 0.05:
		return 1.2
	case vol < 0.10:
		return 1.0
	case vol < 0.20:
		return 0.8
	default:
		return 0.5
	}
}

// AdjustedSize scales a base position size by the current volatility
// adjustment factor.
func (a *Adjuster) AdjustedSize(baseSize float64, candles []types.OHLCV) float64 {
	return baseSize * a.AdjustmentFactor(a.HistoricalVolatility(candles))
}

// logReturns converts a close series into log returns, skipping
// non-positive prices.
func logReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] > 0 && closes[i] > 0 {
			returns = append(returns, math.Log(closes[i]/closes[i-1]))
		}
	}
	return returns
}
