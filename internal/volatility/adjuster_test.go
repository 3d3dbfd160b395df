package volatility

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/caravanmasterx/risk-engine/pkg/types"
)

func candlesFromCloses(closes []float64) []types.OHLCV {
	candles := make([]types.OHLCV, len(closes))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		candles[i] = types.OHLCV{
			Open:      c,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    1000,
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	return candles
}

// TestHistoricalVolatility_FlatSeries tests that constant prices have zero volatility
func TestHistoricalVolatility_FlatSeries(t *testing.T) {
	a := NewAdjuster(14)

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100.0
	}

	assert.Equal(t, 0.0, a.HistoricalVolatility(candlesFromCloses(closes)))
}

// TestHistoricalVolatility_InsufficientData tests the short-window guard
func TestHistoricalVolatility_InsufficientData(t *testing.T) {
	a := NewAdjuster(14)

	closes := []float64{100, 101, 102}

	assert.Equal(t, 0.0, a.HistoricalVolatility(candlesFromCloses(closes)))
}

// TestHistoricalVolatility_AlternatingSeries tests a known oscillating series
func TestHistoricalVolatility_AlternatingSeries(t *testing.T) {
	a := NewAdjuster(14)

	closes := make([]float64, 30)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 100.0
		} else {
			closes[i] = 102.0
		}
	}

	vol := a.HistoricalVolatility(candlesFromCloses(closes))

	// log returns alternate between +log(1.02) and -log(1.02), so the
	// per-period std dev is close to log(1.02) and annualization is sqrt(365)
	perPeriod := math.Log(1.02)
	assert.InDelta(t, perPeriod*math.Sqrt(365), vol, vol*0.05)
}

// TestAdjustmentFactor_Tiers tests every volatility tier boundary
func TestAdjustmentFactor_Tiers(t *testing.T) {
	a := NewAdjuster(14)

	assert.Equal(t, 1.2, a.AdjustmentFactor(0.01))
	assert.Equal(t, 1.0, a.AdjustmentFactor(0.05))
	assert.Equal(t, 1.0, a.AdjustmentFactor(0.08))
	assert.Equal(t, 0.8, a.AdjustmentFactor(0.10))
	assert.Equal(t, 0.8, a.AdjustmentFactor(0.15))
	assert.Equal(t, 0.5, a.AdjustmentFactor(0.20))
	assert.Equal(t, 0.5, a.AdjustmentFactor(2.5))
}

// TestAdjustmentFactor_Monotonic tests that higher volatility never increases size
func TestAdjustmentFactor_Monotonic(t *testing.T) {
	a := NewAdjuster(14)

	prev := math.Inf(1)
	for _, vol := range []float64{0.0, 0.05, 0.10, 0.20, 1.0} {
		factor := a.AdjustmentFactor(vol)
		assert.LessOrEqual(t, factor, prev)
		prev = factor
	}
}

// TestAdjustedSize tests base size scaling against a calm series
func TestAdjustedSize(t *testing.T) {
	a := NewAdjuster(14)

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100.0
	}

	// flat series -> zero volatility -> 1.2 multiplier
	assert.InDelta(t, 1200.0, a.AdjustedSize(1000, candlesFromCloses(closes)), 1e-9)
}

// TestNewAdjuster_DefaultPeriod tests the non-positive period fallback
func TestNewAdjuster_DefaultPeriod(t *testing.T) {
	a := NewAdjuster(0)

	closes := make([]float64, DefaultPeriod)
	for i := range closes {
		closes[i] = 100.0
	}
	// 14 closes -> 13 returns -> still below the default window
	assert.Equal(t, 0.0, a.HistoricalVolatility(candlesFromCloses(closes)))
}
