package regime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/caravanmasterx/risk-engine/pkg/types"
)

// TestParseRegime tests label parsing with the normal fallback
func TestParseRegime(t *testing.T) {
	assert.Equal(t, RegimeNormal, ParseRegime("normal"))
	assert.Equal(t, RegimeVolatile, ParseRegime("volatile"))
	assert.Equal(t, RegimeExtreme, ParseRegime("extreme"))
	assert.Equal(t, RegimeVolatile, ParseRegime(" VOLATILE "))
	assert.Equal(t, RegimeNormal, ParseRegime("sideways"))
	assert.Equal(t, RegimeNormal, ParseRegime(""))
}

// TestRegime_String tests that labels round-trip through ParseRegime
func TestRegime_String(t *testing.T) {
	for _, r := range []Regime{RegimeNormal, RegimeVolatile, RegimeExtreme} {
		assert.Equal(t, r, ParseRegime(r.String()))
	}
}

// TestClassifyVolatility_Thresholds tests the default cutoffs
func TestClassifyVolatility_Thresholds(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, RegimeNormal, c.ClassifyVolatility(0.0))
	assert.Equal(t, RegimeNormal, c.ClassifyVolatility(0.59))
	assert.Equal(t, RegimeVolatile, c.ClassifyVolatility(0.60))
	assert.Equal(t, RegimeVolatile, c.ClassifyVolatility(0.99))
	assert.Equal(t, RegimeExtreme, c.ClassifyVolatility(1.00))
	assert.Equal(t, RegimeExtreme, c.ClassifyVolatility(3.00))
}

// TestNewClassifierWithThresholds_Inverted tests that inverted cutoffs are corrected
func TestNewClassifierWithThresholds_Inverted(t *testing.T) {
	c := NewClassifierWithThresholds(0.8, 0.4)

	// extreme threshold is raised to 0.8, so 0.6 stays normal
	assert.Equal(t, RegimeNormal, c.ClassifyVolatility(0.6))
	assert.Equal(t, RegimeExtreme, c.ClassifyVolatility(0.8))
}

// TestClassify_FlatMarket tests that a calm series labels normal
func TestClassify_FlatMarket(t *testing.T) {
	c := NewClassifier()

	candles := make([]types.OHLCV, 30)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		candles[i] = types.OHLCV{
			Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000,
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
		}
	}

	assert.Equal(t, RegimeNormal, c.Classify(candles))
}

// TestClassify_InsufficientData tests the short-window fallback
func TestClassify_InsufficientData(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, RegimeNormal, c.Classify(nil))
}
