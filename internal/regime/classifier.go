package regime

import (
	"strings"

	"github.com/caravanmasterx/risk-engine/internal/volatility"
	"github.com/caravanmasterx/risk-engine/pkg/types"
)

// Regime represents the qualitative market condition used to scale risk
// appetite.
type Regime int

const (
	RegimeNormal Regime = iota
	RegimeVolatile
	RegimeExtreme
)

func (r Regime) String() string {
	switch r {
	case RegimeVolatile:
		return "volatile"
	case RegimeExtreme:
		return "extreme"
	default:
		return "normal"
	}
}

// ParseRegime maps a free-form label to a Regime. Unrecognized labels
// fall back to normal so an external classifier can never break sizing.
func ParseRegime(label string) Regime {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "volatile":
		return RegimeVolatile
	case "extreme":
		return RegimeExtreme
	default:
		return RegimeNormal
	}
}

// Classifier labels market regimes from recent candles by thresholding
// annualized volatility. It is stateless: identical inputs always yield
// the same label.
type Classifier struct {
	adjuster          *volatility.Adjuster
	volatileThreshold float64
	extremeThreshold  float64
}

// NewClassifier creates a classifier with default thresholds: annualized
// volatility above 60% is volatile, above 100% is extreme.
func NewClassifier() *Classifier {
	return &Classifier{
		adjuster:          volatility.NewAdjuster(volatility.DefaultPeriod),
		volatileThreshold: 0.60,
		extremeThreshold:  1.00,
	}
}

// NewClassifierWithThresholds creates a classifier with custom cutoffs.
// The extreme threshold is raised to the volatile threshold if inverted.
func NewClassifierWithThresholds(volatileThreshold, extremeThreshold float64) *Classifier {
	if extremeThreshold < volatileThreshold {
		extremeThreshold = volatileThreshold
	}
	return &Classifier{
		adjuster:          volatility.NewAdjuster(volatility.DefaultPeriod),
		volatileThreshold: volatileThreshold,
		extremeThreshold:  extremeThreshold,
	}
}

// Classify labels the current regime from a candle window. Too little
// data reads as zero volatility and therefore a normal regime.
func (c *Classifier) Classify(candles []types.OHLCV) Regime {
	vol := c.adjuster.HistoricalVolatility(candles)
	return c.ClassifyVolatility(vol)
}

// ClassifyVolatility labels a regime directly from an annualized
// volatility figure.
func (c *Classifier) ClassifyVolatility(vol float64) Regime {
	switch {
	case vol >= c.extremeThreshold:
		return RegimeExtreme
	case vol >= c.volatileThreshold:
		return RegimeVolatile
	default:
		return RegimeNormal
	}
}
