package risk

import (
	"math"
	"sort"
	"time"
)

// RiskLevel is an ordered classification of overall risk exposure.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskExtreme
)

func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// Metrics is an immutable snapshot of statistical risk measures derived
// from a return window. It is created once per Evaluate call and never
// mutated.
type Metrics struct {
	Volatility   float64   `json:"volatility"`
	VaR95        float64   `json:"var_95"`
	VaR99        float64   `json:"var_99"`
	MaxDrawdown  float64   `json:"max_drawdown"`
	SharpeRatio  float64   `json:"sharpe_ratio"`
	SortinoRatio float64   `json:"sortino_ratio"`
	Level        RiskLevel `json:"risk_level"`
	Timestamp    time.Time `json:"timestamp"`
}

// Calculator derives Metrics from return series. Volatility is the
// sample standard deviation per period; classification thresholds apply
// to volatility annualized by sqrt(periodsPerYear).
type Calculator struct {
	periodsPerYear float64
}

// NewCalculator returns a calculator using the daily crypto convention
// of 365 periods per year.
func NewCalculator() *Calculator {
	return &Calculator{periodsPerYear: 365}
}

// NewCalculatorWithPeriods returns a calculator for a custom sampling
// frequency, e.g. 24*365 for hourly candles.
func NewCalculatorWithPeriods(periodsPerYear float64) *Calculator {
	if periodsPerYear <= 0 {
		periodsPerYear = 365
	}
	return &Calculator{periodsPerYear: periodsPerYear}
}

// Evaluate computes the risk snapshot for a time-ordered return window.
// VaR is estimated from the empirical return distribution and reported
// as a positive loss magnitude; VaR99 is clamped to be at least VaR95.
// Fewer than two returns yield a zero snapshot at RiskLow.
func (c *Calculator) Evaluate(returns []float64) Metrics {
	now := time.Now()
	if len(returns) < 2 {
		return Metrics{Level: RiskLow, Timestamp: now}
	}

	mean := meanOf(returns)
	volatility := sampleStdDev(returns, mean)

	var95 := c.historicalVaR(returns, 0.95)
	var99 := c.historicalVaR(returns, 0.99)
	if var99 < var95 {
		var99 = var95
	}

	maxDrawdown := maxDrawdownReturns(returns)

	sharpe := 0.0
	if volatility > 0 {
		sharpe = mean / volatility
	}

	sortino := 0.0
	if dd := downsideDeviation(returns); dd > 0 {
		sortino = mean / dd
	}

	annualizedVol := volatility * math.Sqrt(c.periodsPerYear)

	return Metrics{
		Volatility:   volatility,
		VaR95:        var95,
		VaR99:        var99,
		MaxDrawdown:  maxDrawdown,
		SharpeRatio:  sharpe,
		SortinoRatio: sortino,
		Level:        classifyRisk(annualizedVol, maxDrawdown),
		Timestamp:    now,
	}
}

// classifyRisk thresholds annualized volatility and max drawdown into a
// risk level. Cutoffs are a fixed policy: below 30% vol and 10% drawdown
// is low, below 60%/20% medium, below 100%/35% high, anything beyond is
// extreme. Both inputs must clear a tier for it to apply, so the mapping
// is monotonic in each argument.
func classifyRisk(annualizedVol, maxDrawdown float64) RiskLevel {
	switch {
	case annualizedVol < 0.30 && maxDrawdown < 0.10:
		return RiskLow
	case annualizedVol < 0.60 && maxDrawdown < 0.20:
		return RiskMedium
	case annualizedVol < 1.00 && maxDrawdown < 0.35:
		return RiskHigh
	default:
		return RiskExtreme
	}
}

// historicalVaR estimates the loss magnitude not expected to be exceeded
// at the given confidence level, using the empirical lower tail of the
// return distribution. Returns 0 when the tail return is a gain.
func (c *Calculator) historicalVaR(returns []float64, confidence float64) float64 {
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	idx := int(math.Floor((1 - confidence) * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}

	loss := -sorted[idx]
	if loss < 0 {
		return 0
	}
	return loss
}

// maxDrawdownReturns compounds a return series into an equity curve and
// reports the largest peak-to-trough decline as a fraction of the peak.
func maxDrawdownReturns(returns []float64) float64 {
	equity := 1.0
	peak := 1.0
	maxDD := 0.0
	for _, r := range returns {
		equity *= 1 + r
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			if dd := (peak - equity) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// MaxDrawdownPrices reports the largest peak-to-trough decline of a raw
// price series as a fraction of the peak. A non-decreasing series yields 0.
func MaxDrawdownPrices(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	peak := prices[0]
	maxDD := 0.0
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		if peak > 0 {
			if dd := (peak - p) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// PriceReturns converts an ordered price series into simple per-period
// returns. Non-positive prices are skipped.
func PriceReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] > 0 {
			returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
		}
	}
	return returns
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses the n-1 denominator.
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}

// downsideDeviation is the root mean square of negative returns only.
func downsideDeviation(returns []float64) float64 {
	downside := 0.0
	count := 0
	for _, r := range returns {
		if r < 0 {
			downside += r * r
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(downside / float64(count))
}
