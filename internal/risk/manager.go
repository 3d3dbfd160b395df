package risk

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// Config holds the policy parameters for a Manager. All values are
// fractions of account balance except MinRiskReward.
type Config struct {
	BaseRiskPerTrade float64 `yaml:"base_risk_per_trade"` // risk on a normal trade (0.01 = 1%)
	MaxPortfolioRisk float64 `yaml:"max_portfolio_risk"`  // position value ceiling (0.30 = 30%)
	MaxTotalExposure float64 `yaml:"max_total_exposure"`  // total deployable balance (0.90 = 90%)
	MinRiskReward    float64 `yaml:"min_risk_reward"`     // minimum reward/risk ratio for a valid setup
}

// DefaultConfig returns the default risk policy.
func DefaultConfig() Config {
	return Config{
		BaseRiskPerTrade: 0.01,
		MaxPortfolioRisk: 0.30,
		MaxTotalExposure: 0.90,
		MinRiskReward:    2.0,
	}
}

// Manager sizes positions and bounds risk. It holds no mutable state
// besides configuration and a logger, so a single instance is safe for
// concurrent use.
type Manager struct {
	cfg Config
	log *zap.Logger
}

// NewManager creates a risk manager with the given policy. A nil logger
// disables diagnostics.
func NewManager(cfg Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{cfg: cfg, log: log}
}

// Policy returns the manager's configuration.
func (m *Manager) Policy() Config {
	return m.cfg
}

// SizeResult is the outcome of one position sizing decision.
type SizeResult struct {
	PositionSizeUSD      float64 `json:"position_size_usd"`
	PositionSizeBase     float64 `json:"position_size_base"`
	RiskAmount           float64 `json:"risk_amount"`
	RiskPercentage       float64 `json:"risk_percentage"`
	Leverage             float64 `json:"leverage"`
	StopLossDistancePct  float64 `json:"stop_loss_distance_pct"`
	VolatilityAdjustment float64 `json:"volatility_adjustment"`
	RegimeMultiplier     float64 `json:"regime_multiplier"`
}

// PositionSize converts a trade setup into a capital-bounded position.
//
// The risk budget starts at balance * BaseRiskPerTrade, is scaled by the
// volatility adjustment and the regime multiplier, and the resulting
// position value is capped at balance * MaxPortfolioRisk. Degenerate
// inputs (zero stop distance, non-positive balance or entry) produce a
// zero-sized result rather than an error: this feeds a live decision
// loop that must not abort.
func (m *Manager) PositionSize(accountBalance, entryPrice, stopLoss, volatilityAdjustment float64, marketRegime string) SizeResult {
	regimeMultiplier := m.RegimeMultiplier(marketRegime)

	if accountBalance <= 0 || entryPrice <= 0 {
		return SizeResult{
			VolatilityAdjustment: volatilityAdjustment,
			RegimeMultiplier:     regimeMultiplier,
		}
	}

	stopLossPct := math.Abs(entryPrice-stopLoss) / entryPrice

	baseRiskAmount := accountBalance * m.cfg.BaseRiskPerTrade
	volatilityAdjustedRisk := baseRiskAmount * volatilityAdjustment
	adjustedRiskAmount := volatilityAdjustedRisk * regimeMultiplier

	positionSize := 0.0
	if stopLossPct > 0 {
		positionSize = adjustedRiskAmount / stopLossPct
	}

	maxPositionSize := accountBalance * m.cfg.MaxPortfolioRisk
	finalPositionSize := math.Min(positionSize, maxPositionSize)

	result := SizeResult{
		PositionSizeUSD:      finalPositionSize,
		PositionSizeBase:     finalPositionSize / entryPrice,
		RiskAmount:           adjustedRiskAmount,
		RiskPercentage:       (adjustedRiskAmount / accountBalance) * 100,
		Leverage:             finalPositionSize / accountBalance,
		StopLossDistancePct:  stopLossPct * 100,
		VolatilityAdjustment: volatilityAdjustment,
		RegimeMultiplier:     regimeMultiplier,
	}

	m.log.Debug("position sized",
		zap.Float64("balance", accountBalance),
		zap.Float64("entry", entryPrice),
		zap.Float64("stop", stopLoss),
		zap.String("regime", marketRegime),
		zap.Float64("position_usd", result.PositionSizeUSD),
		zap.Float64("leverage", result.Leverage),
	)

	return result
}

// KellyCriterion returns the fraction of capital to allocate for the
// given edge. A conservative half-Kelly is used and the output is capped
// at 25% to keep a large edge (or a tiny average loss) from producing an
// over-leveraged allocation. No edge means no allocation.
func (m *Manager) KellyCriterion(winRate, avgWin, avgLoss float64) float64 {
	if winRate <= 0 || avgWin <= 0 || avgLoss <= 0 {
		return 0
	}

	// f = (bp - q) / b with b = avgWin/avgLoss, p = winRate, q = 1 - p
	b := avgWin / avgLoss
	p := winRate
	q := 1 - winRate

	kellyFraction := (b*p - q) / b

	return math.Max(0, math.Min(kellyFraction*0.5, 0.25))
}

// RegimeMultiplier maps a market regime label to a risk dampening
// factor. Unrecognized labels are treated as normal, never an error.
func (m *Manager) RegimeMultiplier(marketRegime string) float64 {
	switch strings.ToLower(marketRegime) {
	case "volatile":
		return 0.7
	case "extreme":
		return 0.5
	default:
		return 1.0
	}
}

// TradeValidation is the outcome of checking a trade setup against the
// minimum reward/risk policy.
type TradeValidation struct {
	Valid           bool    `json:"valid"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
	MinRequired     float64 `json:"min_required"`
	RiskAmount      float64 `json:"risk_amount"`
	RewardAmount    float64 `json:"reward_amount"`
	Reason          string  `json:"reason,omitempty"`
}

// ValidateTrade checks that a setup's reward/risk ratio meets the
// configured minimum. A zero stop distance yields an invalid result, not
// an error.
func (m *Manager) ValidateTrade(entryPrice, takeProfit, stopLoss float64) TradeValidation {
	riskAmount := math.Abs(entryPrice - stopLoss)
	rewardAmount := math.Abs(takeProfit - entryPrice)

	if riskAmount <= 0 {
		m.log.Warn("trade validation failed: zero stop distance", zap.Float64("entry", entryPrice))
		return TradeValidation{
			MinRequired: m.cfg.MinRiskReward,
			Reason:      "stop loss equals entry price",
		}
	}

	ratio := rewardAmount / riskAmount
	validation := TradeValidation{
		Valid:           ratio >= m.cfg.MinRiskReward,
		RiskRewardRatio: ratio,
		MinRequired:     m.cfg.MinRiskReward,
		RiskAmount:      riskAmount,
		RewardAmount:    rewardAmount,
	}
	if !validation.Valid {
		validation.Reason = "reward/risk ratio below minimum"
	}
	return validation
}

// AdjustForWeekend reduces a position size for thin weekend liquidity.
func (m *Manager) AdjustForWeekend(positionSize float64) float64 {
	const weekendMultiplier = 0.8
	return positionSize * weekendMultiplier
}

// PortfolioRisk returns the total committed risk across open positions
// as a percentage of balance.
func (m *Manager) PortfolioRisk(openRiskAmounts []float64, accountBalance float64) float64 {
	if len(openRiskAmounts) == 0 || accountBalance <= 0 {
		return 0
	}
	total := 0.0
	for _, r := range openRiskAmounts {
		total += r
	}
	return total / accountBalance * 100
}
