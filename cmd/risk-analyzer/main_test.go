package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/caravanmasterx/risk-engine/internal/config"
	"github.com/caravanmasterx/risk-engine/pkg/types"
)

func testCandles(n int, drift float64) []types.OHLCV {
	candles := make([]types.OHLCV, n)
	price := 100.0
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		price *= 1 + drift
		candles[i] = types.OHLCV{
			Open: price, High: price * 1.01, Low: price * 0.99, Close: price, Volume: 1000,
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	return candles
}

// TestAnalyze_DefaultsFromLastClose tests entry/stop defaulting
func TestAnalyze_DefaultsFromLastClose(t *testing.T) {
	cfg := config.Load()
	candles := testCandles(60, 0.001)

	report := analyze(cfg, candles, 10000, 0, 0, 0, "", 0, 0, 0, zap.NewNop())

	lastClose := candles[len(candles)-1].Close
	assert.InDelta(t, lastClose, report.EntryPrice, 1e-9)
	assert.InDelta(t, lastClose*0.95, report.StopLoss, 1e-9)
	assert.Nil(t, report.Validation)
	assert.Equal(t, 0.0, report.Kelly)
}

// TestAnalyze_RegimeOverride tests the explicit regime flag path
func TestAnalyze_RegimeOverride(t *testing.T) {
	cfg := config.Load()
	candles := testCandles(60, 0.001)

	report := analyze(cfg, candles, 10000, 100, 95, 0, "extreme", 0, 0, 0, zap.NewNop())

	assert.Equal(t, "extreme", report.Regime)
	assert.Equal(t, 0.5, report.Sizing.RegimeMultiplier)
}

// TestAnalyze_WithValidation tests that a take-profit enables setup validation
func TestAnalyze_WithValidation(t *testing.T) {
	cfg := config.Load()
	candles := testCandles(60, 0.001)

	report := analyze(cfg, candles, 10000, 100, 95, 110, "", 0.6, 200, 100, zap.NewNop())

	require.NotNil(t, report.Validation)
	assert.True(t, report.Validation.Valid)
	assert.InDelta(t, 0.2, report.Kelly, 1e-9)
}

// TestWriteReport_UnknownFormat tests the output format guard
func TestWriteReport_UnknownFormat(t *testing.T) {
	cfg := config.Load()
	report := analyze(cfg, testCandles(60, 0.001), 10000, 100, 95, 0, "", 0, 0, 0, zap.NewNop())

	assert.Error(t, writeReport(report, "pdf", ""))
}
