package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/caravanmasterx/risk-engine/internal/config"
	"github.com/caravanmasterx/risk-engine/internal/exchange/bybit"
	"github.com/caravanmasterx/risk-engine/internal/logger"
	"github.com/caravanmasterx/risk-engine/internal/monitoring"
	"github.com/caravanmasterx/risk-engine/internal/regime"
	"github.com/caravanmasterx/risk-engine/internal/risk"
	"github.com/caravanmasterx/risk-engine/internal/volatility"
	"github.com/caravanmasterx/risk-engine/pkg/data"
	"github.com/caravanmasterx/risk-engine/pkg/reporting"
	"github.com/caravanmasterx/risk-engine/pkg/types"
)

func main() {
	var (
		configFile = flag.String("config", "", "YAML config file (optional, env otherwise)")
		symbol     = flag.String("symbol", "", "trading symbol (overrides config)")
		interval   = flag.String("interval", "", "kline interval (overrides config)")
		window     = flag.Int("window", 0, "candle window size (overrides config)")
		dataFile   = flag.String("data", "", "CSV candle file instead of live data")
		balance    = flag.Float64("balance", 10000, "account balance in quote currency")
		entry      = flag.Float64("entry", 0, "entry price (default: last close)")
		stop       = flag.Float64("stop", 0, "stop loss price (default: 5% below entry)")
		takeProfit = flag.Float64("take-profit", 0, "take profit price for setup validation")
		regimeFlag = flag.String("regime", "", "market regime override (normal|volatile|extreme)")
		winRate    = flag.Float64("win-rate", 0, "historical win rate for Kelly sizing")
		avgWin     = flag.Float64("avg-win", 0, "average winning trade for Kelly sizing")
		avgLoss    = flag.Float64("avg-loss", 0, "average losing trade for Kelly sizing")
		output     = flag.String("output", "console", "output format: console or excel")
		reportPath = flag.String("report", "results/risk_report.xlsx", "Excel report path")
		serveAddr  = flag.String("serve-metrics", "", "if set, serve Prometheus metrics on this address after the run")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, *symbol, *interval, *window)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	candles, err := loadCandles(cfg, *dataFile, log)
	if err != nil {
		log.Fatal("failed to load candles", zap.Error(err))
	}
	if len(candles) < 2 {
		log.Fatal("not enough candles for risk evaluation", zap.Int("count", len(candles)))
	}

	report := analyze(cfg, candles, *balance, *entry, *stop, *takeProfit, *regimeFlag, *winRate, *avgWin, *avgLoss, log)

	monitoring.RecordRiskMetrics(report.Symbol, report.Metrics)
	monitoring.RecordSizing(report.Symbol, report.Regime, report.Sizing)

	if err := writeReport(report, *output, *reportPath); err != nil {
		log.Fatal("failed to write report", zap.Error(err))
	}

	if *serveAddr != "" {
		log.Info("serving metrics", zap.String("addr", *serveAddr))
		http.Handle("/metrics", monitoring.NewMetricsHandler())
		if err := http.ListenAndServe(*serveAddr, nil); err != nil {
			log.Fatal("metrics server failed", zap.Error(err))
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(), nil
}

func applyFlagOverrides(cfg *config.Config, symbol, interval string, window int) {
	if symbol != "" {
		cfg.Data.Symbol = symbol
	}
	if interval != "" {
		cfg.Data.Interval = interval
	}
	if window > 0 {
		cfg.Data.Window = window
	}
}

func loadCandles(cfg *config.Config, dataFile string, log *zap.Logger) ([]types.OHLCV, error) {
	if dataFile != "" {
		log.Info("loading candles from file", zap.String("path", dataFile))
		return data.NewCSVProvider().LoadData(dataFile)
	}

	client := bybit.NewClient(bybit.Config{
		APIKey:    cfg.Exchange.APIKey,
		APISecret: cfg.Exchange.APISecret,
		Testnet:   cfg.Exchange.Testnet,
		Demo:      cfg.Exchange.Demo,
	})
	log.Info("fetching candles",
		zap.String("symbol", cfg.Data.Symbol),
		zap.String("interval", cfg.Data.Interval),
		zap.Int("window", cfg.Data.Window),
		zap.String("environment", client.Environment()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return client.GetKlines(ctx, bybit.KlineParams{
		Category: cfg.Data.Category,
		Symbol:   cfg.Data.Symbol,
		Interval: bybit.KlineInterval(cfg.Data.Interval),
		Limit:    cfg.Data.Window,
	})
}

func analyze(cfg *config.Config, candles []types.OHLCV, balance, entry, stop, takeProfit float64, regimeOverride string, winRate, avgWin, avgLoss float64, log *zap.Logger) *reporting.Report {
	closes := types.Closes(candles)

	if entry <= 0 {
		entry = closes[len(closes)-1]
		log.Info("using last close as entry", zap.Float64("entry", entry))
	}
	if stop <= 0 {
		stop = entry * 0.95
		log.Info("using default 5% stop", zap.Float64("stop", stop))
	}

	calc := risk.NewCalculator()
	metrics := calc.Evaluate(risk.PriceReturns(closes))

	adjuster := volatility.NewAdjuster(volatility.DefaultPeriod)
	annualizedVol := adjuster.HistoricalVolatility(candles)
	volAdjustment := adjuster.AdjustmentFactor(annualizedVol)

	marketRegime := regime.NewClassifier().ClassifyVolatility(annualizedVol)
	if regimeOverride != "" {
		marketRegime = regime.ParseRegime(regimeOverride)
	}

	manager := risk.NewManager(cfg.Risk, log.Named("risk"))
	sizing := manager.PositionSize(balance, entry, stop, volAdjustment, marketRegime.String())

	report := &reporting.Report{
		Symbol:         cfg.Data.Symbol,
		Generated:      time.Now(),
		AccountBalance: balance,
		EntryPrice:     entry,
		StopLoss:       stop,
		Regime:         marketRegime.String(),
		Metrics:        metrics,
		Sizing:         sizing,
		Kelly:          manager.KellyCriterion(winRate, avgWin, avgLoss),
	}

	if takeProfit > 0 {
		validation := manager.ValidateTrade(entry, takeProfit, stop)
		report.Validation = &validation
	}

	log.Info("risk assessment complete",
		zap.String("symbol", report.Symbol),
		zap.String("risk_level", metrics.Level.String()),
		zap.String("regime", report.Regime),
		zap.Float64("position_usd", sizing.PositionSizeUSD),
	)

	return report
}

func writeReport(report *reporting.Report, output, reportPath string) error {
	switch output {
	case "excel":
		if err := reporting.NewExcelReporter().WriteFile(report, reportPath); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", reportPath)
		return nil
	case "console":
		return reporting.NewConsoleReporter(os.Stdout).Write(report)
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}
