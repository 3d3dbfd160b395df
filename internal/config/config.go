package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/caravanmasterx/risk-engine/internal/risk"
)

// Config holds the full runtime configuration: the risk policy plus the
// settings for the surrounding tool (exchange access, data window,
// monitoring).
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	Risk risk.Config `yaml:"risk"`

	Exchange struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		Testnet   bool   `yaml:"testnet"`
		Demo      bool   `yaml:"demo"`
	} `yaml:"exchange"`

	Data struct {
		Symbol   string `yaml:"symbol"`
		Category string `yaml:"category"`
		Interval string `yaml:"interval"`
		Window   int    `yaml:"window"`
	} `yaml:"data"`

	Monitoring struct {
		PrometheusPort int `yaml:"prometheus_port"`
	} `yaml:"monitoring"`
}

// Load builds the configuration from environment variables, reading an
// optional .env file first. Missing variables fall back to defaults.
func Load() *Config {
	// .env is optional; ignore the error when it does not exist
	_ = godotenv.Load()

	cfg := defaults()

	cfg.Environment = getEnv("ENV", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.Risk.BaseRiskPerTrade = getEnvFloat("BASE_RISK_PER_TRADE", cfg.Risk.BaseRiskPerTrade)
	cfg.Risk.MaxPortfolioRisk = getEnvFloat("MAX_PORTFOLIO_RISK", cfg.Risk.MaxPortfolioRisk)
	cfg.Risk.MaxTotalExposure = getEnvFloat("MAX_TOTAL_EXPOSURE", cfg.Risk.MaxTotalExposure)
	cfg.Risk.MinRiskReward = getEnvFloat("MIN_RISK_REWARD", cfg.Risk.MinRiskReward)

	cfg.Exchange.APIKey = getEnv("BYBIT_API_KEY", cfg.Exchange.APIKey)
	cfg.Exchange.APISecret = getEnv("BYBIT_API_SECRET", cfg.Exchange.APISecret)
	cfg.Exchange.Testnet = getEnvBool("BYBIT_TESTNET", cfg.Exchange.Testnet)
	cfg.Exchange.Demo = getEnvBool("BYBIT_DEMO", cfg.Exchange.Demo)

	cfg.Data.Symbol = getEnv("SYMBOL", cfg.Data.Symbol)
	cfg.Data.Category = getEnv("CATEGORY", cfg.Data.Category)
	cfg.Data.Interval = getEnv("INTERVAL", cfg.Data.Interval)
	cfg.Data.Window = getEnvInt("WINDOW", cfg.Data.Window)

	cfg.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", cfg.Monitoring.PrometheusPort)

	return cfg
}

// LoadFile reads a YAML configuration file and applies environment
// overrides on top of it.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		Environment: "development",
		LogLevel:    "info",
		Risk:        risk.DefaultConfig(),
	}
	cfg.Exchange.Testnet = true
	cfg.Data.Symbol = "BTCUSDT"
	cfg.Data.Category = "spot"
	cfg.Data.Interval = "D"
	cfg.Data.Window = 90
	cfg.Monitoring.PrometheusPort = 8080
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	cfg.Environment = getEnv("ENV", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Exchange.APIKey = getEnv("BYBIT_API_KEY", cfg.Exchange.APIKey)
	cfg.Exchange.APISecret = getEnv("BYBIT_API_SECRET", cfg.Exchange.APISecret)
}

// Validate checks that the risk policy and data window are usable.
func (c *Config) Validate() error {
	if c.Risk.BaseRiskPerTrade <= 0 || c.Risk.BaseRiskPerTrade > 1 {
		return fmt.Errorf("base_risk_per_trade must be in (0, 1], got %v", c.Risk.BaseRiskPerTrade)
	}
	if c.Risk.MaxPortfolioRisk <= 0 || c.Risk.MaxPortfolioRisk > 1 {
		return fmt.Errorf("max_portfolio_risk must be in (0, 1], got %v", c.Risk.MaxPortfolioRisk)
	}
	if c.Risk.MaxTotalExposure <= 0 || c.Risk.MaxTotalExposure > 1 {
		return fmt.Errorf("max_total_exposure must be in (0, 1], got %v", c.Risk.MaxTotalExposure)
	}
	if c.Risk.MaxPortfolioRisk > c.Risk.MaxTotalExposure {
		return fmt.Errorf("max_portfolio_risk (%v) cannot exceed max_total_exposure (%v)",
			c.Risk.MaxPortfolioRisk, c.Risk.MaxTotalExposure)
	}
	if c.Risk.MinRiskReward < 0 {
		return fmt.Errorf("min_risk_reward cannot be negative, got %v", c.Risk.MinRiskReward)
	}
	if c.Data.Window < 2 {
		return fmt.Errorf("data window must be at least 2, got %d", c.Data.Window)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}
