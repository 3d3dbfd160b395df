package bybit

import (
	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// Client is a read-only market data client for Bybit. The risk engine
// never places orders, so only the kline and ticker endpoints are
// exposed.
type Client struct {
	httpClient *bybit_api.Client
	testnet    bool
	demo       bool
}

// Config holds the configuration for the Bybit client. Keys are only
// needed for private endpoints; market data works without them.
type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool
	Demo      bool
}

// NewClient creates a new Bybit market data client.
func NewClient(config Config) *Client {
	var baseURL string
	if config.Demo {
		baseURL = "https://api-demo.bybit.com"
	} else if config.Testnet {
		baseURL = bybit_api.TESTNET
	} else {
		baseURL = bybit_api.MAINNET
	}

	httpClient := bybit_api.NewBybitHttpClient(
		config.APIKey,
		config.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	return &Client{
		httpClient: httpClient,
		testnet:    config.Testnet,
		demo:       config.Demo,
	}
}

// Environment returns a string describing the configured environment.
func (c *Client) Environment() string {
	if c.demo {
		return "demo"
	}
	if c.testnet {
		return "testnet"
	}
	return "mainnet"
}
