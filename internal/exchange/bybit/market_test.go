package bybit

import (
	"testing"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseKlineResponse tests that newest-first API rows come out oldest first
func TestParseKlineResponse(t *testing.T) {
	resp := &bybit_api.ServerResponse{
		RetCode: 0,
		RetMsg:  "OK",
		Result: map[string]interface{}{
			"symbol":   "BTCUSDT",
			"category": "spot",
			"list": [][]string{
				{"1735776000000", "102", "110", "101", "108", "1500", "160000"},
				{"1735689600000", "100", "105", "95", "102", "1000", "100000"},
			},
		},
	}

	candles, err := parseKlineResponse(resp)
	require.NoError(t, err)

	require.Len(t, candles, 2)
	assert.Equal(t, 100.0, candles[0].Open)
	assert.Equal(t, 108.0, candles[1].Close)
	assert.True(t, candles[0].Timestamp.Before(candles[1].Timestamp))
}

// TestParseKlineResponse_APIError tests non-zero return codes
func TestParseKlineResponse_APIError(t *testing.T) {
	resp := &bybit_api.ServerResponse{RetCode: 10001, RetMsg: "params error"}

	_, err := parseKlineResponse(resp)
	assert.Error(t, err)
}

// TestParseKlineResponse_SkipsShortRows tests incomplete kline rows
func TestParseKlineResponse_SkipsShortRows(t *testing.T) {
	resp := &bybit_api.ServerResponse{
		RetCode: 0,
		Result: map[string]interface{}{
			"list": [][]string{
				{"1735689600000", "100", "105"},
			},
		},
	}

	candles, err := parseKlineResponse(resp)
	require.NoError(t, err)
	assert.Empty(t, candles)
}

// TestParseLatestPriceResponse tests ticker price extraction
func TestParseLatestPriceResponse(t *testing.T) {
	resp := &bybit_api.ServerResponse{
		RetCode: 0,
		Result: map[string]interface{}{
			"category": "spot",
			"list": []map[string]interface{}{
				{"symbol": "BTCUSDT", "lastPrice": "65123.5"},
			},
		},
	}

	price, err := parseLatestPriceResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, 65123.5, price)
}

// TestParseLatestPriceResponse_EmptyList tests the empty ticker guard
func TestParseLatestPriceResponse_EmptyList(t *testing.T) {
	resp := &bybit_api.ServerResponse{
		RetCode: 0,
		Result:  map[string]interface{}{"category": "spot", "list": []map[string]interface{}{}},
	}

	_, err := parseLatestPriceResponse(resp)
	assert.Error(t, err)
}
