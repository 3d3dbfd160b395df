package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadData_EpochTimestamps tests parsing millisecond epoch rows
func TestLoadData_EpochTimestamps(t *testing.T) {
	path := writeCSV(t, `timestamp,open,high,low,close,volume
1735689600000,100,105,95,102,1000
1735776000000,102,110,101,108,1500
`)

	candles, err := NewCSVProvider().LoadData(path)
	require.NoError(t, err)

	require.Len(t, candles, 2)
	assert.Equal(t, 100.0, candles[0].Open)
	assert.Equal(t, 108.0, candles[1].Close)
	assert.True(t, candles[0].Timestamp.Before(candles[1].Timestamp))
}

// TestLoadData_DatetimeTimestamps tests parsing datetime rows
func TestLoadData_DatetimeTimestamps(t *testing.T) {
	path := writeCSV(t, `timestamp,open,high,low,close,volume
2025-01-01 00:00:00,100,105,95,102,1000
2025-01-02 00:00:00,102,110,101,108,1500
`)

	candles, err := NewCSVProvider().LoadData(path)
	require.NoError(t, err)
	assert.Len(t, candles, 2)
}

// TestLoadData_SkipsBadRows tests that malformed lines are skipped
func TestLoadData_SkipsBadRows(t *testing.T) {
	path := writeCSV(t, `timestamp,open,high,low,close,volume
1735689600000,100,105,95,102,1000
not-a-time,102,110,101,108,1500
1735862400000,abc,110,101,108,1500
1735948800000,108,112,107,111,900
`)

	candles, err := NewCSVProvider().LoadData(path)
	require.NoError(t, err)
	assert.Len(t, candles, 2)
}

// TestLoadData_MissingFile tests the error for a nonexistent file
func TestLoadData_MissingFile(t *testing.T) {
	_, err := NewCSVProvider().LoadData(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

// TestLoadData_NoValidRows tests the error when every row fails to parse
func TestLoadData_NoValidRows(t *testing.T) {
	path := writeCSV(t, `timestamp,open,high,low,close,volume
bad,row,only,x,y,z
`)

	_, err := NewCSVProvider().LoadData(path)
	assert.Error(t, err)
}
