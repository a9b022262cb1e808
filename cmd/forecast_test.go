//go:build !integration

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastCmd_Scenario(t *testing.T) {
	cfg = testConfig()

	f := forecastCmd.Flags()
	require.NoError(t, f.Set("sales", "150000"))
	require.NoError(t, f.Set("goal", "300000"))
	require.NoError(t, f.Set("date", "2025-01-15"))
	require.NoError(t, f.Set("json", "true"))
	defer resetFlags(forecastCmd)

	var buf bytes.Buffer
	forecastCmd.SetOut(&buf)
	defer forecastCmd.SetOut(nil)

	require.NoError(t, forecastCmd.RunE(forecastCmd, nil))

	var output forecastOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, 31, output.Metrics.DaysInMonth)
	assert.Equal(t, "10000", output.Metrics.DailyAverage.String())
	assert.Equal(t, "310000", output.Metrics.Projected.String())
	assert.Equal(t, "103", output.Metrics.Completion.String())
	assert.True(t, output.Metrics.IsPacingGood)
	assert.Empty(t, output.Chart)
}

func TestForecastCmd_WithChart(t *testing.T) {
	cfg = testConfig()

	f := forecastCmd.Flags()
	require.NoError(t, f.Set("sales", "150000"))
	require.NoError(t, f.Set("goal", "300000"))
	require.NoError(t, f.Set("date", "2025-01-15"))
	require.NoError(t, f.Set("chart", "true"))
	require.NoError(t, f.Set("json", "true"))
	defer resetFlags(forecastCmd)

	var buf bytes.Buffer
	forecastCmd.SetOut(&buf)
	defer forecastCmd.SetOut(nil)

	require.NoError(t, forecastCmd.RunE(forecastCmd, nil))

	var output forecastOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Chart, 31)
	assert.NotNil(t, output.Chart[0].Actual)
	assert.NotNil(t, output.Chart[30].Forecast)
}

func TestForecastCmd_GoalFromConfig(t *testing.T) {
	cfg = testConfig()
	cfg.Forecast.MonthlyGoal = 300_000

	f := forecastCmd.Flags()
	require.NoError(t, f.Set("sales", "150000"))
	require.NoError(t, f.Set("date", "2025-01-15"))
	require.NoError(t, f.Set("json", "true"))
	defer resetFlags(forecastCmd)

	var buf bytes.Buffer
	forecastCmd.SetOut(&buf)
	defer forecastCmd.SetOut(nil)

	require.NoError(t, forecastCmd.RunE(forecastCmd, nil))

	var output forecastOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "300000", output.Metrics.Goal.String())
}

func TestForecastCmd_Observations(t *testing.T) {
	cfg = testConfig()

	dir := t.TempDir()
	path := filepath.Join(dir, "daily.yaml")
	daily := `
- day: 1
  sales: 5000
- day: 2
  sales: 7000
`
	require.NoError(t, os.WriteFile(path, []byte(daily), 0644))

	f := forecastCmd.Flags()
	require.NoError(t, f.Set("sales", "12000"))
	require.NoError(t, f.Set("goal", "60000"))
	require.NoError(t, f.Set("date", "2025-01-02"))
	require.NoError(t, f.Set("observations", path))
	require.NoError(t, f.Set("chart", "true"))
	require.NoError(t, f.Set("json", "true"))
	defer resetFlags(forecastCmd)

	var buf bytes.Buffer
	forecastCmd.SetOut(&buf)
	defer forecastCmd.SetOut(nil)

	require.NoError(t, forecastCmd.RunE(forecastCmd, nil))

	var output forecastOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Chart, 31)
	assert.Equal(t, "5000", output.Chart[0].Actual.String())
	assert.Equal(t, "12000", output.Chart[1].Actual.String())
}

func TestForecastCmd_BadDate(t *testing.T) {
	cfg = testConfig()

	require.NoError(t, forecastCmd.Flags().Set("date", "15-01-2025"))
	defer resetFlags(forecastCmd)

	err := forecastCmd.RunE(forecastCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse --date")
}
