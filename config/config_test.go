package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())

	source, target, err := cfg.Locations()
	require.NoError(t, err)
	assert.Equal(t, "UTC", source.String())
	assert.Equal(t, "America/New_York", target.String())

	p := cfg.Params()
	assert.Equal(t, 20, p.SMAWindow)
	assert.Equal(t, 14, p.RSIWindow)
	assert.Equal(t, 2.0, p.BBK)
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
timezone:
  target: Europe/London
dashboard:
  period: 1y
indicators:
  rsi_window: 21
watchlist: [NVDA, TSLA]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Europe/London", cfg.Timezone.Target)
	assert.Equal(t, "UTC", cfg.Timezone.Source, "unset fields keep defaults")
	assert.Equal(t, "1y", cfg.Dashboard.Period)
	assert.Equal(t, 21, cfg.Indicators.RSIWindow)
	assert.Equal(t, 20, cfg.Indicators.SMAWindow)
	assert.Equal(t, []string{"NVDA", "TSLA"}, cfg.Watchlist)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Timezone.Target = "Mars/Olympus"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Dashboard.Period = "3y"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Dashboard.ChartType = "pie"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Indicators.RSIWindow = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Indicators.MACDFast = 30
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.History.DBPath = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadFromFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
