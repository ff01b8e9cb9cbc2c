// Package config loads the dashboard configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bethvourc/stockPriceDashboard/indicators"
	"github.com/bethvourc/stockPriceDashboard/yahoo"
)

// Config is the complete dashboard configuration.
type Config struct {
	Timezone   TimezoneConfig  `yaml:"timezone"`
	Dashboard  DashboardConfig `yaml:"dashboard"`
	Indicators IndicatorConfig `yaml:"indicators"`
	Watchlist  []string        `yaml:"watchlist"`
	History    HistoryConfig   `yaml:"history"`
}

// TimezoneConfig makes the timezone assumptions explicit instead of
// hardcoding UTC -> US/Eastern: Source is the zone zone-less feed
// timestamps are assumed to be in, Target the display zone.
type TimezoneConfig struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// DashboardConfig holds the default request parameters.
type DashboardConfig struct {
	Period    string `yaml:"period"`
	ChartType string `yaml:"chart_type"`
}

// IndicatorConfig holds the indicator windows.
type IndicatorConfig struct {
	SMAWindow  int     `yaml:"sma_window"`
	EMAWindow  int     `yaml:"ema_window"`
	RSIWindow  int     `yaml:"rsi_window"`
	MACDFast   int     `yaml:"macd_fast"`
	MACDSlow   int     `yaml:"macd_slow"`
	MACDSignal int     `yaml:"macd_signal"`
	BBWindow   int     `yaml:"bb_window"`
	BBK        float64 `yaml:"bb_k"`
}

// HistoryConfig holds the bar archive location.
type HistoryConfig struct {
	DBPath string `yaml:"db_path"`
}

// Default returns the standard configuration.
func Default() *Config {
	p := indicators.DefaultParams()
	return &Config{
		Timezone: TimezoneConfig{
			Source: "UTC",
			Target: "America/New_York",
		},
		Dashboard: DashboardConfig{
			Period:    "1mo",
			ChartType: "candlestick",
		},
		Indicators: IndicatorConfig{
			SMAWindow:  p.SMAWindow,
			EMAWindow:  p.EMAWindow,
			RSIWindow:  p.RSIWindow,
			MACDFast:   p.MACDFast,
			MACDSlow:   p.MACDSlow,
			MACDSignal: p.MACDSignal,
			BBWindow:   p.BBWindow,
			BBK:        p.BBK,
		},
		Watchlist: []string{"AAPL", "GOOGL", "AMZN", "MSFT"},
		History: HistoryConfig{
			DBPath: "./history.db",
		},
	}
}

// LoadFromFile loads and validates a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone.Source); err != nil {
		return fmt.Errorf("timezone.source: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone.Target); err != nil {
		return fmt.Errorf("timezone.target: %w", err)
	}
	if _, ok := yahoo.Intervals[c.Dashboard.Period]; !ok {
		return fmt.Errorf("unknown dashboard.period: %s", c.Dashboard.Period)
	}
	if c.Dashboard.ChartType != "candlestick" && c.Dashboard.ChartType != "line" {
		return fmt.Errorf("dashboard.chart_type must be 'candlestick' or 'line'")
	}
	for name, w := range map[string]int{
		"sma_window":  c.Indicators.SMAWindow,
		"ema_window":  c.Indicators.EMAWindow,
		"rsi_window":  c.Indicators.RSIWindow,
		"macd_fast":   c.Indicators.MACDFast,
		"macd_slow":   c.Indicators.MACDSlow,
		"macd_signal": c.Indicators.MACDSignal,
		"bb_window":   c.Indicators.BBWindow,
	} {
		if w <= 0 {
			return fmt.Errorf("indicators.%s must be positive", name)
		}
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow {
		return fmt.Errorf("indicators.macd_fast must be smaller than macd_slow")
	}
	if c.Indicators.BBK <= 0 {
		return fmt.Errorf("indicators.bb_k must be positive")
	}
	if c.History.DBPath == "" {
		return fmt.Errorf("history.db_path is required")
	}
	return nil
}

// Locations resolves the configured timezones.
func (c *Config) Locations() (source, target *time.Location, err error) {
	source, err = time.LoadLocation(c.Timezone.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("timezone.source: %w", err)
	}
	target, err = time.LoadLocation(c.Timezone.Target)
	if err != nil {
		return nil, nil, fmt.Errorf("timezone.target: %w", err)
	}
	return source, target, nil
}

// Params converts the indicator section to engine parameters.
func (c *Config) Params() indicators.Params {
	return indicators.Params{
		SMAWindow:  c.Indicators.SMAWindow,
		EMAWindow:  c.Indicators.EMAWindow,
		RSIWindow:  c.Indicators.RSIWindow,
		MACDFast:   c.Indicators.MACDFast,
		MACDSlow:   c.Indicators.MACDSlow,
		MACDSignal: c.Indicators.MACDSignal,
		BBWindow:   c.Indicators.BBWindow,
		BBK:        c.Indicators.BBK,
	}
}
