// Package config loads and validates backtest configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents a complete backtest configuration.
type Config struct {
	Strategy  StrategyConfig  `json:"strategy" yaml:"strategy"`
	Broker    BrokerConfig    `json:"broker" yaml:"broker"`
	Analyzers AnalyzersConfig `json:"analyzers" yaml:"analyzers"`
	Data      DataConfig      `json:"data" yaml:"data"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
}

// StrategyConfig selects the trading rule and its indicator parameters.
type StrategyConfig struct {
	Name      string  `json:"name" yaml:"name"`
	Period    int     `json:"period" yaml:"period"`
	Devfactor float64 `json:"devfactor" yaml:"devfactor"`
}

// BrokerConfig contains portfolio initialization parameters.
type BrokerConfig struct {
	InitialCash    float64 `json:"initial_cash" yaml:"initial_cash"`
	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`
}

// AnalyzersConfig contains return-measurement parameters.
type AnalyzersConfig struct {
	TradingPeriodsPerYear int `json:"trading_periods_per_year" yaml:"trading_periods_per_year"`
}

// DataConfig points at the bar dataset. File may be a .csv, .csv.xz, or a
// .zip archive containing a single CSV.
type DataConfig struct {
	File string `json:"file" yaml:"file"`
}

// JournalConfig contains persistence parameters. Type "none" (or empty)
// disables journaling.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv", or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		Strategy: StrategyConfig{
			Name:      "bollinger-reversion",
			Period:    20,
			Devfactor: 2.0,
		},
		Broker: BrokerConfig{
			InitialCash:    10000.0,
			CommissionRate: 0.001,
		},
		Analyzers: AnalyzersConfig{
			TradingPeriodsPerYear: 252,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON), applying
// defaults for unset fields.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if c.Strategy.Period <= 0 {
		return fmt.Errorf("strategy.period must be positive")
	}
	if c.Strategy.Devfactor < 0 {
		return fmt.Errorf("strategy.devfactor must be non-negative")
	}
	if c.Broker.InitialCash <= 0 {
		return fmt.Errorf("broker.initial_cash must be positive")
	}
	if c.Broker.CommissionRate < 0 || c.Broker.CommissionRate >= 1 {
		return fmt.Errorf("broker.commission_rate must be in [0, 1)")
	}
	if c.Analyzers.TradingPeriodsPerYear <= 0 {
		return fmt.Errorf("analyzers.trading_periods_per_year must be positive")
	}

	switch strings.ToLower(c.Journal.Type) {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}
