// Package config provides configuration types, defaults, and persistence
// for vahanlens.
package config

import (
	"fmt"
	"time"

	"github.com/adikkala/vahanlens/internal/tracing"
)

// Config holds all configuration options for vahanlens.
type Config struct {
	// DBPath is the SQLite database file holding registration records.
	DBPath string `mapstructure:"db_path"`

	// AutoRefresh reloads the dashboard when the database changes on disk.
	AutoRefresh bool `mapstructure:"auto_refresh"`

	// AutoRefreshDebounce coalesces change bursts into one refresh.
	AutoRefreshDebounce time.Duration `mapstructure:"auto_refresh_debounce"`

	UI      UIConfig       `mapstructure:"ui"`
	Theme   ThemeConfig    `mapstructure:"theme"`
	Seed    SeedConfig     `mapstructure:"seed"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// ShowKPIs toggles the headline indicator strip.
	ShowKPIs bool `mapstructure:"show_kpis"`

	// InsightsStyle selects the glamour style for the insights pane.
	// "dark" (default) or "light".
	InsightsStyle string `mapstructure:"insights_style"`
}

// ThemeConfig holds color customization options (hex colors).
type ThemeConfig struct {
	Accent   string `mapstructure:"accent"`
	Subtle   string `mapstructure:"subtle"`
	Positive string `mapstructure:"positive"`
	Negative string `mapstructure:"negative"`
}

// SeedConfig holds defaults for the illustrative data generator.
type SeedConfig struct {
	// RNGSeed makes generated datasets reproducible.
	RNGSeed int64 `mapstructure:"rng_seed"`

	// FromYear and ToYear bound the generated range (whole years).
	FromYear int `mapstructure:"from_year"`
	ToYear   int `mapstructure:"to_year"`
}

// DefaultDBPath is where the database lives when no path is configured.
const DefaultDBPath = ".vahanlens/registrations.db"

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		DBPath:              DefaultDBPath,
		AutoRefresh:         true,
		AutoRefreshDebounce: time.Second,
		UI: UIConfig{
			ShowKPIs:      true,
			InsightsStyle: "dark",
		},
		Theme: ThemeConfig{
			Accent:   "#1F77B4",
			Subtle:   "#666666",
			Positive: "#28A745",
			Negative: "#DC3545",
		},
		Seed: SeedConfig{
			RNGSeed:  42,
			FromYear: 2021,
			ToYear:   2023,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks cross-field constraints that viper cannot.
func Validate(cfg Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if cfg.AutoRefreshDebounce < 0 {
		return fmt.Errorf("auto_refresh_debounce must not be negative")
	}
	if cfg.Seed.FromYear > cfg.Seed.ToYear {
		return fmt.Errorf("seed.from_year %d is after seed.to_year %d", cfg.Seed.FromYear, cfg.Seed.ToYear)
	}
	switch cfg.UI.InsightsStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.insights_style must be \"dark\" or \"light\", got %q", cfg.UI.InsightsStyle)
	}
	return nil
}
