// Package config loads host-side runtime settings via viper.
package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for a horizon invocation.
// Values are populated from .horizon.yaml, HORIZON_* env vars, and
// CLI flags. The scheduling engine itself takes everything as
// parameters; this is host-side plumbing only.
type Config struct {
	PlanPath          string  `mapstructure:"plan_path"`
	DBPath            string  `mapstructure:"db_path"`
	HoursPerDay       float64 `mapstructure:"hours_per_day"`
	PadDays           int     `mapstructure:"pad_days"`
	DefaultWindowDays int     `mapstructure:"default_window_days"`
	FloatEpsilon      float64 `mapstructure:"float_epsilon"`
	RenderWidth       int     `mapstructure:"render_width"`
	NoColor           bool    `mapstructure:"no_color"`
	Verbose           bool    `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for
// any values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("plan_path", "plan.toml")
	viper.SetDefault("db_path", "")
	viper.SetDefault("hours_per_day", 8.0)
	viper.SetDefault("pad_days", 7)
	viper.SetDefault("default_window_days", 30)
	viper.SetDefault("float_epsilon", 0.01)
	viper.SetDefault("render_width", 100)
	viper.SetDefault("no_color", false)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
