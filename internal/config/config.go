// Package config loads settings for the pilot demo binary.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds demo application configuration.
type Config struct {
	UI  UIConfig
	Log LogConfig
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// AccentColor is an ANSI color used for sheet borders.
	AccentColor string `mapstructure:"accent_color"`
	// SheetDetent is the default sheet height as a fraction of the
	// screen, used when a destination supplies no detents.
	SheetDetent float64 `mapstructure:"sheet_detent"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from file and env. Env var overrides use
// prefix PILOT_; the config file is TOML, at $PILOT_CONFIG or
// ~/.config/pilot/config.toml.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("ui.accent_color", "62")
	v.SetDefault("ui.sheet_detent", 0.5)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PILOT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pilot"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PILOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.SheetDetent <= 0 || c.UI.SheetDetent > 1 {
		return Config{}, fmt.Errorf("ui.sheet_detent %v out of range (0, 1]", c.UI.SheetDetent)
	}
	return c, nil
}
