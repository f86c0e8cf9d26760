package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

type UIConfig struct {
	Theme           string `mapstructure:"theme"`
	MouseEnabled    bool   `mapstructure:"mouse_enabled"`
	PanelWidthRatio int    `mapstructure:"panel_width_ratio"`
}

type EditorConfig struct {
	IndentWidth  int  `mapstructure:"indent_width"`
	TabSize      int  `mapstructure:"tab_size"`
	FormatOnSave bool `mapstructure:"format_on_save"`
}

type SessionConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	RestoreTabs bool `mapstructure:"restore_tabs"`
	MaxRecent   int  `mapstructure:"max_recent"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:           "default",
			MouseEnabled:    true,
			PanelWidthRatio: 35,
		},
		Editor: EditorConfig{
			IndentWidth:  2,
			TabSize:      4,
			FormatOnSave: false,
		},
		Session: SessionConfig{
			Enabled:     true,
			RestoreTabs: true,
			MaxRecent:   20,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load loads configuration from files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config paths in priority order: user config dir, then cwd
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "lazyjson"))
	}
	v.AddConfigPath(".")

	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.mouse_enabled", true)
	v.SetDefault("ui.panel_width_ratio", 35)
	v.SetDefault("editor.indent_width", 2)
	v.SetDefault("editor.tab_size", 4)
	v.SetDefault("editor.format_on_save", false)
	v.SetDefault("session.enabled", true)
	v.SetDefault("session.restore_tabs", true)
	v.SetDefault("session.max_recent", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	// A missing config file is fine, defaults apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lazyjson"), nil
}
