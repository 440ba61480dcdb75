package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/typozero/internal/shortcut"
	"github.com/jask/typozero/internal/theme"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Shortcut ShortcutConfig `mapstructure:"shortcut"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme       string `mapstructure:"theme"`
	StartScreen string `mapstructure:"start_screen"`
}

// ShortcutConfig holds the global shortcut settings. Default is used until
// a recorded shortcut has been saved.
type ShortcutConfig struct {
	Default       string        `mapstructure:"default"`
	Reserved      []string      `mapstructure:"reserved"`
	RecordTimeout time.Duration `mapstructure:"record_timeout"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func home() string { return os.Getenv("HOME") }

// Path returns the config file location. Override with TYPOZERO_CONFIG.
func Path() string {
	if p := os.Getenv("TYPOZERO_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home(), ".config", "typozero", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix TYPOZERO_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(home(), ".local", "share", "typozero", "typozero.db"))
	v.SetDefault("ui.theme", theme.Light.String())
	v.SetDefault("ui.start_screen", "general")
	v.SetDefault("shortcut.default", "Cmd+Shift+P")
	v.SetDefault("shortcut.reserved", shortcut.DefaultReservedSpecs())
	v.SetDefault("shortcut.record_timeout", shortcut.DefaultTimeout)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(home(), ".local", "state", "typozero", "typozero.log"))

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("TYPOZERO_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home(), ".config", "typozero"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TYPOZERO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.start_screen", cfg.UI.StartScreen)
	v.Set("shortcut.default", cfg.Shortcut.Default)
	v.Set("shortcut.reserved", cfg.Shortcut.Reserved)
	v.Set("shortcut.record_timeout", cfg.Shortcut.RecordTimeout.String())
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the values Load cannot type-check.
func (c Config) Validate() error {
	if _, err := c.ThemeMode(); err != nil {
		return err
	}
	if _, err := c.DefaultShortcut(); err != nil {
		return err
	}
	if _, err := c.ReservedSet(); err != nil {
		return err
	}
	if c.Shortcut.RecordTimeout <= 0 {
		return fmt.Errorf("shortcut.record_timeout: must be positive, got %s", c.Shortcut.RecordTimeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path: empty")
	}
	return nil
}

func (c Config) ThemeMode() (theme.Mode, error) {
	m, err := theme.ParseMode(c.UI.Theme)
	if err != nil {
		return theme.Light, fmt.Errorf("ui.theme: %w", err)
	}
	return m, nil
}

func (c Config) DefaultShortcut() (shortcut.Binding, error) {
	b, err := shortcut.Parse(c.Shortcut.Default)
	if err != nil {
		return shortcut.Binding{}, fmt.Errorf("shortcut.default: %w", err)
	}
	return b, nil
}

// ReservedSet parses shortcut.reserved. An empty list means the built-in set.
func (c Config) ReservedSet() (shortcut.ReservedSet, error) {
	if len(c.Shortcut.Reserved) == 0 {
		return shortcut.DefaultReserved(), nil
	}
	set, err := shortcut.ParseReservedSet(c.Shortcut.Reserved)
	if err != nil {
		return shortcut.ReservedSet{}, fmt.Errorf("shortcut.reserved: %w", err)
	}
	return set, nil
}
