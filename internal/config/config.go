// Package config loads adaptly settings from adaptly.yaml, ADAPTLY_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved adaptly configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Session  SessionConfig  `mapstructure:"session"`
	Emotion  EmotionConfig  `mapstructure:"emotion"`
	Learner  LearnerConfig  `mapstructure:"learner"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // empty selects the default data path
}

// LogConfig selects level, encoder and an optional rotating log file.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// SessionConfig tunes signal computation.
type SessionConfig struct {
	// ExpectedResponseMs is the latency an attempt is measured against when
	// the caller does not supply one.
	ExpectedResponseMs int `mapstructure:"expected_response_ms"`
}

// EmotionConfig tunes emotion detection.
type EmotionConfig struct {
	// MessageSeed seeds encouragement message selection. Zero seeds from the clock.
	MessageSeed uint64 `mapstructure:"message_seed"`
}

// LearnerConfig holds defaults for learner profiles.
type LearnerConfig struct {
	// DefaultTimeMinutes is used for presentation duration fit when the
	// learner profile has no time budget. Zero disables the fallback.
	DefaultTimeMinutes int `mapstructure:"default_time_minutes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "warn", Format: "console"},
		Session: SessionConfig{ExpectedResponseMs: 30000},
	}
}

// NewViper returns a viper instance with defaults and environment binding.
// configFile, when set, replaces the adaptly.yaml search.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("session.expected_response_ms", d.Session.ExpectedResponseMs)
	v.SetDefault("emotion.message_seed", d.Emotion.MessageSeed)
	v.SetDefault("learner.default_time_minutes", d.Learner.DefaultTimeMinutes)

	v.SetEnvPrefix("ADAPTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v
	}
	v.SetConfigName("adaptly")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	return v
}

// Load reads the config file (if any) and decodes the merged settings.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Session.ExpectedResponseMs <= 0 {
		return fmt.Errorf("session.expected_response_ms must be positive, got %d", c.Session.ExpectedResponseMs)
	}
	if c.Learner.DefaultTimeMinutes < 0 {
		return fmt.Errorf("learner.default_time_minutes must not be negative, got %d", c.Learner.DefaultTimeMinutes)
	}
	return nil
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "adaptly")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "adaptly")
}
