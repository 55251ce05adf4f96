// Package config provides Viper-based configuration loading for the duel.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Game modes.
const (
	ModeVersus = "versus"
	ModeBot    = "bot"
)

// GameConfig holds match and loop settings.
type GameConfig struct {
	// Mode is "versus" for two humans or "bot" for a human against the bot.
	Mode string `mapstructure:"mode"`
	// Seed makes matches reproducible. 0 means a fresh crypto seed.
	Seed int64 `mapstructure:"seed"`
	// FrameRate is the number of frames rendered per second.
	FrameRate int `mapstructure:"frame_rate"`
	// BotDelay is how long the bot waits before acting.
	BotDelay time.Duration `mapstructure:"bot_delay"`
}

// BotDelayFrames converts BotDelay to a whole number of frames.
//
// Postcondition: Returns >= 0.
func (g GameConfig) BotDelayFrames() int {
	if g.BotDelay <= 0 || g.FrameRate <= 0 {
		return 0
	}
	return int(g.BotDelay * time.Duration(g.FrameRate) / time.Second)
}

// FrameInterval returns the wall-clock time between frames.
func (g GameConfig) FrameInterval() time.Duration {
	if g.FrameRate <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(g.FrameRate)
}

// BotConfig tunes the bot's decision thresholds.
type BotConfig struct {
	FinishBelow   int `mapstructure:"finish_below"`
	DefendBelow   int `mapstructure:"defend_below"`
	HealBelow     int `mapstructure:"heal_below"`
	HealPercent   int `mapstructure:"heal_percent"`
	AttackPercent int `mapstructure:"attack_percent"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File is where logs are written. The terminal belongs to the UI, so
	// logs never go to stdout or stderr while a match is on screen.
	File string `mapstructure:"file"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	Dataset  string `mapstructure:"dataset"`
}

// Config is the top-level application configuration.
type Config struct {
	Game      GameConfig      `mapstructure:"game"`
	Bot       BotConfig       `mapstructure:"bot"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBot(c.Bot); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTelemetry(c.Telemetry); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.Mode != ModeVersus && g.Mode != ModeBot {
		errs = append(errs, fmt.Sprintf("game.mode must be one of [versus, bot], got %q", g.Mode))
	}
	if g.FrameRate < 1 || g.FrameRate > 240 {
		errs = append(errs, fmt.Sprintf("game.frame_rate must be 1-240, got %d", g.FrameRate))
	}
	if g.BotDelay < 0 {
		errs = append(errs, "game.bot_delay must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBot(b BotConfig) error {
	var errs []string
	for name, pct := range map[string]int{"bot.heal_percent": b.HealPercent, "bot.attack_percent": b.AttackPercent} {
		if pct < 0 || pct > 100 {
			errs = append(errs, fmt.Sprintf("%s must be 0-100, got %d", name, pct))
		}
	}
	if b.FinishBelow < 0 || b.DefendBelow < 0 || b.HealBelow < 0 {
		errs = append(errs, "bot health thresholds must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.File == "" {
		return errors.New("logging.file must not be empty")
	}
	return nil
}

func validateTelemetry(t TelemetryConfig) error {
	if t.Enabled && t.Endpoint == "" {
		return errors.New("telemetry.endpoint must not be empty when telemetry is enabled")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DUEL_ prefix
	v.SetEnvPrefix("DUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: defaults are invalid: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.mode", ModeVersus)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.frame_rate", 60)
	v.SetDefault("game.bot_delay", "2s")

	v.SetDefault("bot.finish_below", 30)
	v.SetDefault("bot.defend_below", 20)
	v.SetDefault("bot.heal_below", 50)
	v.SetDefault("bot.heal_percent", 30)
	v.SetDefault("bot.attack_percent", 70)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "duel.log")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "https://api.honeycomb.io")
	v.SetDefault("telemetry.api_key", "")
	v.SetDefault("telemetry.dataset", "duel")
}
