package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/utils"
)

// Config holds the user-tunable settings read from config.toml
type Config struct {
	DBPath          string
	MaxRespins      int
	SpinDuration    time.Duration
	TransitionDelay time.Duration
	Timezone        string
	Debug           bool

	// Path is where the config was (or would be) read from
	Path string
}

type fileConfig struct {
	DBPath          string `toml:"db_path,omitempty"`
	MaxRespins      *int   `toml:"max_respins,omitempty"`
	SpinDuration    string `toml:"spin_duration,omitempty"`
	TransitionDelay string `toml:"transition_delay,omitempty"`
	Timezone        string `toml:"timezone,omitempty"`
	Debug           bool   `toml:"debug,omitempty"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DBPath:          utils.ExpandHome(constants.DefaultDBPath),
		MaxRespins:      constants.MaxRespins,
		SpinDuration:    constants.DefaultSpinDuration,
		TransitionDelay: constants.DefaultTransition,
		Timezone:        "Local",
		Path:            utils.ExpandHome(constants.DefaultConfigPath),
	}
}

// Load parses the config at path, falling back to defaults when the file is missing.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		cfg.Path = utils.ExpandHome(path)
	}

	file, err := os.Open(cfg.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if p := strings.TrimSpace(raw.DBPath); p != "" {
		cfg.DBPath = utils.ExpandHome(p)
	}
	if raw.MaxRespins != nil {
		if *raw.MaxRespins < 0 {
			return Config{}, fmt.Errorf("max_respins must be zero or more, got %d", *raw.MaxRespins)
		}
		cfg.MaxRespins = *raw.MaxRespins
	}
	if cfg.SpinDuration, err = parseDuration("spin_duration", raw.SpinDuration, cfg.SpinDuration); err != nil {
		return Config{}, err
	}
	if cfg.TransitionDelay, err = parseDuration("transition_delay", raw.TransitionDelay, cfg.TransitionDelay); err != nil {
		return Config{}, err
	}
	if tz := strings.TrimSpace(raw.Timezone); tz != "" {
		if !utils.ValidateTimezone(tz) {
			return Config{}, fmt.Errorf("invalid timezone %q", tz)
		}
		cfg.Timezone = tz
	}
	cfg.Debug = raw.Debug

	return cfg, nil
}

// Save writes cfg as TOML, creating the parent directory
func Save(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	respins := cfg.MaxRespins
	raw := fileConfig{
		DBPath:          cfg.DBPath,
		MaxRespins:      &respins,
		SpinDuration:    cfg.SpinDuration.String(),
		TransitionDelay: cfg.TransitionDelay.String(),
		Timezone:        cfg.Timezone,
		Debug:           cfg.Debug,
	}
	data, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(cfg.Path, data, 0600)
}

// Location resolves the configured timezone
func (c Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Dir is the directory holding the config file, used for logs and locks
func (c Config) Dir() string {
	return filepath.Dir(c.Path)
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return d, nil
}
