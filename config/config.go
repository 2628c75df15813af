package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"weatherlookup/helper"
)

type Config struct {
	OpenWeather OpenWeather `yaml:"openweather"`
	Search      Search      `yaml:"search"`
	Display     Display     `yaml:"display"`
	Log         Log         `yaml:"log"`
}

type OpenWeather struct {
	APIKey       string        `yaml:"apiKey"`
	GeocodingURL string        `yaml:"geocodingURL"`
	WeatherURL   string        `yaml:"weatherURL"`
	Timeout      time.Duration `yaml:"timeout"`
}

type Search struct {
	Debounce         time.Duration `yaml:"debounce"`
	MinQueryLength   int           `yaml:"minQueryLength"`
	SuggestionLimit  int           `yaml:"suggestionLimit"`
	ResetClearsError bool          `yaml:"resetClearsError"`
}

type Display struct {
	Unit     string `yaml:"unit"`
	CityTime bool   `yaml:"cityTime"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Load decodes the embedded defaults, overlays the file at path when
// path is not empty and finally applies environment overrides.
func Load(defaults []byte, path string) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(defaults, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode defaults: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err = yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.OpenWeather.APIKey = v
	}
	if v := os.Getenv("WEATHER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error

	if c.OpenWeather.GeocodingURL == "" {
		errs = append(errs, errors.New("openweather.geocodingURL is required"))
	}
	if c.OpenWeather.WeatherURL == "" {
		errs = append(errs, errors.New("openweather.weatherURL is required"))
	}
	if c.OpenWeather.Timeout < 0 {
		errs = append(errs, errors.New("openweather.timeout must not be negative"))
	}
	if c.Search.Debounce < 0 {
		errs = append(errs, errors.New("search.debounce must not be negative"))
	}
	if c.Search.MinQueryLength <= 0 {
		errs = append(errs, errors.New("search.minQueryLength must be positive"))
	}
	if c.Search.SuggestionLimit <= 0 {
		errs = append(errs, errors.New("search.suggestionLimit must be positive"))
	}
	if _, err := helper.ParseUnit(c.Display.Unit); err != nil {
		errs = append(errs, fmt.Errorf("display.unit: %w", err))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// DisplayUnit returns the configured unit, Celsius when it is invalid.
func (d Display) DisplayUnit() helper.Unit {
	unit, err := helper.ParseUnit(d.Unit)
	if err != nil {
		return helper.Celsius
	}
	return unit
}

func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(l.Level) == "" {
		return slog.LevelInfo, nil
	}
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}
