package main

import (
	"context"
	_ "embed"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"weatherlookup/apis/geocoding"
	"weatherlookup/apis/openweather"
	"weatherlookup/cli"
	"weatherlookup/config"
	"weatherlookup/manager"
	"weatherlookup/view"
)

//go:embed config.yaml
var configRaw []byte

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configRaw, os.Getenv("WEATHER_CONFIG"))
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.OpenWeather.APIKey == "" {
		slog.Warn("no API key configured, set OPENWEATHER_API_KEY")
	}

	geo := geocoding.New(cfg.OpenWeather)
	weatherApi := openweather.New(cfg.OpenWeather)

	newManager := func() *manager.Manager {
		return manager.New(geo, weatherApi, manager.Options{
			Debounce:         cfg.Search.Debounce,
			MinQueryLength:   cfg.Search.MinQueryLength,
			SuggestionLimit:  cfg.Search.SuggestionLimit,
			ResetClearsError: cfg.Search.ResetClearsError,
			Unit:             cfg.Display.DisplayUnit(),
			Logger:           logger,
		})
	}

	cmd, err := cli.New(newManager, view.Options{CityTime: cfg.Display.CityTime}, cfg.Display.DisplayUnit())
	if err != nil {
		slog.Error("new cli", "error", err)
		os.Exit(1)
	}

	if err = cmd.ExecuteContext(ctx); err != nil {
		slog.Error("exec", "error", err)
		stop()
		os.Exit(1)
	}
}
