package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"weatherlookup/config"
	"weatherlookup/manager"
)

const apiName = "api.openweathermap.org"

// New returns a client for the current-weather endpoint. Values are
// always requested in metric units.
func New(cfg config.OpenWeather) *weatherApi {
	client := resty.New().SetBaseURL(cfg.WeatherURL)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &weatherApi{
		client: client,
		apiKey: cfg.APIKey,
		logger: slog.Default().With("component", apiName),
	}
}

type weatherApi struct {
	client *resty.Client
	apiKey string
	logger *slog.Logger
}

func (w *weatherApi) Get(ctx context.Context, query manager.Query) (manager.Snapshot, error) {
	params := map[string]string{
		"appid": w.apiKey,
		"units": "metric",
	}

	if query.Coordinates != nil {
		params["lat"] = strconv.FormatFloat(query.Coordinates.Lat, 'f', -1, 64)
		params["lon"] = strconv.FormatFloat(query.Coordinates.Lon, 'f', -1, 64)
	} else {
		params["q"] = query.City
	}

	w.logger.Debug("weather request", "q", params["q"], "lat", params["lat"], "lon", params["lon"])

	return processRequest(ctx, w.client, "/weather", params)
}

func processRequest(ctx context.Context, client *resty.Client, path string, params map[string]string) (manager.Snapshot, error) {
	request := client.R().SetContext(ctx)
	request.SetQueryParams(params)

	response, err := request.Get(path)
	if err != nil {
		return manager.Snapshot{}, transportError(path, err)
	}

	if response.StatusCode() != http.StatusOK {
		apiErr := &manager.APIError{StatusCode: response.StatusCode()}

		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(response.Body(), &body) == nil {
			apiErr.Message = body.Message
		}

		return manager.Snapshot{}, apiErr
	}

	info := info{}
	if err = info.unmarshal(response.Body()); err != nil {
		return manager.Snapshot{}, err
	}

	return info.Snapshot, nil
}

type info struct {
	manager.Snapshot
}

func (i *info) unmarshal(data []byte) error {
	type result struct {
		Name    string `json:"name"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Pressure  int     `json:"pressure"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64  `json:"speed"`
			Deg   *float64 `json:"deg"`
		} `json:"wind"`
		Visibility int `json:"visibility"`
		Sys        struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
		Timezone int `json:"timezone"`
	}

	var r result

	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("%w: %w", manager.ErrMalformedResponse, err)
	}

	if len(r.Weather) == 0 {
		return fmt.Errorf("%w: no weather conditions", manager.ErrMalformedResponse)
	}

	i.City = r.Name
	i.Country = r.Sys.Country
	i.Condition = r.Weather[0].Main
	i.Description = r.Weather[0].Description
	i.Icon = r.Weather[0].Icon
	i.Temp = r.Main.Temp
	i.FeelsLike = r.Main.FeelsLike
	i.Pressure = r.Main.Pressure
	i.Humidity = r.Main.Humidity
	i.WindSpeed = r.Wind.Speed
	i.WindDeg = r.Wind.Deg
	i.Visibility = r.Visibility
	i.Sunrise = time.Unix(r.Sys.Sunrise, 0)
	i.Sunset = time.Unix(r.Sys.Sunset, 0)
	i.Timezone = time.Duration(r.Timezone) * time.Second

	return nil
}

// transportError drops the request URL from err, its query carries the
// API key.
func transportError(path string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("request %s: %w", path, urlErr.Err)
	}
	return err
}
