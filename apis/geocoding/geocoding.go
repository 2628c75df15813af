package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	"weatherlookup/config"
	"weatherlookup/manager"
)

// New returns a client for the OpenWeatherMap direct geocoding endpoint.
func New(cfg config.OpenWeather) *geocoding {
	client := resty.New().SetBaseURL(cfg.GeocodingURL)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &geocoding{
		client: client,
		apiKey: cfg.APIKey,
		logger: slog.Default().With("component", "geocoding"),
	}
}

type geocoding struct {
	client *resty.Client
	apiKey string
	logger *slog.Logger
}

func (g *geocoding) Search(ctx context.Context, query string, limit int) ([]manager.Location, error) {
	params := map[string]string{
		"q":     query,
		"limit": strconv.Itoa(limit),
		"appid": g.apiKey,
	}

	g.logger.Debug("geocoding request", "query", query, "limit", limit)

	return processRequest(ctx, g.client, "/direct", params)
}

func processRequest(ctx context.Context, client *resty.Client, path string, params map[string]string) ([]manager.Location, error) {
	type responseStruct struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		State   string  `json:"state"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}

	request := client.R().SetContext(ctx)
	request.SetQueryParams(params)

	response, err := request.Get(path)
	if err != nil {
		return nil, transportError(path, err)
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d", response.StatusCode())
	}

	responseStr := make([]responseStruct, 0, 8)
	err = json.Unmarshal(response.Body(), &responseStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", manager.ErrMalformedResponse, err)
	}

	locations := make([]manager.Location, 0, len(responseStr))
	for _, r := range responseStr {
		locations = append(locations, manager.Location{
			Name:    r.Name,
			Country: r.Country,
			State:   r.State,
			Lat:     r.Lat,
			Lon:     r.Lon,
		})
	}

	return locations, nil
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
