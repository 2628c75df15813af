package manager

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Weather resolves the current conditions for a query.
type Weather interface {
	Get(ctx context.Context, query Query) (Snapshot, error)
}

// Geocoding looks up locations matching free text, at most limit of them.
type Geocoding interface {
	Search(ctx context.Context, query string, limit int) ([]Location, error)
}

var (
	ErrInvalidQuery      = errors.New("invalid query")
	ErrNoSuggestion      = errors.New("no such suggestion")
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-success reply from the weather API. Message is the
// body's message field and may be empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("status code: %d: %s", e.StatusCode, e.Message)
}

type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (l Location) DisplayName() string {
	if l.State != "" {
		return fmt.Sprintf("%s, %s, %s", l.Name, l.Country, l.State)
	}
	return fmt.Sprintf("%s, %s", l.Name, l.Country)
}

type Coordinates struct {
	Lat float64
	Lon float64
}

// Query is either a free-text city or explicit coordinates; Coordinates
// wins when both are set.
type Query struct {
	City        string
	Coordinates *Coordinates
}

type Snapshot struct {
	City        string        `json:"city"`
	Country     string        `json:"country,omitempty"`
	Condition   string        `json:"condition"`
	Icon        string        `json:"icon"`
	Description string        `json:"description"`
	Temp        float64       `json:"temp"`
	FeelsLike   float64       `json:"feels_like"`
	Humidity    int           `json:"humidity"`
	Pressure    int           `json:"pressure"`
	WindSpeed   float64       `json:"wind_speed"`
	WindDeg     *float64      `json:"wind_deg,omitempty"`
	Visibility  int           `json:"visibility"`
	Sunrise     time.Time     `json:"sunrise"`
	Sunset      time.Time     `json:"sunset"`
	Timezone    time.Duration `json:"timezone"`
}

// Zone is the city's fixed UTC offset as reported by the API.
func (s Snapshot) Zone() *time.Location {
	return time.FixedZone(s.City, int(s.Timezone/time.Second))
}
