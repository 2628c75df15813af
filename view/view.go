// Package view renders the session state as the weather page: a search
// form with suggestions until a snapshot is live, the result panel after.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"weatherlookup/background"
	"weatherlookup/helper"
	"weatherlookup/icons"
	"weatherlookup/manager"
)

const title = "Weather App"

type Options struct {
	Now      func() time.Time
	Location *time.Location
	// CityTime shows sunrise and sunset in the city's own UTC offset.
	CityTime bool
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o Options) zone(snap *manager.Snapshot) *time.Location {
	if o.CityTime {
		return snap.Zone()
	}
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// Background picks the page background for the state at now.
func Background(state manager.State, now time.Time) background.Background {
	snap := state.Snapshot
	if snap == nil {
		return background.Select(nil)
	}
	return background.Select(background.ConditionAt(snap.Condition, snap.Sunrise, snap.Sunset, now))
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func Render(w io.Writer, state manager.State, opts Options) error {
	p := &printer{w: w}

	p.printf("%s\n", title)
	p.printf("%s\n", strings.Repeat("=", len(title)))

	if state.Err != "" {
		p.printf("! %s\n", state.Err)
	}

	if state.Snapshot == nil {
		renderForm(p, state)
	} else {
		renderResult(p, state, opts)
	}

	return p.err
}

func renderForm(p *printer, state manager.State) {
	p.printf("Search: %s\n", state.Query)

	for i, s := range state.Suggestions {
		p.printf("  %d) %s\n", i+1, s.DisplayName())
	}

	p.printf("[Get Weather]  enter a city or country (min 3 letters)\n")
}

func renderResult(p *printer, state manager.State, opts Options) {
	snap := state.Snapshot
	unit := state.Unit
	zone := opts.zone(snap)

	p.printf("[New Search]\n")
	p.printf("%s  [°%s]\n", snap.City, unit)
	p.printf("Background: %s\n", Background(state, opts.now()).ID)
	p.printf("Icon: %s\n", icons.WeatherIconURL(snap.Icon))
	p.printf("%d°\n", helper.ConvertTemperature(snap.Temp, unit))
	p.printf("%s\n\n", capitalize(snap.Description))

	wind := fmt.Sprintf("%g m/s", snap.WindSpeed)
	if snap.WindDeg != nil {
		wind = fmt.Sprintf("%s (%s)", wind, helper.WindDirection(*snap.WindDeg))
	}

	tiles := []struct {
		icon  icons.Name
		label string
		value string
	}{
		{icons.Humidity, "Humidity", fmt.Sprintf("%d%% (%s)", snap.Humidity, helper.HumidityLabel(snap.Humidity))},
		{icons.Wind, "Wind Speed", wind},
		{icons.Visibility, "Visibility", helper.FormatVisibility(snap.Visibility)},
		{icons.Sunrise, "Sunrise", helper.FormatClock(snap.Sunrise, zone)},
		{icons.Sunset, "Sunset", helper.FormatClock(snap.Sunset, zone)},
	}
	for _, tile := range tiles {
		p.printf("%s %-11s %s\n", icons.Get(tile.icon).Glyph, tile.label, tile.value)
	}

	p.printf("\nFeels Like: %d °%s\n", helper.ConvertTemperature(snap.FeelsLike, unit), unit)
	p.printf("Pressure: %d hPa\n", snap.Pressure)
}

func capitalize(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		r := []rune(word)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

type result struct {
	City        string  `json:"city"`
	Country     string  `json:"country,omitempty"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	IconURL     string  `json:"icon_url"`
	Background  string  `json:"background"`
	Unit        string  `json:"unit"`
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feels_like"`
	Humidity    string  `json:"humidity"`
	Pressure    int     `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	Wind        string  `json:"wind_direction,omitempty"`
	Visibility  string  `json:"visibility"`
	Sunrise     string  `json:"sunrise"`
	Sunset      string  `json:"sunset"`
}

type page struct {
	Query       string             `json:"query,omitempty"`
	Error       string             `json:"error,omitempty"`
	Suggestions []manager.Location `json:"suggestions,omitempty"`
	Weather     *result            `json:"weather,omitempty"`
}

// RenderJSON writes the same content as Render in machine readable form.
func RenderJSON(w io.Writer, state manager.State, opts Options) error {
	out := page{
		Query:       state.Query,
		Error:       state.Err,
		Suggestions: state.Suggestions,
	}

	if snap := state.Snapshot; snap != nil {
		zone := opts.zone(snap)
		out.Weather = &result{
			City:        snap.City,
			Country:     snap.Country,
			Condition:   snap.Condition,
			Description: snap.Description,
			IconURL:     icons.WeatherIconURL(snap.Icon),
			Background:  Background(state, opts.now()).ID,
			Unit:        state.Unit.String(),
			Temperature: helper.ConvertTemperature(snap.Temp, state.Unit),
			FeelsLike:   helper.ConvertTemperature(snap.FeelsLike, state.Unit),
			Humidity:    fmt.Sprintf("%d%% (%s)", snap.Humidity, helper.HumidityLabel(snap.Humidity)),
			Pressure:    snap.Pressure,
			WindSpeed:   snap.WindSpeed,
			Visibility:  helper.FormatVisibility(snap.Visibility),
			Sunrise:     helper.FormatClock(snap.Sunrise, zone),
			Sunset:      helper.FormatClock(snap.Sunset, zone),
		}
		if snap.WindDeg != nil {
			out.Weather.Wind = helper.WindDirection(*snap.WindDeg)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
