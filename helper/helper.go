package helper

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	}

	return "", fmt.Errorf("unknown unit %q", s)
}

// Toggle flips between Celsius and Fahrenheit.
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

func (u Unit) String() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

// ConvertTemperature takes a Celsius value and returns it rounded to a
// whole degree in the requested unit.
func ConvertTemperature(celsius float64, unit Unit) int {
	if unit == Fahrenheit {
		return int(math.Round(celsius*9/5 + 32))
	}
	return int(math.Round(celsius))
}

func ToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - 32) * 5 / 9
}

func HumidityLabel(percent int) string {
	switch {
	case percent < 30:
		return "Low"
	case percent <= 60:
		return "Comfortable"
	default:
		return "High"
	}
}

var compass = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// WindDirection maps degrees to a 16-point compass label. Each point
// covers 22.5 degrees centred on it, so N spans [348.75, 11.25).
func WindDirection(degrees float64) string {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return compass[0]
	}

	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}

	return compass[int(math.Floor(d/22.5+0.5))%len(compass)]
}

func VisibilityLabel(meters int) string {
	switch {
	case meters < 1000:
		return "Poor"
	case meters < 5000:
		return "Moderate"
	case meters < 10000:
		return "Good"
	default:
		return "Excellent"
	}
}

func FormatVisibility(meters int) string {
	return fmt.Sprintf("%.1f km (%s)", float64(meters)/1000, VisibilityLabel(meters))
}

// FormatClock renders t as a 24h HH:MM value in loc (time.Local when nil).
func FormatClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}
