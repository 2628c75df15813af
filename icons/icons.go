// Package icons maps the auxiliary icons shown next to the weather
// readings to their static assets.
package icons

import (
	"fmt"
	"net/url"
)

type Name string

const (
	Humidity   Name = "humidity"
	Wind       Name = "wind"
	Visibility Name = "visibility"
	Sunrise    Name = "sunrise"
	Sunset     Name = "sunset"
)

type Icon struct {
	Asset     string
	Animation string
	// Glyph is what the terminal view prints in place of the image.
	Glyph string
}

const pulse = "powerful-pulse svg-hover"

var catalog = map[Name]Icon{
	Humidity:   {Asset: "assets/humidity.png", Animation: pulse, Glyph: "💧"},
	Wind:       {Asset: "assets/wind.png", Animation: "animate-icon svg-hover", Glyph: "🌬"},
	Visibility: {Asset: "assets/visibility.png", Animation: pulse, Glyph: "👁"},
	Sunrise:    {Asset: "assets/sunrise.png", Animation: pulse, Glyph: "🌅"},
	Sunset:     {Asset: "assets/sunset.png", Animation: pulse, Glyph: "🌇"},
}

func Lookup(name Name) (Icon, bool) {
	icon, ok := catalog[name]
	return icon, ok
}

// Get is Lookup for callers that only use the fixed names above.
func Get(name Name) Icon {
	icon, _ := Lookup(name)
	return icon
}

const weatherIconURL = "https://openweathermap.org/img/wn/%s@2x.png"

// WeatherIconURL returns the remote image for an OpenWeatherMap icon id
// such as "10d".
func WeatherIconURL(id string) string {
	return fmt.Sprintf(weatherIconURL, url.PathEscape(id))
}
