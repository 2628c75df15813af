package background

import (
	"fmt"
	"time"
)

type Condition struct {
	Main  string
	IsDay bool
}

type Background struct {
	ID    string
	Asset string
}

// Default is shown before any weather has been fetched.
var Default = Background{ID: "default", Asset: "assets/backgrounds/default.mp4"}

// ConditionAt builds the selector input for a reading. It is day when
// now falls in [sunrise, sunset).
func ConditionAt(main string, sunrise, sunset, now time.Time) *Condition {
	return &Condition{
		Main:  main,
		IsDay: !now.Before(sunrise) && now.Before(sunset),
	}
}

var categories = map[string]string{
	"Clear":        "clear",
	"Clouds":       "clouds",
	"Rain":         "rain",
	"Drizzle":      "rain",
	"Thunderstorm": "thunderstorm",
	"Snow":         "snow",
	"Mist":         "fog",
	"Smoke":        "fog",
	"Haze":         "fog",
	"Dust":         "fog",
	"Fog":          "fog",
	"Sand":         "fog",
	"Ash":          "fog",
	"Squall":       "storm",
	"Tornado":      "storm",
}

func Select(c *Condition) Background {
	if c == nil {
		return Default
	}

	category, ok := categories[c.Main]
	if !ok {
		category = "default"
	}

	period := "night"
	if c.IsDay {
		period = "day"
	}

	id := fmt.Sprintf("%s-%s", category, period)

	return Background{
		ID:    id,
		Asset: fmt.Sprintf("assets/backgrounds/%s.mp4", id),
	}
}
