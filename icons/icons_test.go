package icons

import "testing"

func TestLookup(t *testing.T) {
	for _, name := range []Name{Humidity, Wind, Visibility, Sunrise, Sunset} {
		icon, ok := Lookup(name)
		if !ok {
			t.Fatalf("%s: not found", name)
		}
		if icon.Asset == "" || icon.Animation == "" || icon.Glyph == "" {
			t.Errorf("%s: incomplete icon %+v", name, icon)
		}
	}

	if _, ok := Lookup("tornado"); ok {
		t.Fatal("unexpected icon for unknown name")
	}
	if got := Get("tornado"); got != (Icon{}) {
		t.Fatalf("expected zero icon, got %+v", got)
	}
}

func TestCatalogMatchesAssets(t *testing.T) {
	tests := []struct {
		name      Name
		asset     string
		animation string
	}{
		{Wind, "assets/wind.png", "animate-icon svg-hover"},
		{Humidity, "assets/humidity.png", "powerful-pulse svg-hover"},
		{Visibility, "assets/visibility.png", "powerful-pulse svg-hover"},
		{Sunrise, "assets/sunrise.png", "powerful-pulse svg-hover"},
		{Sunset, "assets/sunset.png", "powerful-pulse svg-hover"},
	}

	for _, tt := range tests {
		icon := Get(tt.name)
		if icon.Asset != tt.asset || icon.Animation != tt.animation {
			t.Errorf("%s = %+v, want %s / %s", tt.name, icon, tt.asset, tt.animation)
		}
	}
}

func TestWeatherIconURL(t *testing.T) {
	if got := WeatherIconURL("10d"); got != "https://openweathermap.org/img/wn/10d@2x.png" {
		t.Fatalf("got %q", got)
	}
}
