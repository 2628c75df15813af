package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"weatherlookup/config"
	"weatherlookup/manager"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *geocoding {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.OpenWeather{APIKey: "key", GeocodingURL: srv.URL})
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/direct" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Lon " || q.Get("limit") != "5" || q.Get("appid") != "key" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"London","local_names":{"en":"London"},"lat":51.5,"lon":-0.12,"country":"GB","state":"England"},
			{"name":"London","lat":42.98,"lon":-81.24,"country":"CA"}
		]`))
	})

	got, err := client.Search(context.Background(), "Lon ", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	want := []manager.Location{
		{Name: "London", Country: "GB", State: "England", Lat: 51.5, Lon: -0.12},
		{Name: "London", Country: "CA", Lat: 42.98, Lon: -81.24},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d locations", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("location %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSearchEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	got, err := client.Search(context.Background(), "Zzzzz", 5)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestSearchFailures(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
		})

		if _, err := client.Search(context.Background(), "London", 5); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		})

		_, err := client.Search(context.Background(), "London", 5)
		if !errors.Is(err, manager.ErrMalformedResponse) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestSearchNetworkFailureHidesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	closed := srv.URL
	srv.Close()

	client := New(config.OpenWeather{APIKey: "SECRETKEY123", GeocodingURL: closed})

	_, err := client.Search(context.Background(), "London", 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "SECRETKEY123") {
		t.Fatalf("error leaks the API key: %v", err)
	}
}
