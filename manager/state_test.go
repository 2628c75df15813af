package manager

import (
	"testing"

	"weatherlookup/helper"
)

func TestLocationDisplayName(t *testing.T) {
	if got := london.DisplayName(); got != "London, GB" {
		t.Errorf("got %q", got)
	}

	withState := Location{Name: "Springfield", Country: "US", State: "Illinois"}
	if got := withState.DisplayName(); got != "Springfield, US, Illinois" {
		t.Errorf("got %q", got)
	}
}

func TestWithSuggestionsRespectsInvariants(t *testing.T) {
	list := []Location{london}

	s := State{}.WithQuery("Lon", 3).WithSuggestions(list, 3, 5)
	if len(s.Suggestions) != 1 {
		t.Fatalf("suggestions = %v", s.Suggestions)
	}

	list[0].Name = "mutated"
	if s.Suggestions[0].Name != "London" {
		t.Fatal("suggestions alias the caller's slice")
	}

	short := State{}.WithQuery("Lo", 3).WithSuggestions([]Location{london}, 3, 5)
	if len(short.Suggestions) != 0 {
		t.Fatal("suggestions accepted for a short query")
	}

	snap := londonSnapshot()
	live := State{Query: "Lon", Snapshot: &snap}.WithSuggestions([]Location{london}, 3, 5)
	if len(live.Suggestions) != 0 {
		t.Fatal("suggestions accepted while a snapshot is live")
	}
}

func TestWithQueryTrimsBeforeCounting(t *testing.T) {
	s := State{Suggestions: []Location{london}}.WithQuery("  Lo  ", 3)
	if len(s.Suggestions) != 0 {
		t.Fatal("padded short query kept suggestions")
	}
	if s.Query != "  Lo  " {
		t.Fatalf("query text altered: %q", s.Query)
	}
}

func TestFetchTransitions(t *testing.T) {
	snap := londonSnapshot()
	s := State{Query: "Lon", Suggestions: []Location{london}, Err: "old"}

	s = s.FetchStarted()
	if s.Err != "" || s.Snapshot != nil {
		t.Fatalf("FetchStarted = %+v", s)
	}

	ok := s.FetchSucceeded(snap, "")
	if ok.Snapshot.City != "London" || ok.Query != "London" || ok.Suggestions != nil {
		t.Fatalf("FetchSucceeded = %+v", ok)
	}

	named := s.FetchSucceeded(snap, "London, GB")
	if named.Snapshot.City != "London, GB" {
		t.Fatalf("city = %q", named.Snapshot.City)
	}
	if snap.City != "London" {
		t.Fatal("FetchSucceeded modified its argument")
	}

	failed := named.FetchStarted().FetchFailed("city not found")
	if failed.Snapshot != nil || failed.Err != "city not found" {
		t.Fatalf("FetchFailed = %+v", failed)
	}
}

func TestUnitTransitions(t *testing.T) {
	s := State{Unit: helper.Celsius}.ToggledUnit()
	if s.Unit != helper.Fahrenheit {
		t.Fatalf("unit = %s", s.Unit)
	}
	if s.WithUnit(helper.Celsius).Unit != helper.Celsius {
		t.Fatal("WithUnit ignored")
	}

	if _, ok := s.Temperature(); ok {
		t.Fatal("temperature without a snapshot")
	}
}

func TestCloneIsDeep(t *testing.T) {
	snap := londonSnapshot()
	s := State{Suggestions: []Location{london}, Snapshot: &snap}
	c := s.clone()

	c.Suggestions[0].Name = "x"
	c.Snapshot.City = "y"

	if s.Suggestions[0].Name != "London" || s.Snapshot.City != "London" {
		t.Fatal("clone shares memory with the original")
	}
}

func TestWithSuggestionsCapsAtLimit(t *testing.T) {
	list := make([]Location, 8)
	for i := range list {
		list[i] = Location{Name: "London", Country: "GB", Lat: float64(i)}
	}

	s := State{Query: "London"}.WithSuggestions(list, 3, 5)
	if len(s.Suggestions) != 5 {
		t.Fatalf("kept %d suggestions, want 5", len(s.Suggestions))
	}
	if s.Suggestions[4].Lat != 4 {
		t.Fatalf("order changed: %+v", s.Suggestions)
	}
}

func TestRejectedNeverCoexistsWithSnapshot(t *testing.T) {
	snap := londonSnapshot()
	s := State{Snapshot: &snap}.Rejected(MessageInvalidCity)

	if s.Snapshot != nil {
		t.Fatal("error set while a snapshot is live")
	}
	if s.Err != MessageInvalidCity {
		t.Fatalf("Err = %q", s.Err)
	}
}
