package manager

import (
	"strings"

	"weatherlookup/helper"
)

// MessageInvalidCity is the error shown for an empty free-text search.
const MessageInvalidCity = "Please enter a valid city name."

// MessageNotFound is used when the API rejects a request without saying why.
const MessageNotFound = "City not found"

// State is the whole UI state. Transitions return a new State and never
// modify the receiver's slices.
type State struct {
	Query       string
	Suggestions []Location
	Snapshot    *Snapshot
	Unit        helper.Unit
	Err         string
}

func qualifies(query string, minLength int) bool {
	return len([]rune(strings.TrimSpace(query))) >= minLength
}

func (s State) WithQuery(text string, minLength int) State {
	s.Query = text
	if s.Snapshot != nil || !qualifies(text, minLength) {
		s.Suggestions = nil
	}
	return s
}

// WithSuggestions is a no-op once a snapshot is live or the query has
// fallen below minLength. At most limit entries are kept.
func (s State) WithSuggestions(list []Location, minLength, limit int) State {
	if s.Snapshot != nil || !qualifies(s.Query, minLength) {
		s.Suggestions = nil
		return s
	}
	if len(list) == 0 {
		s.Suggestions = nil
		return s
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	s.Suggestions = append([]Location(nil), list...)
	return s
}

func (s State) FetchStarted() State {
	s.Err = ""
	s.Snapshot = nil
	return s
}

// FetchSucceeded stores snap under name, or under the API's own name
// when name is empty.
func (s State) FetchSucceeded(snap Snapshot, name string) State {
	if name != "" {
		snap.City = name
	}
	s.Snapshot = &snap
	s.Query = snap.City
	s.Suggestions = nil
	s.Err = ""
	return s
}

func (s State) FetchFailed(message string) State {
	s.Snapshot = nil
	s.Err = message
	return s
}

// Rejected reports an input error. The error replaces any live snapshot.
func (s State) Rejected(message string) State {
	s.Snapshot = nil
	s.Err = message
	return s
}

func (s State) WithUnit(unit helper.Unit) State {
	s.Unit = unit
	return s
}

func (s State) ToggledUnit() State {
	s.Unit = s.Unit.Toggle()
	return s
}

func (s State) Reset(clearErr bool) State {
	s.Snapshot = nil
	s.Query = ""
	s.Suggestions = nil
	if clearErr {
		s.Err = ""
	}
	return s
}

// Temperature is the snapshot temperature in the display unit.
func (s State) Temperature() (int, bool) {
	if s.Snapshot == nil {
		return 0, false
	}
	return helper.ConvertTemperature(s.Snapshot.Temp, s.Unit), true
}

func (s State) clone() State {
	if s.Suggestions != nil {
		s.Suggestions = append([]Location(nil), s.Suggestions...)
	}
	if s.Snapshot != nil {
		snap := *s.Snapshot
		s.Snapshot = &snap
	}
	return s
}
