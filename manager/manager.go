package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"weatherlookup/helper"
)

type Options struct {
	Debounce         time.Duration
	MinQueryLength   int
	SuggestionLimit  int
	ResetClearsError bool
	Unit             helper.Unit
	Scheduler        Scheduler
	Logger           *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Debounce:         500 * time.Millisecond,
		MinQueryLength:   3,
		SuggestionLimit:  5,
		ResetClearsError: true,
		Unit:             helper.Celsius,
	}
}

// Manager owns the UI state of one session: the query text, the debounced
// suggestion lookups and the current weather request.
type Manager struct {
	geocoding Geocoding
	weather   Weather
	opts      Options
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      State
	timer      Timer
	suggestSeq uint64
	fetchSeq   uint64
	listeners  []func(State)
}

func New(geocoding Geocoding, weather Weather, opts Options) *Manager {
	def := DefaultOptions()
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = def.MinQueryLength
	}
	if opts.SuggestionLimit <= 0 {
		opts.SuggestionLimit = def.SuggestionLimit
	}
	if opts.Debounce < 0 {
		opts.Debounce = def.Debounce
	}
	if opts.Unit == "" {
		opts.Unit = def.Unit
	}
	if opts.Scheduler == nil {
		opts.Scheduler = realScheduler{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		geocoding: geocoding,
		weather:   weather,
		opts:      opts,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		state:     State{Unit: opts.Unit},
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Subscribe registers fn to receive the state after every change.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// apply runs transition under the lock and notifies listeners after
// releasing it.
func (m *Manager) apply(transition func(State) State) State {
	m.mu.Lock()
	m.state = transition(m.state)
	state := m.state.clone()
	listeners := append(([]func(State))(nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(state.clone())
	}
	return state
}

// stopTimerLocked cancels the pending debounce and invalidates any
// suggestion request already in flight.
func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.suggestSeq++
}

func (m *Manager) SetQuery(text string) {
	m.apply(func(s State) State {
		s = s.WithQuery(text, m.opts.MinQueryLength)
		m.stopTimerLocked()

		if s.Snapshot != nil || !qualifies(text, m.opts.MinQueryLength) {
			return s
		}

		seq := m.suggestSeq
		m.timer = m.opts.Scheduler.AfterFunc(m.opts.Debounce, func() {
			m.fetchSuggestions(m.ctx, seq, text)
		})
		return s
	})
}

// SuggestNow looks up suggestions for the current query without waiting
// for the debounce period.
func (m *Manager) SuggestNow(ctx context.Context) {
	m.mu.Lock()
	m.stopTimerLocked()
	seq, query, live := m.suggestSeq, m.state.Query, m.state.Snapshot != nil
	m.mu.Unlock()

	if live || !qualifies(query, m.opts.MinQueryLength) {
		return
	}
	m.fetchSuggestions(ctx, seq, query)
}

func (m *Manager) fetchSuggestions(ctx context.Context, seq uint64, query string) {
	list, err := m.geocoding.Search(ctx, query, m.opts.SuggestionLimit)
	if err != nil {
		m.logger.Debug("suggestions failed", "query", query, "error", err)
		list = nil
	}

	m.mu.Lock()
	stale := seq != m.suggestSeq || m.state.Snapshot != nil
	if !stale {
		m.timer = nil
	}
	m.mu.Unlock()

	if stale {
		m.logger.Debug("discarding stale suggestions", "query", query)
		return
	}

	m.apply(func(s State) State {
		if seq != m.suggestSeq {
			return s
		}
		return s.WithSuggestions(list, m.opts.MinQueryLength, m.opts.SuggestionLimit)
	})
}

// Search fetches the weather for the trimmed query text.
func (m *Manager) Search(ctx context.Context) error {
	query := strings.TrimSpace(m.State().Query)
	if query == "" {
		m.apply(func(s State) State {
			return s.Rejected(MessageInvalidCity)
		})
		return ErrInvalidQuery
	}

	return m.Fetch(ctx, Query{City: query}, "")
}

// Select fetches the weather for the i-th suggestion, shown under the
// suggestion's display name.
func (m *Manager) Select(ctx context.Context, i int) error {
	m.mu.Lock()
	if i < 0 || i >= len(m.state.Suggestions) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoSuggestion, i+1)
	}
	location := m.state.Suggestions[i]
	m.mu.Unlock()

	query := Query{Coordinates: &Coordinates{Lat: location.Lat, Lon: location.Lon}}

	return m.Fetch(ctx, query, location.DisplayName())
}

// Fetch replaces the current snapshot with the weather for query. A non
// empty name overrides the city name reported by the API.
func (m *Manager) Fetch(ctx context.Context, query Query, name string) error {
	var seq uint64
	m.apply(func(s State) State {
		m.fetchSeq++
		seq = m.fetchSeq
		m.stopTimerLocked()
		return s.FetchStarted()
	})

	logger := m.logger.With("request_id", uuid.NewString())
	logger.Debug("fetching weather", "city", query.City, "coordinates", query.Coordinates)

	snap, err := m.weather.Get(ctx, query)

	var superseded bool
	m.apply(func(s State) State {
		if seq != m.fetchSeq {
			superseded = true
			return s
		}
		if err != nil {
			return s.FetchFailed(errorMessage(err))
		}
		return s.FetchSucceeded(snap, name)
	})

	if superseded {
		logger.Debug("discarding superseded weather response")
		return nil
	}
	if err != nil {
		logger.Debug("weather fetch failed", "error", err)
		return fmt.Errorf("fetch weather: %w", err)
	}
	return nil
}

func errorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return MessageNotFound
		}
		return apiErr.Message
	}
	return err.Error()
}

func (m *Manager) ToggleUnit() {
	m.apply(State.ToggledUnit)
}

func (m *Manager) SetUnit(unit helper.Unit) {
	m.apply(func(s State) State {
		return s.WithUnit(unit)
	})
}

// Reset is the "New Search" action.
func (m *Manager) Reset() {
	m.apply(func(s State) State {
		m.stopTimerLocked()
		return s.Reset(m.opts.ResetClearsError)
	})
}

// Close stops the pending debounce and cancels suggestion requests
// started by it.
func (m *Manager) Close() {
	m.mu.Lock()
	m.stopTimerLocked()
	m.mu.Unlock()
	m.cancel()
}
