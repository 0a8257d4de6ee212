// Package calendar is the controller behind a calendar widget. A Calendar owns
// one view state, one event store, the theme and the event form's editing
// hint, and persists changes through a persist.Storage.
package calendar

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/wallcal/internal/grid"
	"github.com/dukerupert/wallcal/internal/model"
	"github.com/dukerupert/wallcal/internal/persist"
	"github.com/dukerupert/wallcal/internal/store"
	"github.com/dukerupert/wallcal/internal/view"
)

// Calendar serializes every operation so that each runs to completion before
// the next begins. Independent Calendars share nothing.
type Calendar struct {
	mu      sync.Mutex
	state   view.State
	events  *store.EventStore
	theme   model.Theme
	editing *int64

	storage persist.Storage
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithClock replaces time.Now, used when switching views and jumping to today.
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) { c.now = now }
}

// WithView sets the initial view.
func WithView(v view.View) Option {
	return func(c *Calendar) { c.state.View = v }
}

// Open loads events and theme from storage. Missing or malformed stored
// values yield an empty store and the light theme.
func Open(storage persist.Storage, logger *slog.Logger, opts ...Option) *Calendar {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Calendar{
		events:  store.NewEventStore(logger),
		storage: storage,
		now:     time.Now,
		logger:  logger,
	}
	c.state = view.New(time.Time{})
	for _, opt := range opts {
		opt(c)
	}
	c.state.Reference = c.now()

	if err := c.events.Replace(persist.Load(storage, persist.KeyEvents, []model.Event{}, logger)); err != nil {
		logger.Warn("stored events rejected, starting empty", "error", err)
	}

	stored := persist.Load(storage, persist.KeyTheme, string(model.ThemeLight), logger)
	theme, err := model.ParseTheme(stored)
	if err != nil {
		logger.Warn("stored theme unknown, using light", "theme", stored)
		theme = model.ThemeLight
	}
	c.theme = theme

	logger.Info("calendar opened", "events", c.events.Len(), "theme", c.theme, "view", c.state.View)
	return c
}

func (c *Calendar) saveEvents() error {
	if err := persist.Save(c.storage, persist.KeyEvents, c.events.All()); err != nil {
		c.logger.Error("persist events", "error", err)
		return fmt.Errorf("persist events: %w", err)
	}
	return nil
}

// State returns the current view state.
func (c *Calendar) State() view.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Grid renders the current view state.
func (c *Calendar) Grid() grid.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return grid.Build(c.state, c.events)
}

// GridFor renders an arbitrary state against this calendar's events without
// touching the current state.
func (c *Calendar) GridFor(s view.State) grid.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return grid.Build(s, c.events)
}

// SetView switches the active view; a different view re-anchors on now.
func (c *Calendar) SetView(v view.View) grid.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = view.Switch(c.state, v, c.now())
	return grid.Build(c.state, c.events)
}

// Navigate moves one period backwards or forwards.
func (c *Calendar) Navigate(dir view.Direction) grid.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = view.Navigate(c.state, dir)
	return grid.Build(c.state, c.events)
}

// DrillDown opens month (0..11) of the reference year in Month view.
func (c *Calendar) DrillDown(month int) (grid.Grid, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := view.DrillDown(c.state, month)
	if err != nil {
		return grid.Grid{}, err
	}
	c.state = s
	return grid.Build(c.state, c.events), nil
}

// SetQuery sets the search filter. Surrounding whitespace is dropped, so a
// blank query shows everything.
func (c *Calendar) SetQuery(q string) grid.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Query = strings.TrimSpace(q)
	return grid.Build(c.state, c.events)
}

// Today re-anchors the current view on now.
func (c *Calendar) Today() grid.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Reference = c.now()
	return grid.Build(c.state, c.events)
}

// Events returns every event in insertion order.
func (c *Calendar) Events() []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events.All()
}

func (c *Calendar) Event(id int64) (model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events.Get(id)
}

func (c *Calendar) AddEvent(f model.EventFields) (model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(f)
}

func (c *Calendar) add(f model.EventFields) (model.Event, error) {
	e, err := c.events.Add(f)
	if err != nil {
		return model.Event{}, err
	}
	c.logger.Debug("event added", "id", e.ID, "date", e.Date)
	return e, c.saveEvents()
}

func (c *Calendar) UpdateEvent(id int64, f model.EventFields) (model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.update(id, f)
}

func (c *Calendar) update(id int64, f model.EventFields) (model.Event, error) {
	e, err := c.events.Update(id, f)
	if err != nil {
		return model.Event{}, err
	}
	c.logger.Debug("event updated", "id", e.ID, "date", e.Date)
	return e, c.saveEvents()
}

// RemoveEvent deletes event id and reports whether it existed. Unknown ids
// succeed without touching storage.
func (c *Calendar) RemoveEvent(id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remove(id)
}

func (c *Calendar) remove(id int64) (bool, error) {
	if !c.events.Remove(id) {
		return false, nil
	}
	c.logger.Debug("event removed", "id", id)
	return true, c.saveEvents()
}
