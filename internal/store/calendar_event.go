package store

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/dukerupert/wallcal/internal/caldate"
	"github.com/dukerupert/wallcal/internal/model"
)

var timeFormatRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// EventStore is the ordered, in-memory collection of events. New events are
// appended, so events sharing a date keep their creation order. It does no
// locking; callers serialize access.
type EventStore struct {
	events []model.Event
	nextID int64
	logger *slog.Logger
}

func NewEventStore(logger *slog.Logger) *EventStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventStore{nextID: 1, logger: logger}
}

func normalize(f model.EventFields) (model.EventFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)

	if f.Title == "" {
		return f, &ValidationError{Field: "title", Reason: "title is required"}
	}
	if !caldate.Valid(f.Date) {
		return f, &ValidationError{Field: "date", Reason: "date must be a YYYY-MM-DD calendar date"}
	}
	if f.Time != "" && !timeFormatRegexp.MatchString(f.Time) {
		return f, &ValidationError{Field: "time", Reason: "time must be HH:MM"}
	}
	return f, nil
}

func (s *EventStore) index(id int64) int {
	return slices.IndexFunc(s.events, func(e model.Event) bool { return e.ID == id })
}

// newID hands out the next counter value not held by a live event.
func (s *EventStore) newID() int64 {
	for s.index(s.nextID) >= 0 {
		s.nextID++
	}
	id := s.nextID
	s.nextID++
	return id
}

// Add validates f, assigns a fresh id and appends the event.
func (s *EventStore) Add(f model.EventFields) (model.Event, error) {
	f, err := normalize(f)
	if err != nil {
		return model.Event{}, err
	}
	e := model.Event{
		ID:          s.newID(),
		Title:       f.Title,
		Date:        f.Date,
		Time:        f.Time,
		Description: f.Description,
	}
	s.events = append(s.events, e)
	return e, nil
}

// Update replaces the fields of event id, keeping its id and position.
func (s *EventStore) Update(id int64, f model.EventFields) (model.Event, error) {
	i := s.index(id)
	if i < 0 {
		return model.Event{}, &NotFoundError{ID: id}
	}
	f, err := normalize(f)
	if err != nil {
		return model.Event{}, err
	}
	e := model.Event{
		ID:          id,
		Title:       f.Title,
		Date:        f.Date,
		Time:        f.Time,
		Description: f.Description,
	}
	s.events[i] = e
	return e, nil
}

// Remove deletes event id. Removing an unknown id is a no-op. It reports
// whether an event was removed.
func (s *EventStore) Remove(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.events = slices.Delete(s.events, i, i+1)
	return true
}

func (s *EventStore) Get(id int64) (model.Event, error) {
	i := s.index(id)
	if i < 0 {
		return model.Event{}, &NotFoundError{ID: id}
	}
	return s.events[i], nil
}

// All returns a copy of the events in insertion order.
func (s *EventStore) All() []model.Event {
	return slices.Clone(s.events)
}

func (s *EventStore) Len() int {
	return len(s.events)
}

// Replace swaps in a persisted collection. The collection is all or
// nothing: a record with a malformed date or a duplicate id rejects the
// whole load and leaves the store empty. The id counter restarts above the
// largest id.
func (s *EventStore) Replace(events []model.Event) error {
	s.events = nil
	s.nextID = 1

	seen := make(map[int64]struct{}, len(events))
	var maxID int64
	for _, e := range events {
		if !caldate.Valid(e.Date) {
			return fmt.Errorf("stored event %d: %w", e.ID, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD calendar date", e.Date)})
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("stored event %d: %w", e.ID, &ValidationError{Field: "id", Reason: "duplicate id"})
		}
		seen[e.ID] = struct{}{}
		maxID = max(maxID, e.ID)
	}
	s.events = slices.Clone(events)
	s.nextID = maxID + 1
	s.logger.Debug("events loaded", "count", len(s.events), "next_id", s.nextID)
	return nil
}

// MatchesQuery reports whether e matches a free-text search. The empty query
// matches everything; otherwise the case-folded query must be a substring of
// the title or the description.
func MatchesQuery(e model.Event, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	return e.Description != "" && strings.Contains(strings.ToLower(e.Description), q)
}

// EventsOn returns the events dated date that match query, in insertion order.
func (s *EventStore) EventsOn(date, query string) []model.Event {
	var out []model.Event
	for _, e := range s.events {
		if e.Date == date && MatchesQuery(e, query) {
			out = append(out, e)
		}
	}
	return out
}

// EventsInMonth counts the events in year/month that match query. The month
// is compared on the parsed date, not on a string prefix.
func (s *EventStore) EventsInMonth(year int, month time.Month, query string) int {
	n := 0
	for _, e := range s.events {
		d, err := time.Parse(caldate.Layout, e.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month && MatchesQuery(e, query) {
			n++
		}
	}
	return n
}
