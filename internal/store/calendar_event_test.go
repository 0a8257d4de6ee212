package store

import (
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/dukerupert/wallcal/internal/model"
)

func newTestStore(t *testing.T) *EventStore {
	t.Helper()
	return NewEventStore(slog.Default())
}

func mustAdd(t *testing.T, s *EventStore, title, date, desc string) model.Event {
	t.Helper()
	e, err := s.Add(model.EventFields{Title: title, Date: date, Description: desc})
	if err != nil {
		t.Fatalf("add %q: %v", title, err)
	}
	return e
}

func titles(events []model.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func TestAddAssignsDistinctIDs(t *testing.T) {
	s := newTestStore(t)

	seen := map[int64]bool{}
	for i := 0; i < 50; i++ {
		e := mustAdd(t, s, "Standup", "2026-10-19", "")
		if seen[e.ID] {
			t.Fatalf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
	}
	if s.Len() != 50 {
		t.Errorf("len = %d, want 50", s.Len())
	}
}

func TestAddTrimsFields(t *testing.T) {
	s := newTestStore(t)

	e, err := s.Add(model.EventFields{Title: "  Dentist ", Date: "2026-03-02", Time: "09:30", Description: " checkup  "})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Title != "Dentist" {
		t.Errorf("title = %q, want %q", e.Title, "Dentist")
	}
	if e.Description != "checkup" {
		t.Errorf("description = %q, want %q", e.Description, "checkup")
	}
	if e.Time != "09:30" {
		t.Errorf("time = %q, want %q", e.Time, "09:30")
	}
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name  string
		f     model.EventFields
		field string
	}{
		{"empty title", model.EventFields{Title: "", Date: "2026-01-01"}, "title"},
		{"blank title", model.EventFields{Title: "   ", Date: "2026-01-01"}, "title"},
		{"missing date", model.EventFields{Title: "x"}, "date"},
		{"bad date format", model.EventFields{Title: "x", Date: "01/02/2026"}, "date"},
		{"impossible date", model.EventFields{Title: "x", Date: "2026-02-30"}, "date"},
		{"bad time", model.EventFields{Title: "x", Date: "2026-01-01", Time: "25:00"}, "time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, err := s.Add(tt.f)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
			if s.Len() != 0 {
				t.Errorf("store changed on validation error: len = %d", s.Len())
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, "A", "2026-05-01", "")
	b := mustAdd(t, s, "B", "2026-05-01", "")

	updated, err := s.Update(a.ID, model.EventFields{Title: "A2", Date: "2026-05-01", Time: "10:00", Description: "moved"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != a.ID {
		t.Errorf("id = %d, want %d", updated.ID, a.ID)
	}

	got := titles(s.EventsOn("2026-05-01", ""))
	if !slices.Equal(got, []string{"A2", "B"}) {
		t.Errorf("order after update = %v, want [A2 B]", got)
	}

	if _, err := s.Update(b.ID, model.EventFields{Title: "", Date: "2026-05-01"}); err == nil {
		t.Error("expected validation error")
	}
	if e, _ := s.Get(b.ID); e.Title != "B" {
		t.Errorf("failed update changed event: %+v", e)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Update(999, model.EventFields{Title: "x", Date: "2026-01-01"})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if nf.ID != 999 {
		t.Errorf("id = %d, want 999", nf.ID)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, "A", "2026-05-01", "")
	mustAdd(t, s, "B", "2026-05-01", "")

	if !s.Remove(a.ID) {
		t.Error("remove existing should report true")
	}
	if _, err := s.Get(a.ID); err == nil {
		t.Error("expected not found after remove")
	}

	before := s.All()
	if s.Remove(12345) {
		t.Error("remove missing should report false")
	}
	if !slices.Equal(before, s.All()) {
		t.Error("removing a missing id changed the store")
	}
}

func TestMatchesQuery(t *testing.T) {
	e := model.Event{Title: "Team Lunch", Description: "At the Noodle Bar"}
	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"lunch", true},
		{"TEAM", true},
		{"noodle", true},
		{"dinner", false},
	}
	for _, tt := range tests {
		if got := MatchesQuery(e, tt.query); got != tt.want {
			t.Errorf("MatchesQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}

	noDesc := model.Event{Title: "Gym"}
	if MatchesQuery(noDesc, "x") {
		t.Error("empty description must not match a non-empty query")
	}
}

func TestEventsOnKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "third-day", "2026-05-03", "")
	mustAdd(t, s, "first", "2026-05-02", "")
	mustAdd(t, s, "second", "2026-05-02", "")

	got := titles(s.EventsOn("2026-05-02", ""))
	if !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("EventsOn = %v, want [first second]", got)
	}
}

func TestEventsOnIsIntersection(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Book club", "2026-06-10", "chapter 3")
	mustAdd(t, s, "Run", "2026-06-10", "park loop")
	mustAdd(t, s, "Book fair", "2026-06-11", "")
	mustAdd(t, s, "Groceries", "2026-06-10", "buy a book")

	for _, q := range []string{"", "book", "RUN", "zzz"} {
		var onDate, matching []model.Event
		for _, e := range s.All() {
			if e.Date == "2026-06-10" {
				onDate = append(onDate, e)
			}
			if MatchesQuery(e, q) {
				matching = append(matching, e)
			}
		}
		var want []model.Event
		for _, e := range onDate {
			if slices.Contains(matching, e) {
				want = append(want, e)
			}
		}
		if got := s.EventsOn("2026-06-10", q); !slices.Equal(got, want) {
			t.Errorf("query %q: EventsOn = %v, want %v", q, titles(got), titles(want))
		}
	}
}

func TestEventsInMonth(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "a", "2026-03-01", "")
	mustAdd(t, s, "b", "2026-03-31", "party")
	mustAdd(t, s, "c", "2026-04-15", "")
	mustAdd(t, s, "d", "2025-03-10", "")

	if got := s.EventsInMonth(2026, time.March, ""); got != 2 {
		t.Errorf("March 2026 = %d, want 2", got)
	}
	if got := s.EventsInMonth(2026, time.March, "party"); got != 1 {
		t.Errorf("March 2026 'party' = %d, want 1", got)
	}
	if got := s.EventsInMonth(2026, time.April, ""); got != 1 {
		t.Errorf("April 2026 = %d, want 1", got)
	}
	if got := s.EventsInMonth(2026, time.May, ""); got != 0 {
		t.Errorf("May 2026 = %d, want 0", got)
	}
}

func TestReplace(t *testing.T) {
	s := newTestStore(t)
	err := s.Replace([]model.Event{
		{ID: 1700000000000, Title: "legacy", Date: "2026-01-05"},
		{ID: 7, Title: "ok", Date: "2026-01-06"},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	got := titles(s.All())
	if !slices.Equal(got, []string{"legacy", "ok"}) {
		t.Fatalf("after replace = %v, want [legacy ok]", got)
	}

	e := mustAdd(t, s, "new", "2026-01-08", "")
	if e.ID != 1700000000001 {
		t.Errorf("next id = %d, want %d", e.ID, int64(1700000000001))
	}
}

func TestReplaceRejectsWholeCollection(t *testing.T) {
	tests := []struct {
		name   string
		events []model.Event
		field  string
	}{
		{"bad date", []model.Event{
			{ID: 1, Title: "ok", Date: "2026-01-06"},
			{ID: 5, Title: "bad", Date: "2026-13-01"},
		}, "date"},
		{"duplicate id", []model.Event{
			{ID: 7, Title: "ok", Date: "2026-01-06"},
			{ID: 7, Title: "dup", Date: "2026-01-07"},
		}, "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			mustAdd(t, s, "before", "2026-01-01", "")

			err := s.Replace(tt.events)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("Replace error = %v, want ValidationError on %s", err, tt.field)
			}
			if s.Len() != 0 {
				t.Errorf("len = %d, want empty store", s.Len())
			}
			if e := mustAdd(t, s, "after", "2026-01-02", ""); e.ID != 1 {
				t.Errorf("id after rejected load = %d, want 1", e.ID)
			}
		})
	}
}
