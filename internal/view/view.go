// Package view holds the calendar's view state and the navigation rules that
// move its reference date.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/wallcal/internal/caldate"
)

// View is one of the four calendar granularities.
type View int

const (
	Year View = iota
	Month
	Week
	Day
)

var viewNames = [...]string{"year", "month", "week", "day"}

func (v View) String() string {
	if v < Year || v > Day {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView accepts "year", "month", "week" or "day" in any case.
func ParseView(s string) (View, error) {
	for i, name := range viewNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", s)
}

func (v View) MarshalText() ([]byte, error) {
	if v < Year || v > Day {
		return nil, fmt.Errorf("invalid view %d", int(v))
	}
	return []byte(v.String()), nil
}

func (v *View) UnmarshalText(b []byte) error {
	parsed, err := ParseView(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Direction moves the reference date backwards or forwards one period.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev":
		return Prev, nil
	case "next":
		return Next, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// State is the input of a render pass: which view, anchored where, filtered
// by what.
type State struct {
	View      View
	Reference time.Time
	Query     string
}

// New returns a Month view anchored at now.
func New(now time.Time) State {
	return State{View: Month, Reference: now}
}

// Shift returns the reference date one period away from s.Reference in
// direction dir. Month and year steps clamp the day to the target month.
func Shift(s State, dir Direction) time.Time {
	mul := int(dir)
	switch s.View {
	case Year:
		return caldate.AddYears(s.Reference, mul)
	case Month:
		return caldate.AddMonths(s.Reference, mul)
	case Week:
		return caldate.AddDays(s.Reference, mul*7)
	default:
		return caldate.AddDays(s.Reference, mul)
	}
}

// Navigate is Shift applied to s.
func Navigate(s State, dir Direction) State {
	s.Reference = Shift(s, dir)
	return s
}

// Switch changes to view v. Changing views resets the reference date to now;
// selecting the active view leaves s unchanged.
func Switch(s State, v View, now time.Time) State {
	if s.View == v {
		return s
	}
	s.View = v
	s.Reference = now
	return s
}

// DrillDown opens month (0..11) of the reference year in Month view,
// anchored on its first day.
func DrillDown(s State, month int) (State, error) {
	if month < 0 || month > 11 {
		return s, fmt.Errorf("month %d out of range 0..11", month)
	}
	ref := s.Reference
	s.View = Month
	s.Reference = time.Date(ref.Year(), time.Month(month+1), 1, 0, 0, 0, 0, ref.Location())
	return s, nil
}
