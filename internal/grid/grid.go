// Package grid turns a view state and an event source into the ordered cell
// descriptors a renderer paints. Build is a pure function of its inputs.
package grid

import (
	"time"

	"github.com/dukerupert/wallcal/internal/caldate"
	"github.com/dukerupert/wallcal/internal/holiday"
	"github.com/dukerupert/wallcal/internal/model"
	"github.com/dukerupert/wallcal/internal/view"
)

// EventSource is the read side of the event store.
type EventSource interface {
	EventsOn(date, query string) []model.Event
	EventsInMonth(year int, month time.Month, query string) int
}

// DayCell describes one calendar day.
type DayCell struct {
	Date          string        `json:"date"`
	OutsidePeriod bool          `json:"outside_period"`
	Holiday       bool          `json:"holiday"`
	HolidayName   string        `json:"holiday_name,omitempty"`
	Events        []model.Event `json:"events"`
}

// MonthCell describes one month of the Year view. Month is 0-based.
type MonthCell struct {
	Month      int    `json:"month"`
	Name       string `json:"name"`
	EventCount int    `json:"event_count"`
}

// Grid is one render pass. Year views fill Months; the others fill Days.
type Grid struct {
	View      view.View   `json:"view"`
	Reference string      `json:"reference"`
	Query     string      `json:"query,omitempty"`
	Days      []DayCell   `json:"days,omitempty"`
	Months    []MonthCell `json:"months,omitempty"`
}

// Build computes the grid for s.
func Build(s view.State, src EventSource) Grid {
	g := Grid{
		View:      s.View,
		Reference: caldate.Format(s.Reference),
		Query:     s.Query,
	}
	switch s.View {
	case view.Year:
		g.Months = yearCells(s, src)
	case view.Month:
		g.Days = monthCells(s, src)
	case view.Week:
		g.Days = weekCells(s, src)
	default:
		g.Days = []DayCell{dayCell(s.Reference, false, s.Query, src)}
	}
	return g
}

func yearCells(s view.State, src EventSource) []MonthCell {
	year := s.Reference.Year()
	cells := make([]MonthCell, 12)
	for m := range cells {
		month := time.Month(m + 1)
		cells[m] = MonthCell{
			Month:      m,
			Name:       month.String()[:3],
			EventCount: src.EventsInMonth(year, month, s.Query),
		}
	}
	return cells
}

// monthCells pads the month with the tail of the previous month up to the
// first Monday and with the head of the next month to a whole number of weeks.
func monthCells(s view.State, src EventSource) []DayCell {
	first := caldate.FirstOfMonth(s.Reference)
	year, month := first.Year(), first.Month()
	loc := first.Location()

	lead := caldate.WeekdayIndex(first)
	days := caldate.DaysInMonth(year, month)
	trail := (7 - (lead+days)%7) % 7

	cells := make([]DayCell, 0, lead+days+trail)

	prev := caldate.AddMonths(first, -1)
	prevDays := caldate.DaysInMonth(prev.Year(), prev.Month())
	for i := lead - 1; i >= 0; i-- {
		d := time.Date(prev.Year(), prev.Month(), prevDays-i, 0, 0, 0, 0, loc)
		cells = append(cells, dayCell(d, true, s.Query, src))
	}

	for d := 1; d <= days; d++ {
		cells = append(cells, dayCell(time.Date(year, month, d, 0, 0, 0, 0, loc), false, s.Query, src))
	}

	next := caldate.AddMonths(first, 1)
	for d := 1; d <= trail; d++ {
		cells = append(cells, dayCell(time.Date(next.Year(), next.Month(), d, 0, 0, 0, 0, loc), true, s.Query, src))
	}
	return cells
}

func weekCells(s view.State, src EventSource) []DayCell {
	start := caldate.WeekStart(s.Reference)
	cells := make([]DayCell, 7)
	for i := range cells {
		cells[i] = dayCell(caldate.AddDays(start, i), false, s.Query, src)
	}
	return cells
}

func dayCell(d time.Time, outside bool, query string, src EventSource) DayCell {
	date := caldate.Format(d)
	h, ok := holiday.Lookup(date)
	events := src.EventsOn(date, query)
	if events == nil {
		events = []model.Event{}
	}
	return DayCell{
		Date:          date,
		OutsidePeriod: outside,
		Holiday:       ok,
		HolidayName:   h.Name,
		Events:        events,
	}
}
