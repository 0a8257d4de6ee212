// Package ics exports calendar events as an iCalendar feed.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/dukerupert/wallcal/internal/caldate"
	"github.com/dukerupert/wallcal/internal/model"
)

const (
	ProductID = "-//wallcal//calendar//EN"

	timedDuration = time.Hour
)

// Export renders events as a VCALENDAR. Untimed events become all-day
// events; timed events start at their local wall time and last an hour.
// Events whose date or time cannot be parsed are skipped.
func Export(events []model.Event, stamp time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetName("wallcal")

	for _, e := range events {
		day, err := caldate.ParseIn(e.Date, loc)
		if err != nil {
			continue
		}

		ve := cal.AddEvent(UID(e.ID))
		ve.SetDtStampTime(stamp)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}

		if e.Time == "" {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(caldate.AddDays(day, 1))
			continue
		}
		start, err := time.ParseInLocation(caldate.Layout+" 15:04", e.Date+" "+e.Time, loc)
		if err != nil {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(caldate.AddDays(day, 1))
			continue
		}
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(timedDuration))
	}
	return cal.Serialize()
}

// UID is the iCalendar UID of event id.
func UID(id int64) string {
	return fmt.Sprintf("%d@wallcal", id)
}
