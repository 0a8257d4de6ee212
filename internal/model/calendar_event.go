package model

// Event is a single-day calendar entry. Date is "YYYY-MM-DD"; Time is "HH:MM"
// or empty for an untimed event.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// EventFields is the editable part of an Event as supplied by the event form.
type EventFields struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Fields returns the editable part of e.
func (e Event) Fields() EventFields {
	return EventFields{Title: e.Title, Date: e.Date, Time: e.Time, Description: e.Description}
}
