// Package holiday holds the fixed table of annotated holidays.
package holiday

// Holiday is a named calendar day.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// table is looked up by exact date string; the first match wins.
var table = []Holiday{
	{Date: "2026-01-01", Name: "New Year's Day"},
	{Date: "2026-02-14", Name: "Valentine’s Day"},
	{Date: "2026-04-21", Name: "Easter Sunday"},
	{Date: "2026-05-01", Name: "International Workers’ Day"},
	{Date: "2026-07-04", Name: "Independence Day (US)"},
	{Date: "2026-10-31", Name: "Halloween"},
	{Date: "2026-12-25", Name: "Christmas Day"},
}

// Lookup returns the first holiday on date.
func Lookup(date string) (Holiday, bool) {
	for _, h := range table {
		if h.Date == date {
			return h, true
		}
	}
	return Holiday{}, false
}

// IsHoliday reports whether date is in the table.
func IsHoliday(date string) bool {
	_, ok := Lookup(date)
	return ok
}

// Name returns the holiday name for date, or "" if there is none.
func Name(date string) string {
	h, _ := Lookup(date)
	return h.Name
}

// All returns a copy of the table in declaration order.
func All() []Holiday {
	out := make([]Holiday, len(table))
	copy(out, table)
	return out
}
