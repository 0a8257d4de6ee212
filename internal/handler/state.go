package handler

import (
	"net/http"
	"strings"

	"github.com/dukerupert/wallcal/internal/caldate"
	"github.com/dukerupert/wallcal/internal/calendar"
	"github.com/dukerupert/wallcal/internal/holiday"
	"github.com/dukerupert/wallcal/internal/view"
)

// StateHandler drives the calendar's view state. Every mutating endpoint
// answers with the grid for the new state.
type StateHandler struct {
	cal *calendar.Calendar
}

func NewStateHandler(cal *calendar.Calendar) *StateHandler {
	return &StateHandler{cal: cal}
}

// Grid computes a grid without changing the current state. Query parameters
// view, date and q override the corresponding parts of the current state.
func (h *StateHandler) Grid(w http.ResponseWriter, r *http.Request) {
	s := h.cal.State()
	q := r.URL.Query()

	if q.Has("view") {
		v, err := view.ParseView(q.Get("view"))
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, err.Error())
			return
		}
		s.View = v
	}
	if q.Has("date") {
		d, err := caldate.Parse(q.Get("date"))
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		s.Reference = d
	}
	if q.Has("q") {
		s.Query = strings.TrimSpace(q.Get("q"))
	}

	writeJSON(w, http.StatusOK, h.cal.GridFor(s))
}

func (h *StateHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cal.Grid())
}

func (h *StateHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View string `json:"view"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := view.ParseView(req.View)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cal.SetView(v))
}

func (h *StateHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	dir, err := view.ParseDirection(req.Direction)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cal.Navigate(dir))
}

func (h *StateHandler) DrillDown(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month *int `json:"month"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Month == nil {
		writeErrorMsg(w, http.StatusBadRequest, "month is required")
		return
	}
	g, err := h.cal.DrillDown(*req.Month)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *StateHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.cal.SetQuery(req.Query))
}

func (h *StateHandler) Today(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cal.Today())
}

func (h *StateHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, holiday.All())
}
