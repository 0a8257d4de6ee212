package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/wallcal/internal/calendar"
	"github.com/dukerupert/wallcal/internal/ics"
	"github.com/dukerupert/wallcal/internal/model"
	ws "github.com/dukerupert/wallcal/internal/websocket"
)

type EventHandler struct {
	cal    *calendar.Calendar
	hub    Broadcaster
	logger *slog.Logger
}

func NewEventHandler(cal *calendar.Calendar, hub Broadcaster, logger *slog.Logger) *EventHandler {
	return &EventHandler{cal: cal, hub: hub, logger: logger}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cal.Events())
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	e, err := h.cal.Event(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f model.EventFields
	if !decodeJSON(w, r, &f) {
		return
	}
	e, err := h.cal.AddEvent(f)
	h.changed("created", e.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	var f model.EventFields
	if !decodeJSON(w, r, &f) {
		return
	}
	e, err := h.cal.UpdateEvent(id, f)
	h.changed("updated", e.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete removes an event. Unknown ids succeed without a broadcast.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	removed, err := h.cal.RemoveEvent(id)
	if removed {
		h.changed("deleted", id)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportICS serves every event as an iCalendar feed.
func (h *EventHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	body := ics.Export(h.cal.Events(), time.Now(), time.Local)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="wallcal.ics"`)
	w.Write([]byte(body))
}

// changed broadcasts a mutation. A zero id means nothing was applied. A
// mutation whose save failed still changed the in-memory state, so it is
// broadcast too.
func (h *EventHandler) changed(action string, id int64) {
	if id == 0 {
		return
	}
	h.logger.Debug("broadcast", "action", action, "id", id)
	h.hub.Broadcast(ws.EventMessage(action, id))
}
