package handler

import (
	"net/http"

	"github.com/dukerupert/wallcal/internal/calendar"
	"github.com/dukerupert/wallcal/internal/model"
	ws "github.com/dukerupert/wallcal/internal/websocket"
)

// EditorHandler backs the event form: open it on an event or blank, submit
// it, delete the event it is on, or close it.
type EditorHandler struct {
	cal *calendar.Calendar
	hub Broadcaster
}

func NewEditorHandler(cal *calendar.Calendar, hub Broadcaster) *EditorHandler {
	return &EditorHandler{cal: cal, hub: hub}
}

// Edit opens the form on an existing event and returns it for prefill.
func (h *EditorHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}
	e, err := h.cal.BeginEdit(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EditorHandler) New(w http.ResponseWriter, r *http.Request) {
	h.cal.BeginCreate()
	w.WriteHeader(http.StatusNoContent)
}

func (h *EditorHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var f model.EventFields
	if !decodeJSON(w, r, &f) {
		return
	}
	_, editing := h.cal.Editing()
	e, err := h.cal.Submit(f)
	if e.ID != 0 {
		action := "created"
		if editing {
			action = "updated"
		}
		h.hub.Broadcast(ws.EventMessage(action, e.ID))
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete removes the event the form is on. With the form blank it only
// closes the form.
func (h *EditorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, removed, err := h.cal.Delete()
	if removed {
		h.hub.Broadcast(ws.EventMessage("deleted", id))
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EditorHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.cal.Cancel()
	w.WriteHeader(http.StatusNoContent)
}
