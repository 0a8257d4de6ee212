package handler

import (
	"net/http"

	"github.com/dukerupert/wallcal/internal/calendar"
	"github.com/dukerupert/wallcal/internal/model"
	ws "github.com/dukerupert/wallcal/internal/websocket"
)

type ThemeHandler struct {
	cal *calendar.Calendar
	hub Broadcaster
}

func NewThemeHandler(cal *calendar.Calendar, hub Broadcaster) *ThemeHandler {
	return &ThemeHandler{cal: cal, hub: hub}
}

type themeResponse struct {
	Theme model.Theme `json:"theme"`
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeResponse{Theme: h.cal.Theme()})
}

func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := model.ParseTheme(req.Theme)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	err = h.cal.SetTheme(t)
	h.hub.Broadcast(ws.ThemeMessage(string(t)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: t})
}

func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	t, err := h.cal.ToggleTheme()
	h.hub.Broadcast(ws.ThemeMessage(string(t)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: t})
}
