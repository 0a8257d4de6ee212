// Package handler exposes a Calendar over a JSON HTTP API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dukerupert/wallcal/internal/store"
	ws "github.com/dukerupert/wallcal/internal/websocket"
)

// Broadcaster fans change notifications out to connected renderers.
type Broadcaster interface {
	Broadcast(msg ws.Message)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps store errors to 400/404 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *store.ValidationError
		nerr *store.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		writeErrorMsg(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &nerr):
		writeErrorMsg(w, http.StatusNotFound, nerr.Error())
	default:
		writeErrorMsg(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
