package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"food-orders/services"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeError maps a service failure onto an HTTP status. Cart and
// policy failures carry their specific reason to the client; storage
// failures get a generic retry message and a log line.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch services.KindOf(err) {
	case services.KindInvalidInput:
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
	case services.KindInvalidQuantity, services.KindItemNotFound, services.KindItemUnavailable:
		writeErrorMsg(w, http.StatusUnprocessableEntity, err.Error())
	case services.KindForbidden:
		writeErrorMsg(w, http.StatusForbidden, err.Error())
	case services.KindNotFound:
		writeErrorMsg(w, http.StatusNotFound, err.Error())
	case services.KindIllegalTransition, services.KindIllegalDeletion:
		writeErrorMsg(w, http.StatusConflict, err.Error())
	case services.KindStorage:
		slog.ErrorContext(r.Context(), "storage failure", "method", r.Method, "path", r.URL.Path, "err", err)
		writeErrorMsg(w, http.StatusServiceUnavailable, "temporary storage failure, try again")
	default:
		slog.ErrorContext(r.Context(), "unhandled failure", "method", r.Method, "path", r.URL.Path, "err", err)
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
	}
}
