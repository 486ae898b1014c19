package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
)

const dateLayout = "2006-01-02"

// Response is the JSON envelope shared by every endpoint.
type Response struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Data: data})
}

// respondError maps each error kind to its response code 1:1.
func respondError(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		writeJSON(w, http.StatusNotFound, Response{Error: true, Message: err.Error()})
	case domain.KindInvalidInput, domain.KindInvalidState:
		writeJSON(w, http.StatusBadRequest, Response{Error: true, Message: err.Error()})
	case domain.KindConflict:
		writeJSON(w, http.StatusConflict, Response{Error: true, Message: err.Error()})
	default:
		logger.Error("Unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, Response{Error: true, Message: "internal server error"})
	}
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidInputf("invalid id %q", raw)
	}
	return id, nil
}

func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, domain.InvalidInputf("%s is required", field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.InvalidInputf("%s must use the format %s", field, dateLayout)
	}
	return t, nil
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.InvalidInputf("invalid request body: %v", err)
	}
	return nil
}
