package httpapi

import (
	"encoding/json"
	"net/http"

	"gestured/internal/manager"
	"gestured/pkg/types"
)

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status, Success: false})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// predictStatus maps a prediction outcome onto an HTTP status.
func predictStatus(res types.PredictionResult) int {
	if res.Success {
		return http.StatusOK
	}
	switch manager.ErrorKind(res.ErrorKind) {
	case manager.KindModelNotFound:
		return http.StatusNotFound
	case manager.KindInvalidImage:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
