package server

import (
	"encoding/json"
	"net/http"

	"lectio/internal/mirror"
)

func writeJSON(w http.ResponseWriter, status int, env mirror.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func success(w http.ResponseWriter, data any, message string) {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	writeJSON(w, http.StatusOK, mirror.Envelope{
		Status:  http.StatusOK,
		Success: true,
		Message: message,
		Data:    raw,
	})
}

// fail writes a structured error with its kind tag so clients can classify
// without inspecting the message text.
func fail(w http.ResponseWriter, status int, kind mirror.Kind, message string) {
	writeJSON(w, status, mirror.Envelope{
		Status:  status,
		Success: false,
		Message: message,
		Kind:    string(kind),
	})
}
