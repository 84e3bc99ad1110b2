package jsonutils

import (
	"encoding/json"
	"net/http"
	"strings"

	"gestor/gestor/utils/logging"

	"go.uber.org/zap"
)

// WriteJSON writes v with the given status code. Encoding errors can only be
// logged since the header is already out.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.ErrorLogger.Error("failed to write json response", zap.Error(err))
	}
}

// ToJSON serializes a Go value to a JSON string with indentation.
// Returns an empty string if serialization fails.
func ToJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes))
}
