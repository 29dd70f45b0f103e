// internal/app/system/respond/respond.go

// Package respond centralizes JSON response writing so every endpoint
// produces the same shapes: payloads are encoded as-is, and errors are
// always {"message": "..."} with the given status.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a {"message": ...} error body with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// ServerError logs the underlying error and writes a generic 500. The
// database error is never leaked to the client.
func ServerError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log != nil {
		log.Error(op, zap.Error(err))
	}
	Error(w, http.StatusInternalServerError, "internal server error")
}
