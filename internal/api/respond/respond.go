// Package respond centralizes JSON response writing for the HTTP API.
package respond

import (
	"encoding/json"
	"net/http"
)

// Failure is the body of every non-2xx response.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"` // detail, omitted in production
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with status 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Fail writes a failure body carrying the error message.
func Fail(w http.ResponseWriter, status int, err error) {
	JSON(w, status, Failure{Success: false, Message: err.Error()})
}

// FailWithDetail writes a failure body with an optional detail string.
func FailWithDetail(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, Failure{Success: false, Message: message, Error: detail})
}
