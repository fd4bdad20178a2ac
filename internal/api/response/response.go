// Package response holds the JSON response helpers shared by all handlers.
// Every error body has the `{success:false, message}` shape the frontend
// relies on.
package response

import (
	"encoding/json"
	"net/http"
)

// Status is the uniform `{success, message}` payload used for errors and
// message-only successes.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with v as the body.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// OKMessage writes a 200 `{success:true, message}` body.
func OKMessage(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Status{Success: true, Message: message})
}

// Error writes a `{success:false, message}` body with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Status{Success: false, Message: message})
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// InternalError writes a 500 error response.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}
