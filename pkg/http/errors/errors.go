package errors

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ErrorResponse is the uniform failure envelope returned by every endpoint.
// Success responses use the same top-level shape with Success=true and a data
// payload instead of the error fields.
type ErrorResponse struct {
	Success    bool              `json:"success"`
	Error      string            `json:"error"`
	Message    string            `json:"message,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	RetryAfter int               `json:"retryAfter,omitempty"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}

// RespondValidationError writes a 400 with the per-field constraint violations.
func RespondValidationError(w http.ResponseWriter, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   ErrCodeValidationFailed,
		Message: message,
		Details: details,
	})
}

// RespondRateLimited writes a 429 carrying the retry-after hint in both the
// envelope and the Retry-After header.
func RespondRateLimited(w http.ResponseWriter, message string, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success:    false,
		Error:      ErrCodeRateLimited,
		Message:    message,
		RetryAfter: retryAfter,
	})
}

// RespondMethodNotAllowed writes a 405 error response
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
}

// RespondInternalError writes an internal server error response
func RespondInternalError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// RespondBadRequest writes a bad request error response
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}
