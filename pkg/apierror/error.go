package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error is an API error carrying its HTTP status.
type Error struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// body is the wire shape. Message is repeated at the top level because the
// bridge clients read it from there.
type body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   *Error `json:"error"`
}

// ToJSON renders {success:false,message,error:{code,message,details?}}.
func (e *Error) ToJSON() []byte {
	data, _ := json.Marshal(body{Message: e.Message, Error: e})
	return data
}

// defaults holds the code and fallback message per status.
var defaults = map[int]struct{ code, message string }{
	http.StatusBadRequest:          {"BAD_REQUEST", "Bad request"},
	http.StatusUnauthorized:        {"UNAUTHORIZED", "Authentication required"},
	http.StatusForbidden:           {"FORBIDDEN", "Access denied"},
	http.StatusNotFound:            {"NOT_FOUND", "Resource not found"},
	http.StatusConflict:            {"CONFLICT", "Conflict"},
	http.StatusTooManyRequests:     {"TOO_MANY_REQUESTS", "Too many requests"},
	http.StatusInternalServerError: {"INTERNAL_ERROR", "An unexpected error occurred"},
	http.StatusServiceUnavailable:  {"SERVICE_UNAVAILABLE", "Service temporarily unavailable"},
}

// New creates an error for status. An empty message uses the status default.
func New(status int, message string) *Error {
	d, ok := defaults[status]
	if !ok {
		d.code, d.message = "ERROR", http.StatusText(status)
	}
	if message == "" {
		message = d.message
	}
	return &Error{StatusCode: status, Code: d.code, Message: message}
}

// Status returns the HTTP status carried by err, or 500.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func BadRequest(message string) *Error { return New(http.StatusBadRequest, message) }

// ValidationError creates a 400 with per-field details.
func ValidationError(message string, details ...FieldError) *Error {
	e := New(http.StatusBadRequest, message)
	e.Code = "VALIDATION_ERROR"
	e.Details = details
	return e
}

func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

func Forbidden(message string) *Error { return New(http.StatusForbidden, message) }

func NotFound(message string) *Error { return New(http.StatusNotFound, message) }

// Conflict is used for stale writes and out-of-order gate transitions.
func Conflict(message string) *Error { return New(http.StatusConflict, message) }

func TooManyRequests(message string) *Error { return New(http.StatusTooManyRequests, message) }

func InternalError(message string) *Error { return New(http.StatusInternalServerError, message) }

func ServiceUnavailable(message string) *Error { return New(http.StatusServiceUnavailable, message) }
