package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an application error independently of its HTTP status.
type Code string

const (
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeTooManyRequests Code = "TOO_MANY_REQUESTS"
	CodeInternal        Code = "INTERNAL_ERROR"
)

// redactedMessage replaces internal error text when redaction is enabled.
const redactedMessage = "internal server error"

// AppError is an error with a code, a client-facing message and an HTTP status.
type AppError struct {
	Code    Code
	Message string
	Err     error
	Status  int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewInvalidInput(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message, Status: http.StatusBadRequest}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Status: http.StatusConflict}
}

func NewTooManyRequests(message string) *AppError {
	return &AppError{Code: CodeTooManyRequests, Message: message, Status: http.StatusTooManyRequests}
}

// NewInternal wraps an infrastructure failure. The client-facing message is
// the underlying error text.
func NewInternal(err error) *AppError {
	msg := redactedMessage
	if err != nil {
		msg = err.Error()
	}
	return &AppError{Code: CodeInternal, Message: msg, Err: err, Status: http.StatusInternalServerError}
}

// Wrap attaches a cause to a new AppError.
func Wrap(err error, code Code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, Status: status}
}

// From normalises err into an *AppError. Unknown errors become internal errors.
func From(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return NewInternal(err)
}

// Write renders err as JSON. Server errors use an "error" key, everything
// else a "message" key. When redact is set, server error text is hidden.
func Write(w http.ResponseWriter, err error, redact bool) {
	ae := From(err)
	if ae.Status >= http.StatusInternalServerError {
		msg := ae.Message
		if redact {
			msg = redactedMessage
		}
		JSON(w, ae.Status, map[string]string{"error": msg})
		return
	}
	JSON(w, ae.Status, map[string]string{"message": ae.Message})
}

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
