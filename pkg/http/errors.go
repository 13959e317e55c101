package http

import (
	"fmt"
	"net/http"
)

// AppError is an error the server renders with its own status and code.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// WithError attaches the cause; it is logged but never sent to clients.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func NewAppError(code, field, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Status: status}
}

func BadRequestError(message string) *AppError {
	return NewAppError("ERR_BAD_REQUEST", "", message, http.StatusBadRequest)
}
