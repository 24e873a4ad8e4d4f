package errors

import (
	"net/http"
	"strings"
)

// CodeValidationFailed marks a request whose query parameters were rejected
const CodeValidationFailed = "VALIDATION_FAILED"

// FieldError names one rejected request parameter
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a request the HTTP layer refused before any dataset was read.
// It renders as a problem document with one entry per rejected field.
type APIError struct {
	Status int
	Code   string
	Fields []FieldError
}

// Error joins the field messages
func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return "request validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// ErrValidation rejects a single parameter
func ErrValidation(field, message string) *APIError {
	return NewValidationErrors([]FieldError{{Field: field, Message: message}})
}

// NewValidationErrors rejects several parameters at once
func NewValidationErrors(fields []FieldError) *APIError {
	return &APIError{
		Status: http.StatusBadRequest,
		Code:   CodeValidationFailed,
		Fields: fields,
	}
}
