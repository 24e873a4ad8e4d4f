package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeDatasetNotFound ErrorType = "DATASET_NOT_FOUND"
	ErrTypeMalformedData   ErrorType = "MALFORMED_DATA"
	ErrTypeEmptyResult     ErrorType = "EMPTY_RESULT"
	ErrTypeValidation      ErrorType = "VALIDATION"
	ErrTypeStorage         ErrorType = "STORAGE"
	ErrTypeConfig          ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same type, so sentinel values such as
// ErrEmptyResult compare equal to any error of their kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Sentinels for errors.Is checks. They carry no message so they match every
// error of their type.
var (
	ErrDatasetNotFound = &AppError{Type: ErrTypeDatasetNotFound}
	ErrMalformedData   = &AppError{Type: ErrTypeMalformedData}
	ErrEmptyResult     = &AppError{Type: ErrTypeEmptyResult}
)

// NewDatasetNotFoundError reports an unknown city or an unreadable source.
func NewDatasetNotFoundError(city string, cause error) *AppError {
	return NewAppError(ErrTypeDatasetNotFound, fmt.Sprintf("dataset for %q not found", city), cause).
		WithContext("city", city)
}

// NewMalformedDataError reports a source whose content cannot be loaded.
func NewMalformedDataError(message string, cause error) *AppError {
	return NewAppError(ErrTypeMalformedData, message, cause)
}

// NewMissingColumnsError reports required columns absent from a header.
func NewMissingColumnsError(source string, missing []string) *AppError {
	return NewMalformedDataError(
		fmt.Sprintf("%s: required columns missing: %s", source, strings.Join(missing, ", ")), nil).
		WithContext("source", source).
		WithContext("missing_columns", missing)
}

// NewInvalidValueError reports a cell that cannot be parsed. Row is the
// 1-based data row (the header is not counted).
func NewInvalidValueError(source string, row int, column, value string, cause error) *AppError {
	return NewMalformedDataError(
		fmt.Sprintf("%s: row %d: invalid %s value %q", source, row, column, value), cause).
		WithContext("source", source).
		WithContext("row", row).
		WithContext("column", column)
}

// NewEmptyResultError reports a filter that matched no trips.
func NewEmptyResultError(message string) *AppError {
	return NewAppError(ErrTypeEmptyResult, message, nil)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or ""
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsDatasetNotFound reports whether err is a DatasetNotFoundError
func IsDatasetNotFound(err error) bool {
	return TypeOf(err) == ErrTypeDatasetNotFound
}

// IsMalformedData reports whether err is a MalformedDataError
func IsMalformedData(err error) bool {
	return TypeOf(err) == ErrTypeMalformedData
}

// IsEmptyResult reports whether err is an EmptyResultError
func IsEmptyResult(err error) bool {
	return TypeOf(err) == ErrTypeEmptyResult
}
