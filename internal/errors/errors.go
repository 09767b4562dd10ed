package errors

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is comparisons. Only Type and Code take part in the match.
var (
	ErrInvalidInput    = &AppError{Type: ErrorTypeInvalidInput, Code: "INVALID_INPUT"}
	ErrNotFound        = &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}
	ErrIndexOutOfRange = &AppError{Type: ErrorTypeIndexOutOfRange, Code: "INDEX_OUT_OF_RANGE"}
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewIndexOutOfRangeError reports a position outside [0, length).
func NewIndexOutOfRangeError(field string, index int, length int) *AppError {
	return &AppError{
		Type:    ErrorTypeIndexOutOfRange,
		Message: fmt.Sprintf("%s %d out of range [0, %d)", field, index, length),
		Code:    "INDEX_OUT_OF_RANGE",
		Context: map[string]interface{}{
			"field":  field,
			"index":  index,
			"length": length,
		},
	}
}

// NewStateError creates an error for an operation issued in the wrong state
func NewStateError(operation string, state string) *AppError {
	return &AppError{
		Type:    ErrorTypeState,
		Message: fmt.Sprintf("cannot %s while %s", operation, state),
		Code:    "INVALID_STATE",
		Context: map[string]interface{}{
			"operation": operation,
			"state":     state,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeIndexOutOfRange:
			return "That position is not in the list."
		case ErrorTypeState:
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // user input, not a program fault
		case ErrorTypeIndexOutOfRange, ErrorTypeState:
			return true // caller bookkeeping is off
		default:
			return true
		}
	}
	return true
}
