package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for report execution errors.
type ErrorCode string

// Version resolution error codes
const (
	VERSION_RESOLUTION_FAILED ErrorCode = "VERSION_RESOLUTION_FAILED"
	VERSION_NOT_INSTALLED     ErrorCode = "VERSION_NOT_INSTALLED"
)

// Plugin and goal error codes
const (
	PLUGIN_NOT_FOUND       ErrorCode = "PLUGIN_NOT_FOUND"
	GOAL_NOT_FOUND         ErrorCode = "GOAL_NOT_FOUND"
	MANIFEST_LOAD_FAILED   ErrorCode = "MANIFEST_LOAD_FAILED"
	MANIFEST_INVALID       ErrorCode = "MANIFEST_INVALID"
	REALM_SETUP_FAILED     ErrorCode = "REALM_SETUP_FAILED"
	REALM_TYPE_UNRESOLVED  ErrorCode = "REALM_TYPE_UNRESOLVED"
	INSTANCE_CONFIG_FAILED ErrorCode = "INSTANCE_CONFIG_FAILED"
)

// Locally recovered error codes: the orchestrator skips the goal and
// continues with the rest of the plugin request.
const (
	INSTANCE_TYPE_MISMATCH  ErrorCode = "INSTANCE_TYPE_MISMATCH"
	LEGACY_REGISTRY_REMOVED ErrorCode = "LEGACY_REGISTRY_REMOVED"
)

// Execution error codes
const (
	FORKED_EXECUTION_FAILED ErrorCode = "FORKED_EXECUTION_FAILED"
	REPORT_BUILD_FAILED     ErrorCode = "REPORT_BUILD_FAILED"
)

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// KilnError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints.
type KilnError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *KilnError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *KilnError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a KilnError with the same Code.
func (e *KilnError) Is(target error) bool {
	var kilnErr *KilnError
	if errors.As(target, &kilnErr) {
		return e.Code == kilnErr.Code
	}
	return false
}

// NewError creates a new non-retryable KilnError with the given code and message.
func NewError(code ErrorCode, message string) *KilnError {
	return &KilnError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf creates a new non-retryable KilnError with a formatted message.
func NewErrorf(code ErrorCode, format string, args ...any) *KilnError {
	return &KilnError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a new non-retryable KilnError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *KilnError {
	return &KilnError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err (or any error in its chain) is a KilnError
// carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var kilnErr *KilnError
	if errors.As(err, &kilnErr) {
		return kilnErr.Code == code
	}
	return false
}
