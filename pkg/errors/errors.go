package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad        ErrorCode = "CONFIG_LOAD"
	ErrConfigParse       ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrConfigMissingSpec ErrorCode = "CONFIG_MISSING_INSTALL"
	ErrConfigUnknownHook ErrorCode = "CONFIG_UNKNOWN_HOOK"

	// File matching errors
	ErrMatchPattern ErrorCode = "MATCH_PATTERN"
	ErrMatchWalk    ErrorCode = "MATCH_WALK"

	// Install errors
	ErrInstallFailed  ErrorCode = "INSTALL_FAILED"
	ErrInstallMissing ErrorCode = "INSTALL_BINARY_MISSING"
	ErrInstallVersion ErrorCode = "INSTALL_VERSION"
	ErrInstallTarget  ErrorCode = "INSTALL_TARGET"

	// Execution errors
	ErrExecSpawn  ErrorCode = "EXEC_SPAWN"
	ErrExecStatus ErrorCode = "EXEC_STATUS"

	// Hook contract violations found by validate-hook
	ErrHookContract ErrorCode = "HOOK_CONTRACT"

	// Lock store errors
	ErrLockLoad  ErrorCode = "LOCK_LOAD"
	ErrLockWrite ErrorCode = "LOCK_WRITE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// PrehookError represents a structured error with code and details
type PrehookError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PrehookError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PrehookError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PrehookError) Is(target error) bool {
	var targetErr *PrehookError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PrehookError with the given code and message
func New(code ErrorCode, message string) *PrehookError {
	return &PrehookError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PrehookError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PrehookError {
	return &PrehookError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PrehookError
func Wrap(err error, code ErrorCode, message string) *PrehookError {
	if err == nil {
		return nil
	}
	return &PrehookError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PrehookError {
	if err == nil {
		return nil
	}
	return &PrehookError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PrehookError) WithDetail(key string, value interface{}) *PrehookError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var perr *PrehookError
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PrehookError
func GetErrorCode(err error) ErrorCode {
	var perr *PrehookError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ErrUnknown
}

// IsConfig reports whether the error belongs to the configuration
// category. Configuration errors are non-recoverable for the affected
// hook; raised before the run loop they abort the whole run.
func IsConfig(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigInvalid, ErrConfigMissingSpec, ErrConfigUnknownHook, ErrInstallVersion:
		return true
	}
	return false
}
