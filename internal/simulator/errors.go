package simulator

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes simulator failures.
type ErrorCode string

const (
	// CodeStartFailed indicates the process could not be launched.
	CodeStartFailed ErrorCode = "START_FAILED"

	// CodeExitStatus indicates the process exited with a non-zero status.
	CodeExitStatus ErrorCode = "EXIT_STATUS"

	// CodeTimeout indicates the per-invocation timeout elapsed.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeMalformedOutput indicates stdout was not a structured record.
	CodeMalformedOutput ErrorCode = "MALFORMED_OUTPUT"

	// CodeMissingField indicates a required field was absent.
	CodeMissingField ErrorCode = "MISSING_FIELD"
)

// Error is a failed simulator invocation or an unusable response.
type Error struct {
	Code    ErrorCode
	Message string

	// Field names the offending field (MISSING_FIELD, MALFORMED_OUTPUT).
	Field string

	// ExitCode and Stderr are set for EXIT_STATUS.
	ExitCode int
	Stderr   string

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field=%s)", msg, e.Field)
	}
	if e.Code == CodeExitStatus {
		msg = fmt.Sprintf("%s (exit=%d)", msg, e.ExitCode)
		if e.Stderr != "" {
			msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
		}
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsInvocationError reports whether err is a failure to run the process.
func IsInvocationError(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == CodeStartFailed || se.Code == CodeExitStatus || se.Code == CodeTimeout
	}
	return false
}

// IsResponseError reports whether err is an unusable simulator response.
func IsResponseError(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == CodeMalformedOutput || se.Code == CodeMissingField
	}
	return false
}

// NewMissingFieldError creates an Error for an absent field.
func NewMissingFieldError(field string) *Error {
	return &Error{
		Code:    CodeMissingField,
		Message: "simulator response is missing a field",
		Field:   field,
	}
}
