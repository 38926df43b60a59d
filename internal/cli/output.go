package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/gamesweep/internal/simulator"
	"github.com/roach88/gamesweep/internal/sweep"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Sweep failure (simulator invocation or response)
	ExitCommandError = 2 // Command error (bad flags, invalid scenario file, etc.)
)

// Error codes reported in CLI error output.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeConfig     = "E002" // Invalid flags or scenario file
	ErrCodeInvocation = "E003" // Simulator could not run or exited non-zero
	ErrCodeResponse   = "E004" // Simulator output unusable
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorCode classifies err for CLI error output.
func ErrorCode(err error) string {
	switch {
	case sweep.IsConfigError(err):
		return ErrCodeConfig
	case simulator.IsInvocationError(err):
		return ErrCodeInvocation
	case simulator.IsResponseError(err):
		return ErrCodeResponse
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code == ExitCommandError {
		return ErrCodeConfig
	}
	return ErrCodeGeneric
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`    // "E001", "E002", etc.
	Message string `json:"message"` // human-readable message
}

// texter is implemented by payloads with a dedicated text rendering.
type texter interface {
	Text() string
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	if t, ok := data.(texter); ok {
		_, err := io.WriteString(f.Writer, t.Text())
		return err
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs err in the configured format.
func (f *OutputFormatter) Error(err error) error {
	code := ErrorCode(err)
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: err.Error(),
			},
		})
	}

	_, werr := fmt.Fprintf(f.Writer, "Error [%s]: %v\n", code, err)
	return werr
}
