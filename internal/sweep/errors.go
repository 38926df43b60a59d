package sweep

import (
	"errors"
	"fmt"
)

// ConfigError is a static configuration problem, detected before any
// simulator is launched.
type ConfigError struct {
	// Index is the scenario position, or -1 when not scenario-specific.
	Index   int
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	var msg string
	switch {
	case e.Index >= 0 && e.Field != "":
		msg = fmt.Sprintf("scenarios[%d].%s: %s", e.Index, e.Field, e.Message)
	case e.Field != "":
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	default:
		msg = e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// CellError is a simulator failure at one grid cell.
type CellError struct {
	Scenario Scenario
	R, E     int
	Err      error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("scenario %s cell (r=%d, e=%d): %v", e.Scenario.Label(), e.R, e.E, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
