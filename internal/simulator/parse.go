package simulator

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseResult decodes the simulator's stdout.
//
// Numeric fields are collected into Result.Fields; non-numeric fields are
// ignored unless they are required.
func ParseResult(out []byte) (Result, error) {
	if len(bytes.TrimSpace(out)) == 0 {
		return Result{}, &Error{Code: CodeMalformedOutput, Message: "simulator produced no output"}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(out, &raw); err != nil {
		return Result{}, &Error{Code: CodeMalformedOutput, Message: "simulator output is not a structured record", Err: err}
	}
	if raw == nil {
		return Result{}, &Error{Code: CodeMalformedOutput, Message: "simulator output is not a structured record"}
	}

	fields := make(map[string]float64, len(raw))
	for k, v := range raw {
		if n, ok := toFloat(v); ok {
			fields[k] = n
		}
	}

	for _, name := range RequiredFields {
		if _, present := raw[name]; !present {
			return Result{}, NewMissingFieldError(name)
		}
		if _, numeric := fields[name]; !numeric {
			return Result{}, &Error{
				Code:    CodeMalformedOutput,
				Message: fmt.Sprintf("field is not numeric: %v", raw[name]),
				Field:   name,
			}
		}
	}

	return Result{
		ExcellentPercent:   fields[FieldExcellentPercent],
		BeatTheGamePercent: fields[FieldBeatTheGamePercent],
		Fields:             fields,
	}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
