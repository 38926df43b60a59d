package report

import (
	"fmt"
	"io"

	"github.com/roach88/gamesweep/internal/sweep"
)

// Formats accepted by NewRenderer.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Table is one outcome matrix of one scenario.
type Table struct {
	// Scenario is the scenario label (its name, or a parameter summary).
	Scenario    string
	PlayerCount int

	// Outcome is the outcome key, e.g. "excellent".
	Outcome string
	Title   string

	// Matrix is indexed [r][e], as built by sweep.Sweep.Matrix.
	Matrix sweep.Matrix
}

// Renderer writes tables to an output stream.
type Renderer interface {
	Render(w io.Writer, t Table) error
}

// NewRenderer returns the renderer for format.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case FormatText:
		return TextRenderer{}, nil
	case FormatJSON:
		return JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}
