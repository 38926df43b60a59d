package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/gamesweep/internal/report"
	"github.com/roach88/gamesweep/internal/sweep"
)

// Options configures a Harness. Zero values select the defaults.
type Options struct {
	// Outcomes are rendered in order for every scenario.
	// Defaults to sweep.DefaultOutcomes().
	Outcomes []sweep.Outcome

	// Renderer defaults to report.TextRenderer.
	Renderer report.Renderer

	// Out receives the rendered tables. Defaults to io.Discard.
	Out io.Writer

	Logger *slog.Logger

	// RunIDs defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
}

// Harness runs scenarios through an assembler and renders the results.
type Harness struct {
	assembler *sweep.Assembler
	outcomes  []sweep.Outcome
	renderer  report.Renderer
	out       io.Writer
	logger    *slog.Logger
	runIDs    RunIDGenerator
}

// New creates a Harness around asm.
func New(asm *sweep.Assembler, opts Options) *Harness {
	h := &Harness{
		assembler: asm,
		outcomes:  opts.Outcomes,
		renderer:  opts.Renderer,
		out:       opts.Out,
		logger:    opts.Logger,
		runIDs:    opts.RunIDs,
	}
	if len(h.outcomes) == 0 {
		h.outcomes = sweep.DefaultOutcomes()
	}
	if h.renderer == nil {
		h.renderer = report.TextRenderer{}
	}
	if h.out == nil {
		h.out = io.Discard
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.runIDs == nil {
		h.runIDs = UUIDv7Generator{}
	}
	return h
}

// Summary describes a completed run.
type Summary struct {
	RunID string

	// Scenarios is the number of scenarios rendered.
	Scenarios int

	// Tables is the number of tables written.
	Tables int

	// Invocations is the number of simulated cells.
	Invocations int

	// FailedCells counts cells marked as failed under sweep.MarkFailures.
	FailedCells int

	Duration time.Duration
}

// Run validates scenarios, then sweeps and renders each one in order.
//
// Scenario validation happens up front: an inconsistent list fails before
// any simulator is launched.
func (h *Harness) Run(ctx context.Context, scenarios []sweep.Scenario) (*Summary, error) {
	if err := sweep.ValidateScenarios(scenarios); err != nil {
		return nil, err
	}

	start := time.Now()
	summary := &Summary{RunID: h.runIDs.Generate()}
	logger := h.logger.With("run_id", summary.RunID)
	logger.Info("run starting", "scenarios", len(scenarios), "outcomes", len(h.outcomes))

	for i, sc := range scenarios {
		logger.Info("scenario starting",
			"index", i,
			"scenario", sc.Label(),
			"players", sc.PlayerCount,
			"cells", sc.ValidCells(),
		)

		sw, err := h.assembler.Sweep(ctx, sc)
		if err != nil {
			logger.Error("scenario failed", "scenario", sc.Label(), "error", err)
			return summary, fmt.Errorf("scenario %d (%s): %w", i, sc.Label(), err)
		}

		tables, err := h.renderScenario(sw)
		if err != nil {
			return summary, fmt.Errorf("scenario %d (%s): %w", i, sc.Label(), err)
		}

		failed := len(sw.Failures())
		summary.Scenarios++
		summary.Tables += tables
		summary.Invocations += sc.ValidCells()
		summary.FailedCells += failed
		logger.Info("scenario complete", "scenario", sc.Label(), "tables", tables, "failed_cells", failed)
	}

	summary.Duration = time.Since(start)
	logger.Info("run complete",
		"scenarios", summary.Scenarios,
		"tables", summary.Tables,
		"invocations", summary.Invocations,
		"duration", summary.Duration,
	)
	return summary, nil
}

// renderScenario renders every outcome of sw into a buffer and writes it in
// one piece, so a failing outcome leaves no partial scenario in the output.
func (h *Harness) renderScenario(sw *sweep.Sweep) (int, error) {
	var buf bytes.Buffer
	for _, o := range h.outcomes {
		m, err := sw.Matrix(o)
		if err != nil {
			return 0, fmt.Errorf("outcome %s: %w", o.Key, err)
		}
		table := report.Table{
			Scenario:    sw.Scenario.Label(),
			PlayerCount: sw.Scenario.PlayerCount,
			Outcome:     o.Key,
			Title:       o.Title,
			Matrix:      m,
		}
		if err := h.renderer.Render(&buf, table); err != nil {
			return 0, fmt.Errorf("render %s: %w", o.Key, err)
		}
	}
	if _, err := h.out.Write(buf.Bytes()); err != nil {
		return 0, fmt.Errorf("write report: %w", err)
	}
	return len(h.outcomes), nil
}
