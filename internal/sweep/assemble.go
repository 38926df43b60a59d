package sweep

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/gamesweep/internal/simulator"
)

// FailurePolicy controls what a failed cell does to its sweep.
type FailurePolicy int

const (
	// FailFast aborts the sweep on the first failing cell.
	FailFast FailurePolicy = iota

	// MarkFailures records the error, renders the cell as FailureMarker,
	// and keeps sweeping.
	MarkFailures
)

// Assembler runs the simulator over a scenario's grid.
type Assembler struct {
	Client simulator.Client

	// Trials is passed to every invocation.
	Trials int

	// Workers bounds concurrent invocations. Values below 2 run sequentially.
	Workers int

	Policy FailurePolicy
	Logger *slog.Logger
}

// NewAssembler creates a sequential, fail-fast assembler.
func NewAssembler(client simulator.Client, trials int, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		Client:  client,
		Trials:  trials,
		Workers: 1,
		Policy:  FailFast,
		Logger:  logger,
	}
}

// Cell is the outcome of simulating one valid grid cell.
type Cell struct {
	R, E   int
	Result simulator.Result

	// Err is set only under MarkFailures.
	Err error
}

// Sweep holds every simulated cell of one scenario.
type Sweep struct {
	Scenario Scenario

	// cells is indexed [r][e]; invalid cells stay nil.
	cells [][]*Cell
}

func newSweep(sc Scenario) *Sweep {
	cells := make([][]*Cell, sc.Rows())
	for r := range cells {
		cells[r] = make([]*Cell, sc.Columns())
	}
	return &Sweep{Scenario: sc, cells: cells}
}

// Cell returns the simulated cell at (r, e), if any.
func (s *Sweep) Cell(r, e int) (*Cell, bool) {
	if r < 0 || r >= len(s.cells) || e < 0 || e >= len(s.cells[r]) {
		return nil, false
	}
	c := s.cells[r][e]
	return c, c != nil
}

// Failures returns the cells that failed under MarkFailures, in grid order.
func (s *Sweep) Failures() []Cell {
	var failed []Cell
	for _, row := range s.cells {
		for _, c := range row {
			if c != nil && c.Err != nil {
				failed = append(failed, *c)
			}
		}
	}
	return failed
}

// Matrix renders the sweep for one outcome.
//
// Each row r carries Leading blanks followed by one value per valid e.
// A successful cell without the outcome's field is a MISSING_FIELD error.
func (s *Sweep) Matrix(o Outcome) (Matrix, error) {
	sc := s.Scenario
	m := make(Matrix, 0, sc.Rows())
	for _, row := range Enumerate(sc.NormalMax, sc.EndgameMax) {
		values := make([]string, 0, sc.Columns())
		for i := 0; i < row.Leading; i++ {
			values = append(values, Blank)
		}
		for _, e := range row.Valid {
			c := s.cells[row.R][e]
			switch {
			case c == nil:
				return nil, fmt.Errorf("scenario %s cell (r=%d, e=%d) was not simulated", sc.Label(), row.R, e)
			case c.Err != nil:
				values = append(values, FailureMarker)
			default:
				v, ok := o.Select(c.Result)
				if !ok {
					return nil, &CellError{Scenario: sc, R: row.R, E: e, Err: simulator.NewMissingFieldError(o.Field)}
				}
				values = append(values, FormatValue(v))
			}
		}
		for len(values) < sc.Columns() {
			values = append(values, Blank)
		}
		m = append(m, values)
	}
	return m, nil
}

type cellRef struct {
	r, e int
}

// Sweep simulates every valid cell of sc.
//
// Cells are visited in increasing r, then increasing e. With Workers > 1 they
// are dispatched to a bounded pool; results are stored by index, so the
// resulting Sweep does not depend on completion order.
func (a *Assembler) Sweep(ctx context.Context, sc Scenario) (*Sweep, error) {
	sw := newSweep(sc)

	var refs []cellRef
	for _, row := range Enumerate(sc.NormalMax, sc.EndgameMax) {
		for _, e := range row.Valid {
			refs = append(refs, cellRef{r: row.R, e: e})
		}
	}

	a.logger().Debug("sweep starting", "scenario", sc.Label(), "cells", len(refs), "workers", a.Workers)

	if a.Workers < 2 {
		for _, ref := range refs {
			if err := a.runCell(ctx, sw, ref); err != nil {
				return nil, err
			}
		}
		return sw, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Workers)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			return a.runCell(gctx, sw, ref)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sw, nil
}

// Build sweeps sc and renders one outcome.
func (a *Assembler) Build(ctx context.Context, sc Scenario, o Outcome) (Matrix, error) {
	sw, err := a.Sweep(ctx, sc)
	if err != nil {
		return nil, err
	}
	return sw.Matrix(o)
}

// runCell simulates one cell and stores it in sw. Each call writes a
// distinct slot, so concurrent calls need no locking.
func (a *Assembler) runCell(ctx context.Context, sw *Sweep, ref cellRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	trial := simulator.Trial{
		PlayerCount: sw.Scenario.PlayerCount,
		Normal:      ref.r,
		Endgame:     ref.e,
		Trials:      a.Trials,
	}
	a.logger().Debug("simulating cell", "scenario", sw.Scenario.Label(), "r", ref.r, "e", ref.e)

	res, err := a.Client.RunTrial(ctx, trial)
	if err != nil {
		if a.Policy == MarkFailures && ctx.Err() == nil {
			a.logger().Warn("cell failed", "scenario", sw.Scenario.Label(), "r", ref.r, "e", ref.e, "error", err)
			sw.cells[ref.r][ref.e] = &Cell{R: ref.r, E: ref.e, Err: err}
			return nil
		}
		return &CellError{Scenario: sw.Scenario, R: ref.r, E: ref.e, Err: err}
	}

	sw.cells[ref.r][ref.e] = &Cell{R: ref.r, E: ref.e, Result: res}
	return nil
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}
