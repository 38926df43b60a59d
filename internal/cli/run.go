package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/gamesweep/internal/harness"
	"github.com/roach88/gamesweep/internal/report"
	"github.com/roach88/gamesweep/internal/simulator"
	"github.com/roach88/gamesweep/internal/sweep"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Simulator     string
	Trials        int
	ScenariosFile string
	Outcomes      []string
	Workers       int
	Timeout       time.Duration
	MarkFailures  bool

	// Client overrides the simulator client (for testing).
	// If nil, an ExecClient for Simulator is used.
	Client simulator.Client

	// RunIDs overrides the run ID generator (for testing).
	RunIDs harness.RunIDGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sweep the reach distance grid and print the tables",
		Long: `Sweep every scenario's reach distance grid and print one table per outcome.

Each valid cell (endgame reach distance >= normal reach distance) is sent to
the simulator exactly once. Any simulator failure aborts the run unless
--mark-failures is set.

Without --scenarios the five built-in scenarios are used:
  1 player   normal 0..3  endgame 0..4
  2-5 players normal 0..6  endgame 0..13

Example:
  gamesweep run --simulator ./thegameanalyzer
  gamesweep run --scenarios sweeps.cue --outcomes excellent,cards-left-average
  gamesweep run --workers 4 --timeout 2m --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Simulator, "simulator", simulator.DefaultPath, "path to the thegameanalyzer executable")
	cmd.Flags().IntVarP(&opts.Trials, "trials", "t", simulator.DefaultTrials, "simulated games per cell (2-10000)")
	cmd.Flags().StringVar(&opts.ScenariosFile, "scenarios", "", "scenario file (.yaml, .yml or .cue); defaults to the built-in scenarios")
	cmd.Flags().StringSliceVar(&opts.Outcomes, "outcomes", nil, "outcomes to render, in order (default excellent,beat-the-game)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "concurrent simulator invocations per scenario")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "per-invocation timeout (0 disables)")
	cmd.Flags().BoolVar(&opts.MarkFailures, "mark-failures", false, "render failed cells as ERR instead of aborting")

	return cmd
}

func runSweep(opts *RunOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	scenarios, err := resolveScenarios(opts.ScenariosFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenarios", err)
	}
	if err := simulator.ValidateTrials(opts.Trials); err != nil {
		return WrapExitError(ExitCommandError, "invalid --trials", err)
	}
	if opts.Workers < 1 {
		return NewExitError(ExitCommandError, "invalid --workers: must be at least 1")
	}
	if opts.Timeout < 0 {
		return NewExitError(ExitCommandError, "invalid --timeout: must not be negative")
	}
	outcomes, err := sweep.ParseOutcomes(opts.Outcomes)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --outcomes", err)
	}
	renderer, err := report.NewRenderer(opts.Format)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --format", err)
	}

	client := opts.Client
	if client == nil {
		client = simulator.NewExecClient(opts.Simulator, opts.Timeout, logger)
	}

	asm := sweep.NewAssembler(client, opts.Trials, logger)
	asm.Workers = opts.Workers
	if opts.MarkFailures {
		asm.Policy = sweep.MarkFailures
	}

	h := harness.New(asm, harness.Options{
		Outcomes: outcomes,
		Renderer: renderer,
		Out:      cmd.OutOrStdout(),
		Logger:   logger,
		RunIDs:   opts.RunIDs,
	})

	ctx, stop := signalContext(cmd)
	defer stop()

	summary, err := h.Run(ctx, scenarios)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return WrapExitError(ExitFailure, "sweep interrupted", err)
		}
		if sweep.IsConfigError(err) {
			return WrapExitError(ExitCommandError, "invalid scenarios", err)
		}
		return WrapExitError(ExitFailure, "sweep failed", err)
	}

	if summary.FailedCells > 0 {
		logger.Warn("sweep finished with failed cells", "run_id", summary.RunID, "failed_cells", summary.FailedCells)
	}
	return nil
}

// resolveScenarios loads path, or returns the built-in scenarios when empty.
func resolveScenarios(path string) ([]sweep.Scenario, error) {
	if path == "" {
		return sweep.DefaultScenarios(), nil
	}
	return sweep.LoadScenarios(path)
}

// signalContext derives a context cancelled on SIGINT/SIGTERM.
// Uses the command's context if available (for testing).
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
