package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/gamesweep/internal/simulator"
	"github.com/roach88/gamesweep/internal/sweep"
)

// CellOptions holds flags for the cell command.
type CellOptions struct {
	*RootOptions
	Simulator string
	Trials    int
	Players   int
	Normal    int
	Endgame   int
	Timeout   time.Duration

	// Client overrides the simulator client (for testing).
	Client simulator.Client
}

// CellResult is the cell command's payload.
type CellResult struct {
	PlayerCount int                `json:"player_count"`
	Normal      int                `json:"normal"`
	Endgame     int                `json:"endgame"`
	Trials      int                `json:"trials"`
	Fields      map[string]float64 `json:"fields"`
}

// Text renders the result as one "field: value" line per statistic.
func (c CellResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "players=%d r=%d e=%d trials=%d\n", c.PlayerCount, c.Normal, c.Endgame, c.Trials)

	names := make([]string, 0, len(c.Fields))
	for name := range c.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, sweep.FormatValue(c.Fields[name]))
	}
	return b.String()
}

// NewCellCommand creates the cell command.
func NewCellCommand(rootOpts *RootOptions) *cobra.Command {
	return newCellCommand(&CellOptions{RootOptions: rootOpts})
}

func newCellCommand(opts *CellOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cell",
		Short: "Simulate a single grid cell",
		Long: `Run the simulator once for one (players, normal, endgame) cell and print
every statistic it reports.

Example:
  gamesweep cell --players 2 -r 1 -e 4
  gamesweep cell --players 1 -r 0 -e 0 --trials 100 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCellCommand(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Simulator, "simulator", simulator.DefaultPath, "path to the thegameanalyzer executable")
	cmd.Flags().IntVarP(&opts.Trials, "trials", "t", simulator.DefaultTrials, "simulated games (2-10000)")
	cmd.Flags().IntVarP(&opts.Players, "players", "n", 1, "number of players (1-5)")
	cmd.Flags().IntVarP(&opts.Normal, "normal", "r", 0, "reach distance (normal)")
	cmd.Flags().IntVarP(&opts.Endgame, "endgame", "e", 0, "reach distance (endgame)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "invocation timeout (0 disables)")

	return cmd
}

func runCellCommand(opts *CellOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	sc := sweep.Scenario{PlayerCount: opts.Players, NormalMax: opts.Normal, EndgameMax: opts.Endgame}
	if err := sc.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid cell", err)
	}
	if err := simulator.ValidateTrials(opts.Trials); err != nil {
		return WrapExitError(ExitCommandError, "invalid --trials", err)
	}

	client := opts.Client
	if client == nil {
		client = simulator.NewExecClient(opts.Simulator, opts.Timeout, logger)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	trial := simulator.Trial{
		PlayerCount: opts.Players,
		Normal:      opts.Normal,
		Endgame:     opts.Endgame,
		Trials:      opts.Trials,
	}
	res, err := client.RunTrial(ctx, trial)
	if err != nil {
		return WrapExitError(ExitFailure, "simulation failed", err)
	}

	fields := make(map[string]float64, len(res.Fields)+2)
	for k, v := range res.Fields {
		fields[k] = v
	}
	fields[simulator.FieldExcellentPercent] = res.ExcellentPercent
	fields[simulator.FieldBeatTheGamePercent] = res.BeatTheGamePercent

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Success(CellResult{
		PlayerCount: trial.PlayerCount,
		Normal:      trial.Normal,
		Endgame:     trial.Endgame,
		Trials:      trial.Trials,
		Fields:      fields,
	})
}
