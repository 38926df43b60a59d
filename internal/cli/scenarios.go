package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gamesweep/internal/sweep"
)

// ScenariosOptions holds flags for the scenarios command.
type ScenariosOptions struct {
	*RootOptions
	ScenariosFile string
}

// ScenarioInfo describes one scenario and the size of its sweep.
type ScenarioInfo struct {
	Index       int    `json:"index"`
	Name        string `json:"name,omitempty"`
	PlayerCount int    `json:"player_count"`
	NormalMax   int    `json:"normal_max"`
	EndgameMax  int    `json:"endgame_max"`
	Cells       int    `json:"cells"`
	ValidCells  int    `json:"valid_cells"`
}

// ScenarioList is the scenarios command's payload.
type ScenarioList struct {
	Scenarios   []ScenarioInfo `json:"scenarios"`
	Invocations int            `json:"invocations"`
}

// Text renders the list as a table.
func (l ScenarioList) Text() string {
	var b strings.Builder
	b.WriteString("| # | players | normal max | endgame max | cells | simulated |\n")
	for _, s := range l.Scenarios {
		fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d |\n",
			s.Index, s.PlayerCount, s.NormalMax, s.EndgameMax, s.Cells, s.ValidCells)
	}
	fmt.Fprintf(&b, "\n%d simulator invocations per run\n", l.Invocations)
	return b.String()
}

// NewScenariosCommand creates the scenarios command.
func NewScenariosCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScenariosOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List and validate the scenarios a run would sweep",
		Long: `List the effective scenarios and how many simulator invocations each needs.

The scenario file is validated exactly as "gamesweep run" would validate it,
without launching the simulator.

Example:
  gamesweep scenarios
  gamesweep scenarios --scenarios sweeps.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listScenarios(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ScenariosFile, "scenarios", "", "scenario file (.yaml, .yml or .cue); defaults to the built-in scenarios")

	return cmd
}

func listScenarios(opts *ScenariosOptions, cmd *cobra.Command) error {
	scenarios, err := resolveScenarios(opts.ScenariosFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenarios", err)
	}
	if err := sweep.ValidateScenarios(scenarios); err != nil {
		return WrapExitError(ExitCommandError, "invalid scenarios", err)
	}

	list := ScenarioList{Scenarios: make([]ScenarioInfo, 0, len(scenarios))}
	for i, s := range scenarios {
		info := ScenarioInfo{
			Index:       i,
			Name:        s.Name,
			PlayerCount: s.PlayerCount,
			NormalMax:   s.NormalMax,
			EndgameMax:  s.EndgameMax,
			Cells:       s.Rows() * s.Columns(),
			ValidCells:  s.ValidCells(),
		}
		list.Scenarios = append(list.Scenarios, info)
		list.Invocations += info.ValidCells
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Success(list)
}
