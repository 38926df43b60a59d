package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gamesweep CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gamesweep",
		Short: "gamesweep - reach distance sweeps for The Game",
		Long: `Measure how winnable The Game is across reach distance thresholds.

gamesweep runs the thegameanalyzer simulator over a grid of normal and
endgame reach distances for each player count, and prints one table per
outcome: the excellent game percentage and the beat the game percentage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewScenariosCommand(opts))
	cmd.AddCommand(NewCellCommand(opts))

	return cmd
}

// newLogger builds the diagnostic logger. Logs always go to w (stderr),
// never to the report stream.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the CLI with args and returns the process exit code.
//
// Errors are reported in the --format the user asked for. With --format json
// the CLIResponse error envelope goes to stdout, after any report lines, so a
// JSON consumer reads one stream. Text errors go to stderr and the report
// stream stays clean.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	// Flags that failed to parse leave the default "text".
	format, _ := cmd.PersistentFlags().GetString("format")
	f := &OutputFormatter{Format: format, Writer: stderr}
	if format == "json" {
		f.Writer = stdout
	}
	if werr := f.Error(err); werr != nil {
		fmt.Fprintf(stderr, "Error [%s]: %v (writing error output: %v)\n", ErrorCode(err), err, werr)
	}
	return GetExitCode(err)
}
