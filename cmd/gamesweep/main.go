// Command gamesweep sweeps The Game's reach distance thresholds through the
// thegameanalyzer simulator and prints the resulting win-rate tables.
package main

import (
	"context"
	"os"

	"github.com/roach88/gamesweep/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
