package simulator

import (
	"context"
	"fmt"
)

// Trial bounds for aggregate runs. A count of 1 makes the simulator print a
// single game instead of the statistics record.
const (
	MinTrials     = 2
	MaxTrials     = 10_000
	DefaultTrials = MaxTrials
)

// Field names in the simulator's output record.
const (
	FieldExcellentPercent   = "excellent_percent"
	FieldBeatTheGamePercent = "beat_the_game_percent"
	FieldCardsLeftAverage   = "cards_left_average"
	FieldCardsLeftStddev    = "cards_left_stddev"
)

// RequiredFields must be present in every simulator response.
var RequiredFields = []string{FieldExcellentPercent, FieldBeatTheGamePercent}

// Client runs one simulator invocation per call.
//
// Implementations must not re-validate the reach distances: the grid
// enumerator only hands out valid cells.
type Client interface {
	RunTrial(ctx context.Context, t Trial) (Result, error)
}

// Trial is the parameter tuple for one simulator invocation.
type Trial struct {
	PlayerCount int
	Normal      int // reach distance (normal)
	Endgame     int // reach distance (endgame)
	Trials      int
}

func (t Trial) String() string {
	return fmt.Sprintf("players=%d r=%d e=%d trials=%d", t.PlayerCount, t.Normal, t.Endgame, t.Trials)
}

// Result holds the aggregate statistics for one Trial.
type Result struct {
	ExcellentPercent   float64
	BeatTheGamePercent float64

	// Fields contains every numeric field the simulator reported,
	// including the two above. May be nil for results built in code.
	Fields map[string]float64
}

// Field returns a named statistic.
// The two required percentages are always available.
func (r Result) Field(name string) (float64, bool) {
	switch name {
	case FieldExcellentPercent:
		return r.ExcellentPercent, true
	case FieldBeatTheGamePercent:
		return r.BeatTheGamePercent, true
	}
	v, ok := r.Fields[name]
	return v, ok
}

// ValidateTrials checks a trial count against the simulator's bounds.
func ValidateTrials(n int) error {
	if n < MinTrials || n > MaxTrials {
		return fmt.Errorf("trial count %d out of range [%d, %d]", n, MinTrials, MaxTrials)
	}
	return nil
}
