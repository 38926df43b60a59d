package sweep

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/gamesweep/internal/simulator"
)

// Outcome selects one statistic from each simulator result.
type Outcome struct {
	// Key identifies the outcome on the command line.
	Key string

	// Title is printed in the table heading.
	Title string

	// Field is the simulator output field read by Select.
	Field string
}

// Select returns the outcome's value from res.
func (o Outcome) Select(res simulator.Result) (float64, bool) {
	return res.Field(o.Field)
}

// Built-in outcomes.
var (
	Excellent = Outcome{
		Key:   "excellent",
		Title: "excellent game percentage (less than 10 cards remaining)",
		Field: simulator.FieldExcellentPercent,
	}
	BeatTheGame = Outcome{
		Key:   "beat-the-game",
		Title: "beat the game percentage (0 cards remaining)",
		Field: simulator.FieldBeatTheGamePercent,
	}
	CardsLeftAverage = Outcome{
		Key:   "cards-left-average",
		Title: "average number of cards remaining",
		Field: simulator.FieldCardsLeftAverage,
	}
	CardsLeftStddev = Outcome{
		Key:   "cards-left-stddev",
		Title: "standard deviation of cards remaining",
		Field: simulator.FieldCardsLeftStddev,
	}
)

var outcomes = map[string]Outcome{
	Excellent.Key:        Excellent,
	BeatTheGame.Key:      BeatTheGame,
	CardsLeftAverage.Key: CardsLeftAverage,
	CardsLeftStddev.Key:  CardsLeftStddev,
}

// DefaultOutcomes are rendered for every scenario unless overridden:
// excellent first, then beat the game.
func DefaultOutcomes() []Outcome {
	return []Outcome{Excellent, BeatTheGame}
}

// OutcomeKeys lists the known outcome keys, sorted.
func OutcomeKeys() []string {
	keys := make([]string, 0, len(outcomes))
	for k := range outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseOutcomes resolves outcome keys, preserving order.
// An empty list yields DefaultOutcomes.
func ParseOutcomes(keys []string) ([]Outcome, error) {
	if len(keys) == 0 {
		return DefaultOutcomes(), nil
	}
	seen := make(map[string]bool, len(keys))
	result := make([]Outcome, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		o, ok := outcomes[k]
		if !ok {
			return nil, &ConfigError{Index: -1, Field: "outcomes", Message: fmt.Sprintf("unknown outcome %q: must be one of %v", k, OutcomeKeys())}
		}
		if seen[k] {
			return nil, &ConfigError{Index: -1, Field: "outcomes", Message: fmt.Sprintf("duplicate outcome %q", k)}
		}
		seen[k] = true
		result = append(result, o)
	}
	return result, nil
}
