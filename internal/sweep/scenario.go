package sweep

import (
	"fmt"
)

// Bounds accepted by the simulator.
const (
	MinPlayers       = 1
	MaxPlayers       = 5
	MaxReachDistance = 20
)

// Scenario is one player count and the maxima of its reach-distance grid.
type Scenario struct {
	// Name is an optional label used in logs.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	PlayerCount int `yaml:"player_count" json:"player_count"`

	// NormalMax is the largest reach distance (normal), r.
	NormalMax int `yaml:"normal_max" json:"normal_max"`

	// EndgameMax is the largest reach distance (endgame), e.
	EndgameMax int `yaml:"endgame_max" json:"endgame_max"`
}

// DefaultScenarios returns the five built-in scenarios, one per player count.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{PlayerCount: 1, NormalMax: 3, EndgameMax: 4},
		{PlayerCount: 2, NormalMax: 6, EndgameMax: 13},
		{PlayerCount: 3, NormalMax: 6, EndgameMax: 13},
		{PlayerCount: 4, NormalMax: 6, EndgameMax: 13},
		{PlayerCount: 5, NormalMax: 6, EndgameMax: 13},
	}
}

// Label returns Name, or a description derived from the parameters.
func (s Scenario) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%dp r<=%d e<=%d", s.PlayerCount, s.NormalMax, s.EndgameMax)
}

// Rows is the number of matrix rows (normal reach distances).
func (s Scenario) Rows() int {
	return s.NormalMax + 1
}

// Columns is the number of matrix columns (endgame reach distances).
func (s Scenario) Columns() int {
	return s.EndgameMax + 1
}

// ValidCells counts the cells that will be simulated.
func (s Scenario) ValidCells() int {
	n := 0
	for _, row := range Enumerate(s.NormalMax, s.EndgameMax) {
		n += len(row.Valid)
	}
	return n
}

// Validate checks a scenario against the simulator's bounds and the
// normal_max <= endgame_max invariant.
func (s Scenario) Validate() error {
	if s.PlayerCount < MinPlayers || s.PlayerCount > MaxPlayers {
		return &ConfigError{Index: -1, Field: "player_count", Message: fmt.Sprintf("must be in [%d, %d], got %d", MinPlayers, MaxPlayers, s.PlayerCount)}
	}
	if s.NormalMax < 0 || s.NormalMax > MaxReachDistance {
		return &ConfigError{Index: -1, Field: "normal_max", Message: fmt.Sprintf("must be in [0, %d], got %d", MaxReachDistance, s.NormalMax)}
	}
	if s.EndgameMax < 0 || s.EndgameMax > MaxReachDistance {
		return &ConfigError{Index: -1, Field: "endgame_max", Message: fmt.Sprintf("must be in [0, %d], got %d", MaxReachDistance, s.EndgameMax)}
	}
	if s.NormalMax > s.EndgameMax {
		return &ConfigError{Index: -1, Field: "normal_max", Message: fmt.Sprintf("must not exceed endgame_max (%d > %d)", s.NormalMax, s.EndgameMax)}
	}
	return nil
}

// ValidateScenarios validates every scenario and rejects an empty list.
func ValidateScenarios(scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return &ConfigError{Index: -1, Field: "scenarios", Message: "list is required and must be non-empty"}
	}
	for i, s := range scenarios {
		if err := s.Validate(); err != nil {
			ce := err.(*ConfigError)
			ce.Index = i
			return ce
		}
	}
	return nil
}
