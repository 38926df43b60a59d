// Package sweep enumerates the reach-distance grid of a scenario and
// assembles outcome matrices from simulator results.
//
// A cell (r, e) is valid iff e >= r. Valid cells are sent to the simulator
// exactly once per sweep; invalid cells are never simulated and render as a
// single blank. Every matrix has NormalMax+1 rows of EndgameMax+1 cells,
// indexed [r][e].
//
// A Sweep holds the raw results of one scenario. Matrices for each outcome
// (excellent, beat the game, ...) are cut from the same Sweep, so adding an
// outcome never adds simulator invocations.
package sweep
