// Package simulator invokes the external card game simulator and parses its
// aggregate statistics.
//
// The simulator is an opaque process. Each call to Client.RunTrial launches it
// once for a (players, normal reach, endgame reach, trials) tuple and blocks
// until it exits. Its standard output is a single structured record:
//
//	{ excellent_percent: 42.37, beat_the_game_percent: 3.1, cards_left_average: 15.2, cards_left_stddev: 8.1}
//
// Keys may be bare (the simulator's native output) or quoted JSON. Both forms
// are YAML flow mappings and are decoded with gopkg.in/yaml.v3.
//
// # Failure Handling
//
// Every failure is returned as a *Error with a Code:
//   - START_FAILED: the process could not be started
//   - EXIT_STATUS: the process exited non-zero (stderr is captured)
//   - TIMEOUT: the per-invocation timeout elapsed
//   - MALFORMED_OUTPUT: stdout is not a structured record, or a field is not numeric
//   - MISSING_FIELD: a required field is absent
//
// Nothing is retried. Callers decide whether a failure aborts the sweep.
package simulator
