package testutil

import (
	"context"
	"sync"

	"github.com/roach88/gamesweep/internal/simulator"
)

// StubSimulator is a deterministic in-process simulator.Client.
//
// It records every Trial it receives so tests can assert on invocation
// counts and parameters without launching processes.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type StubSimulator struct {
	mu    sync.Mutex
	calls []simulator.Trial
	fn    func(simulator.Trial) (simulator.Result, error)
}

// NewStubSimulator creates a stub answering every trial with fn.
// A nil fn uses PureResult.
func NewStubSimulator(fn func(simulator.Trial) (simulator.Result, error)) *StubSimulator {
	if fn == nil {
		fn = func(t simulator.Trial) (simulator.Result, error) {
			return PureResult(t), nil
		}
	}
	return &StubSimulator{fn: fn}
}

// ConstantSimulator answers every trial with the same percentages.
func ConstantSimulator(excellent, beatTheGame float64) *StubSimulator {
	return NewStubSimulator(func(simulator.Trial) (simulator.Result, error) {
		return simulator.Result{ExcellentPercent: excellent, BeatTheGamePercent: beatTheGame}, nil
	})
}

// RunTrial records t and returns the stub's answer.
// Implements simulator.Client.
func (s *StubSimulator) RunTrial(ctx context.Context, t simulator.Trial) (simulator.Result, error) {
	s.mu.Lock()
	s.calls = append(s.calls, t)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return simulator.Result{}, err
	}
	return s.fn(t)
}

// Calls returns a copy of the recorded trials in arrival order.
func (s *StubSimulator) Calls() []simulator.Trial {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]simulator.Trial, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns the number of recorded trials.
func (s *StubSimulator) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Reset forgets all recorded trials.
func (s *StubSimulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// PureResult is a pure function of the trial parameters, used as the
// stub's default answer and as the source of the golden reports.
//
//	excellent     = (10e + r) / 2 + (players - 1)
//	beat the game = (e - r) * 1.25
//	cards left    = players + r, stddev 0.5
func PureResult(t simulator.Trial) simulator.Result {
	excellent := float64(10*t.Endgame+t.Normal)/2 + float64(t.PlayerCount-1)
	beat := float64(t.Endgame-t.Normal) * 1.25
	return simulator.Result{
		ExcellentPercent:   excellent,
		BeatTheGamePercent: beat,
		Fields: map[string]float64{
			simulator.FieldExcellentPercent:   excellent,
			simulator.FieldBeatTheGamePercent: beat,
			simulator.FieldCardsLeftAverage:   float64(t.PlayerCount + t.Normal),
			simulator.FieldCardsLeftStddev:    0.5,
		},
	}
}
