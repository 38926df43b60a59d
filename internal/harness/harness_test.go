package harness

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gamesweep/internal/report"
	"github.com/roach88/gamesweep/internal/simulator"
	"github.com/roach88/gamesweep/internal/sweep"
	"github.com/roach88/gamesweep/internal/testutil"
)

const testTrials = 10000

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runHarness runs scenarios against sim and returns the rendered report.
func runHarness(t *testing.T, sim simulator.Client, scenarios []sweep.Scenario, opts Options) (string, *Summary, error) {
	t.Helper()
	var out bytes.Buffer
	opts.Out = &out
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	if opts.RunIDs == nil {
		opts.RunIDs = testutil.NewFixedRunIDGenerator("run-test")
	}
	asm := sweep.NewAssembler(sim, testTrials, opts.Logger)
	summary, err := New(asm, opts).Run(context.Background(), scenarios)
	return out.String(), summary, err
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRun_DefaultScenariosGolden(t *testing.T) {
	out, summary, err := runHarness(t, testutil.NewStubSimulator(nil), sweep.DefaultScenarios(), Options{})
	require.NoError(t, err)

	golden(t).Assert(t, "default_text", []byte(out))

	assert.Equal(t, "run-test", summary.RunID)
	assert.Equal(t, 5, summary.Scenarios)
	assert.Equal(t, 10, summary.Tables)
	// 14 cells for one player, 77 for each of the four 6x13 grids.
	assert.Equal(t, 14+4*77, summary.Invocations)
	assert.Zero(t, summary.FailedCells)
}

func TestRun_DefaultScenariosJSONGolden(t *testing.T) {
	out, _, err := runHarness(t, testutil.NewStubSimulator(nil), sweep.DefaultScenarios(), Options{Renderer: report.JSONRenderer{}})
	require.NoError(t, err)

	golden(t).Assert(t, "default_json", []byte(out))
}

func TestRun_Idempotent(t *testing.T) {
	first, _, err := runHarness(t, testutil.NewStubSimulator(nil), sweep.DefaultScenarios(), Options{})
	require.NoError(t, err)
	second, _, err := runHarness(t, testutil.NewStubSimulator(nil), sweep.DefaultScenarios(), Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_ConcurrentWorkersSameOutput(t *testing.T) {
	want, _, err := runHarness(t, testutil.NewStubSimulator(nil), sweep.DefaultScenarios(), Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	asm := sweep.NewAssembler(testutil.NewStubSimulator(nil), testTrials, quietLogger())
	asm.Workers = 6
	h := New(asm, Options{Out: &out, Logger: quietLogger(), RunIDs: testutil.NewFixedRunIDGenerator()})
	_, err = h.Run(context.Background(), sweep.DefaultScenarios())
	require.NoError(t, err)

	assert.Equal(t, want, out.String())
}

func TestRun_OutcomeOrder(t *testing.T) {
	scenarios := []sweep.Scenario{{PlayerCount: 1, NormalMax: 1, EndgameMax: 1}}
	out, _, err := runHarness(t, testutil.NewStubSimulator(nil), scenarios, Options{
		Outcomes: []sweep.Outcome{sweep.BeatTheGame, sweep.CardsLeftAverage, sweep.Excellent},
	})
	require.NoError(t, err)

	beat := strings.Index(out, sweep.BeatTheGame.Title)
	avg := strings.Index(out, sweep.CardsLeftAverage.Title)
	exc := strings.Index(out, sweep.Excellent.Title)
	require.True(t, beat >= 0 && avg >= 0 && exc >= 0)
	assert.Less(t, beat, avg)
	assert.Less(t, avg, exc)
}

func TestRun_FailureAbortsBeforeRendering(t *testing.T) {
	stub := testutil.NewStubSimulator(func(tr simulator.Trial) (simulator.Result, error) {
		if tr.PlayerCount == 3 && tr.Normal == 4 && tr.Endgame == 9 {
			return simulator.Result{}, &simulator.Error{Code: simulator.CodeMalformedOutput, Message: "not a record"}
		}
		return testutil.PureResult(tr), nil
	})

	out, summary, err := runHarness(t, stub, sweep.DefaultScenarios(), Options{})
	require.Error(t, err)
	assert.True(t, simulator.IsResponseError(err))
	assert.Contains(t, err.Error(), "scenario 2")
	assert.Contains(t, err.Error(), "r=4, e=9")

	// Scenarios 1 and 2 were rendered; nothing of scenario 3 or later.
	assert.Contains(t, out, "## 2 players:")
	assert.NotContains(t, out, "## 3 players:")
	assert.NotContains(t, out, "## 4 players:")
	assert.Equal(t, 2, summary.Scenarios)

	for _, c := range stub.Calls() {
		assert.LessOrEqual(t, c.PlayerCount, 3)
	}
}

func TestRun_InvalidScenarioFailsBeforeInvocation(t *testing.T) {
	stub := testutil.NewStubSimulator(nil)
	scenarios := sweep.DefaultScenarios()
	scenarios = append(scenarios, sweep.Scenario{PlayerCount: 2, NormalMax: 8, EndgameMax: 3})

	out, summary, err := runHarness(t, stub, scenarios, Options{})
	require.Error(t, err)
	assert.True(t, sweep.IsConfigError(err))
	assert.Nil(t, summary)
	assert.Empty(t, out)
	assert.Zero(t, stub.CallCount())
}

func TestRun_MissingOutcomeFieldRendersNothing(t *testing.T) {
	scenarios := []sweep.Scenario{{PlayerCount: 1, NormalMax: 1, EndgameMax: 2}}
	out, _, err := runHarness(t, testutil.ConstantSimulator(1, 2), scenarios, Options{
		Outcomes: []sweep.Outcome{sweep.Excellent, sweep.CardsLeftStddev},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outcome cards-left-stddev")
	assert.Empty(t, out)
}

func TestRun_MarkFailures(t *testing.T) {
	stub := testutil.NewStubSimulator(func(tr simulator.Trial) (simulator.Result, error) {
		if tr.Normal == 0 && tr.Endgame == 0 {
			return simulator.Result{}, &simulator.Error{Code: simulator.CodeExitStatus, Message: "crashed", ExitCode: 139}
		}
		return simulator.Result{ExcellentPercent: 50, BeatTheGamePercent: 5}, nil
	})

	var out bytes.Buffer
	asm := sweep.NewAssembler(stub, testTrials, quietLogger())
	asm.Policy = sweep.MarkFailures
	h := New(asm, Options{Out: &out, Logger: quietLogger(), RunIDs: testutil.NewFixedRunIDGenerator()})

	summary, err := h.Run(context.Background(), []sweep.Scenario{{PlayerCount: 1, NormalMax: 1, EndgameMax: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FailedCells)

	want := "## 1 player: excellent game percentage (less than 10 cards remaining)\n" +
		"| reach distance (normal) | 0 | 1 |\n" +
		"| reach distance (endgame) | | |\n" +
		"| 0 | ERR |   |\n" +
		"| 1 | 50.0 | 50.0 |\n" +
		"\n" +
		"## 1 player: beat the game percentage (0 cards remaining)\n" +
		"| reach distance (normal) | 0 | 1 |\n" +
		"| reach distance (endgame) | | |\n" +
		"| 0 | ERR |   |\n" +
		"| 1 | 5.0 | 5.0 |\n" +
		"\n"
	assert.Equal(t, want, out.String())
}

func TestRun_LogsCarryRunID(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, _, err := runHarness(t, testutil.NewStubSimulator(nil), []sweep.Scenario{{PlayerCount: 1, NormalMax: 0, EndgameMax: 0}}, Options{
		Logger: logger,
		RunIDs: testutil.NewFixedRunIDGenerator("run-42"),
	})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "run_id=run-42")
	assert.Contains(t, logs.String(), `msg="run complete"`)
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a := gen.Generate()
	b := gen.Generate()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14])
}
