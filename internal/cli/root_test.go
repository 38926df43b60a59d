package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gamesweep", cmd.Use)
	assert.Contains(t, cmd.Long, "reach distances")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "scenarios", "cell"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	tests := map[string]string{
		"simulator":     "./thegameanalyzer",
		"trials":        "10000",
		"scenarios":     "",
		"workers":       "1",
		"timeout":       "0s",
		"mark-failures": "false",
	}
	for name, def := range tests {
		flag := runCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s", name)
		assert.Equal(t, def, flag.DefValue, "flag %s", name)
	}
	assert.Equal(t, "t", runCmd.Flags().Lookup("trials").Shorthand)
}

func TestCellCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	cellCmd, _, err := cmd.Find([]string{"cell"})
	require.NoError(t, err)

	assert.Equal(t, "n", cellCmd.Flags().Lookup("players").Shorthand)
	assert.Equal(t, "r", cellCmd.Flags().Lookup("normal").Shorthand)
	assert.Equal(t, "e", cellCmd.Flags().Lookup("endgame").Shorthand)
}

func TestExecute_InvalidFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"scenarios", "--format", "xml"}, &stdout, &stderr)

	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `invalid format "xml"`)
}

func TestExecute_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"run", "--bogus"}, &stdout, &stderr)

	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr.String(), "unknown flag")
}

func TestExecute_Scenarios(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"scenarios"}, &stdout, &stderr)

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout.String(), "| 0 | 1 | 3 | 4 | 20 | 14 |")
}

func TestExecute_JSONError(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scenarios:\n  - player_count: 2\n    normal_max: 5\n    endgame_max: 3\n"), 0644))

	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
		wantMsg  string
	}{
		{
			name:     "invalid scenario file",
			args:     []string{"--format", "json", "scenarios", "--scenarios", bad},
			wantExit: ExitCommandError,
			wantCode: ErrCodeConfig,
			wantMsg:  "normal_max",
		},
		{
			name:     "simulator cannot start",
			args:     []string{"cell", "--format", "json", "--simulator", filepath.Join(t.TempDir(), "missing")},
			wantExit: ExitFailure,
			wantCode: ErrCodeInvocation,
			wantMsg:  "START_FAILED",
		},
		{
			name:     "single trial",
			args:     []string{"run", "--format", "json", "--trials", "1"},
			wantExit: ExitCommandError,
			wantCode: ErrCodeConfig,
			wantMsg:  "invalid --trials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Execute(context.Background(), tt.args, &stdout, &stderr)
			assert.Equal(t, tt.wantExit, code)
			assert.NotContains(t, stderr.String(), "Error [")

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp), stdout.String())
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantMsg)
		})
	}
}

func TestExecute_TextErrorStaysOnStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"run", "--trials", "1"}, &stdout, &stderr)

	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Error [E002]: invalid --trials")
}
