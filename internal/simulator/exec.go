package simulator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultPath is the simulator binary looked up when none is configured.
const DefaultPath = "./thegameanalyzer"

// waitDelay bounds how long Wait blocks on output pipes after the process is killed.
const waitDelay = time.Second

// ExecClient runs the simulator as a child process.
//
// Each RunTrial call starts exactly one process and waits for it to exit
// before returning, so the exit status is always observed.
type ExecClient struct {
	// Path is the simulator executable.
	Path string

	// Timeout bounds a single invocation. Zero disables the timeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// NewExecClient creates a client for the simulator at path.
// An empty path falls back to DefaultPath.
func NewExecClient(path string, timeout time.Duration, logger *slog.Logger) *ExecClient {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecClient{Path: path, Timeout: timeout, Logger: logger}
}

// Args builds the simulator's argument vector for t.
//
//	-p  structured output
//	-n  number of players
//	-r  reach distance (normal)
//	-e  reach distance (endgame)
//	-t  number of trials
func (c *ExecClient) Args(t Trial) []string {
	return []string{
		"-p",
		"-n", strconv.Itoa(t.PlayerCount),
		"-r", strconv.Itoa(t.Normal),
		"-e", strconv.Itoa(t.Endgame),
		"-t", strconv.Itoa(t.Trials),
	}
}

// RunTrial launches the simulator once and parses its output.
func (c *ExecClient) RunTrial(ctx context.Context, t Trial) (Result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, c.Args(t)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	c.Logger.Debug("simulator exited",
		"trial", t.String(),
		"duration", time.Since(start),
		"error", err,
	)
	if err != nil {
		return Result{}, c.classify(ctx, t, err, stderr.String())
	}

	res, err := ParseResult(stdout.Bytes())
	if err != nil {
		return Result{}, fmt.Errorf("run trial %s: %w", t, err)
	}
	return res, nil
}

// classify converts a cmd.Run error into a *Error.
// Parent context cancellation is returned as-is so callers can tell it
// apart from simulator failures.
func (c *ExecClient) classify(ctx context.Context, t Trial, err error, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if c.Timeout > 0 && errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("run trial %s: %w", t, &Error{
				Code:    CodeTimeout,
				Message: fmt.Sprintf("simulator did not finish within %s", c.Timeout),
				Err:     ctxErr,
			})
		}
		return fmt.Errorf("run trial %s: %w", t, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("run trial %s: %w", t, &Error{
			Code:     CodeExitStatus,
			Message:  "simulator exited with failure status",
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr),
		})
	}

	return fmt.Errorf("run trial %s: %w", t, &Error{
		Code:    CodeStartFailed,
		Message: fmt.Sprintf("could not start simulator %q", c.Path),
		Err:     err,
	})
}
