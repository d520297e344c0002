package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Command describes one external invocation.
type Command struct {
	// Name is the binary to invoke (resolved via PATH)
	Name string

	// Args are the command-line arguments
	Args []string

	// Timeout bounds the whole spawn-and-wait; zero means no timeout
	Timeout time.Duration
}

// Result carries the classified outcome of one invocation.
type Result struct {
	// OK is true when the process started and exited zero
	OK bool

	// Started is false when the process could not be spawned at all
	// (binary missing, permission denied)
	Started bool

	// ExitCode is the process exit code; meaningful only when Started
	ExitCode int

	// Stdout and Stderr are the captured output streams
	Stdout string
	Stderr string

	// TimedOut is true when the timeout elapsed before the process exited
	TimedOut bool

	// FailReason is a human-readable failure description; empty when OK
	FailReason string
}

// Runner issues external commands. The interface exists so collectors can be
// tested with fake runners instead of real subprocesses.
type Runner interface {
	Run(ctx context.Context, cmd Command) Result
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cmd Command) Result

func (f RunnerFunc) Run(ctx context.Context, cmd Command) Result {
	return f(ctx, cmd)
}

// DefaultGraceWindow is how long a timed-out process gets between the
// graceful termination signal and the forced kill.
const DefaultGraceWindow = 2 * time.Second

// ProcRunner spawns real subprocesses. On timeout the process receives
// SIGTERM first and SIGKILL after GraceWindow if it is still alive.
// No retries happen at this layer; retrying is the caller's concern.
type ProcRunner struct {
	// GraceWindow overrides DefaultGraceWindow when positive
	GraceWindow time.Duration
}

func (r *ProcRunner) Run(ctx context.Context, cmd Command) Result {
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	grace := r.GraceWindow
	if grace <= 0 {
		grace = DefaultGraceWindow
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.Cancel = func() error {
		return c.Process.Signal(syscall.SIGTERM)
	}
	c.WaitDelay = grace

	err := c.Run()
	res := Result{
		Started: c.Process != nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}

	if err == nil {
		res.OK = true
		return res
	}

	if ctx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.ExitCode = exitCodeOf(err)
		res.FailReason = fmt.Sprintf("%s timed out after %s", cmd.Name, cmd.Timeout)
		return res
	}

	if !res.Started {
		res.FailReason = fmt.Sprintf("%s could not be started: %v", cmd.Name, err)
		return res
	}

	res.ExitCode = exitCodeOf(err)
	res.FailReason = fmt.Sprintf("%s exited with code %d", cmd.Name, res.ExitCode)
	if msg := firstLine(res.Stderr); msg != "" {
		res.FailReason += ": " + msg
	}
	return res
}

func exitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
