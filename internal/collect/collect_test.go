package collect

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// fakeRunner maps full command lines ("openclaw status --json") to canned
// results and records every invocation. Unmapped commands fail with a
// non-zero exit.
type fakeRunner struct {
	mu      sync.Mutex
	results map[string]cmdexec.Result
	calls   []string
}

func newFakeRunner(results map[string]cmdexec.Result) *fakeRunner {
	return &fakeRunner{results: results}
}

func (f *fakeRunner) Run(_ context.Context, cmd cmdexec.Command) cmdexec.Result {
	key := cmd.Name + " " + strings.Join(cmd.Args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	if res, ok := f.results[key]; ok {
		return res
	}
	return cmdexec.Result{
		Started:    true,
		ExitCode:   1,
		FailReason: cmd.Name + " exited with code 1: unexpected invocation: " + key,
	}
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func okJSON(body string) cmdexec.Result {
	return cmdexec.Result{OK: true, Started: true, Stdout: body}
}

func okText(body string) cmdexec.Result {
	return cmdexec.Result{OK: true, Started: true, Stdout: body}
}

func failCmd(reason string) cmdexec.Result {
	return cmdexec.Result{Started: true, ExitCode: 1, FailReason: reason}
}

// newTestCollector builds a collector against the fake runner with the
// home directory and every config/state discovery env var pointed away from
// the real machine.
func newTestCollector(t *testing.T, r cmdexec.Runner, opts Options) *Collector {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("OPENCLAW_CONFIG_PATH", "")
	t.Setenv("OPENCLAW_STATE_DIR", "")
	t.Setenv("OPENCLAW_PROFILE", "")
	return New(r, nil, opts)
}

func knownStatus(p StatusPayload) board.Metric[StatusPayload] {
	return board.Known(p)
}

func unknownStatus(reason string) board.Metric[StatusPayload] {
	return board.Unknown[StatusPayload](reason)
}

func intp(v int) *int       { return &v }
func boolp(v bool) *bool    { return &v }
func strp(v string) *string { return &v }
