package cmdexec

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// auditPayload is a minimal validatable payload for bridge tests.
type auditPayload struct {
	Summary *struct {
		Critical int `json:"critical"`
	} `json:"summary"`
}

func (p *auditPayload) Validate() error {
	if p.Summary == nil {
		return fmt.Errorf("missing summary object")
	}
	return nil
}

func stubRunner(res Result) Runner {
	return RunnerFunc(func(_ context.Context, _ Command) Result {
		return res
	})
}

func TestText_TrimsOutput(t *testing.T) {
	r := stubRunner(Result{OK: true, Started: true, Stdout: "  2026.2.9\n"})

	m := Text(context.Background(), r, Command{Name: "openclaw"})

	require.True(t, m.Known)
	assert.Equal(t, "2026.2.9", m.Value)
}

func TestText_EmptyOutputIsFailure(t *testing.T) {
	r := stubRunner(Result{OK: true, Started: true, Stdout: "   \n"})

	m := Text(context.Background(), r, Command{Name: "openclaw"})

	require.False(t, m.Known)
	assert.Contains(t, m.Reason, "empty output")
}

func TestText_FailurePropagatesReason(t *testing.T) {
	r := stubRunner(Result{Started: true, ExitCode: 1, FailReason: "openclaw exited with code 1"})

	m := Text(context.Background(), r, Command{Name: "openclaw"})

	require.False(t, m.Known)
	assert.Equal(t, "openclaw exited with code 1", m.Reason)
}

func TestJSON_ParsesMatchingPayload(t *testing.T) {
	r := stubRunner(Result{OK: true, Started: true, Stdout: `{"summary":{"critical":2}}`})

	m := JSON[auditPayload](context.Background(), r, Command{Name: "openclaw"})

	require.True(t, m.Known)
	assert.Equal(t, 2, m.Value.Summary.Critical)
}

func TestJSON_NonZeroExitIsUnknownWithCause(t *testing.T) {
	r := stubRunner(Result{Started: true, ExitCode: 2, FailReason: "openclaw exited with code 2: bad flag"})

	m := JSON[auditPayload](context.Background(), r, Command{Name: "openclaw"})

	require.False(t, m.Known)
	assert.Contains(t, m.Reason, "exited with code 2")
}

func TestJSON_ParseFailureIsDistinctReason(t *testing.T) {
	r := stubRunner(Result{OK: true, Started: true, Stdout: "not json at all"})

	m := JSON[auditPayload](context.Background(), r, Command{Name: "openclaw"})

	require.False(t, m.Known)
	assert.Contains(t, m.Reason, "invalid JSON")
}

func TestJSON_ShapeMismatchIsDistinctReason(t *testing.T) {
	// Well-formed JSON, but not the shape this command produces.
	r := stubRunner(Result{OK: true, Started: true, Stdout: `{"other":true}`})

	m := JSON[auditPayload](context.Background(), r, Command{Name: "openclaw"})

	require.False(t, m.Known)
	assert.Contains(t, m.Reason, "unexpected JSON shape")
	assert.NotContains(t, m.Reason, "invalid JSON")
}
