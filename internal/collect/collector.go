// Package collect gathers per-domain health cards from the agent CLI and
// local filesystem/git state. Every collector is best-effort: external-source
// faults collapse into unknown metrics plus advisory warnings, and no failure
// path aborts snapshot construction.
package collect

import (
	"time"

	"go.uber.org/zap"

	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// Options configures a Collector.
type Options struct {
	// Tool is the monitored CLI binary name (default "openclaw")
	Tool string

	// Workspaces are the git workspace paths inspected for repo drift
	Workspaces []string

	// ActiveWindowMinutes parameterizes the sessions query
	ActiveWindowMinutes int

	// QuickTimeout bounds fast introspection calls (--version, --help, git)
	QuickTimeout time.Duration

	// JSONTimeout bounds the JSON-producing tool commands
	JSONTimeout time.Duration
}

// DefaultOptions returns the standard collector configuration.
func DefaultOptions() Options {
	return Options{
		Tool:                "openclaw",
		ActiveWindowMinutes: 60,
		QuickTimeout:        3 * time.Second,
		JSONTimeout:         10 * time.Second,
	}
}

// Collector runs all per-domain collections against one runner. It holds no
// mutable state besides the process-lifetime compatibility cache; every
// collection cycle produces a freshly constructed snapshot.
type Collector struct {
	runner cmdexec.Runner
	log    *zap.Logger
	opts   Options
	compat *CompatChecker
}

// New creates a Collector. A nil logger defaults to a no-op logger.
func New(runner cmdexec.Runner, log *zap.Logger, opts Options) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.Tool == "" {
		opts.Tool = def.Tool
	}
	if opts.ActiveWindowMinutes <= 0 {
		opts.ActiveWindowMinutes = def.ActiveWindowMinutes
	}
	if opts.QuickTimeout <= 0 {
		opts.QuickTimeout = def.QuickTimeout
	}
	if opts.JSONTimeout <= 0 {
		opts.JSONTimeout = def.JSONTimeout
	}
	return &Collector{
		runner: runner,
		log:    log,
		opts:   opts,
		compat: &CompatChecker{},
	}
}

// tool builds a JSON-producing tool invocation.
func (c *Collector) tool(args ...string) cmdexec.Command {
	return cmdexec.Command{Name: c.opts.Tool, Args: args, Timeout: c.opts.JSONTimeout}
}

// quickTool builds a fast introspection invocation.
func (c *Collector) quickTool(args ...string) cmdexec.Command {
	return cmdexec.Command{Name: c.opts.Tool, Args: args, Timeout: c.opts.QuickTimeout}
}

func zapReason(reason string) zap.Field {
	return zap.String("reason", reason)
}
