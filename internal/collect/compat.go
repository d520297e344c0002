package collect

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// minSupportedVersion is the oldest tool release the board understands.
// Older tools are still queried, but the operator gets a compatibility
// warning up front instead of a board full of cryptic unknowns.
const minSupportedVersion = "2026.1.0"

// requiredSubcommands are the tool subcommands the collectors depend on.
var requiredSubcommands = []string{"status", "security", "cron", "channels", "agents", "sessions"}

// helpSubcommandRe matches a subcommand line in cobra-style help output: a
// two-space-indented leading identifier.
var helpSubcommandRe = regexp.MustCompile(`(?m)^  ([a-z][a-z0-9-]*)\b`)

// CompatChecker computes the tool-compatibility warnings once per process
// lifetime. Unlike the other collectors it does not re-run every cycle: the
// installed binary does not change under a running board, and the checks
// cost two subprocess spawns. sync.Once memoizes the in-flight computation
// itself, so concurrent first callers block on a single execution.
type CompatChecker struct {
	once     sync.Once
	warnings []board.Warning
}

// Warnings returns the cached compatibility warnings, computing them on the
// first call.
func (cc *CompatChecker) Warnings(ctx context.Context, r cmdexec.Runner, help cmdexec.Command, version cmdexec.Command) []board.Warning {
	cc.once.Do(func() {
		cc.warnings = checkCompat(ctx, r, help, version)
	})
	return cc.warnings
}

func checkCompat(ctx context.Context, r cmdexec.Runner, help cmdexec.Command, version cmdexec.Command) []board.Warning {
	helpOut := cmdexec.Text(ctx, r, help)
	if !helpOut.Known {
		// Binary missing or unreachable: one error-severity warning,
		// skip the remaining checks.
		return []board.Warning{{
			Source:   "compat",
			Code:     "tool-unreachable",
			Reason:   fmt.Sprintf("%s is not reachable: %s", help.Name, helpOut.Reason),
			Severity: board.SeverityError,
		}}
	}

	var warnings []board.Warning

	available := make(map[string]bool)
	for _, m := range helpSubcommandRe.FindAllStringSubmatch(helpOut.Value, -1) {
		available[m[1]] = true
	}
	for _, name := range requiredSubcommands {
		if !available[name] {
			warnings = append(warnings, board.Warning{
				Source:   "compat",
				Code:     "missing-subcommand",
				Reason:   fmt.Sprintf("%s does not expose the %q subcommand", help.Name, name),
				Severity: board.SeverityWarn,
				Context:  name,
			})
		}
	}

	versionOut := cmdexec.Text(ctx, r, version)
	installed := ""
	if versionOut.Known {
		installed = board.ExtractVersion(versionOut.Value)
	}
	switch {
	case installed == "":
		reason := fmt.Sprintf("could not determine %s version", version.Name)
		if !versionOut.Known {
			reason = fmt.Sprintf("%s: %s", reason, versionOut.Reason)
		}
		warnings = append(warnings, board.Warning{
			Source:   "compat",
			Code:     "version-unparseable",
			Reason:   reason,
			Severity: board.SeverityWarn,
		})
	case board.CompareDotVersions(installed, minSupportedVersion) < 0:
		warnings = append(warnings, board.Warning{
			Source:   "compat",
			Code:     "version-below-floor",
			Reason:   fmt.Sprintf("%s %s is older than the minimum supported %s", version.Name, installed, minSupportedVersion),
			Severity: board.SeverityWarn,
		})
	}

	return warnings
}

// CollectCompat exposes the cached compatibility warnings to the snapshot
// orchestrator.
func (c *Collector) CollectCompat(ctx context.Context) []board.Warning {
	return c.compat.Warnings(ctx, c.runner, c.quickTool("--help"), c.quickTool("--version"))
}
