package drift

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// DefaultGitTimeout bounds each individual git invocation. Git introspection
// is local and quick; anything slower than this is effectively hung.
const DefaultGitTimeout = 3 * time.Second

// InspectWorkspace inspects one filesystem path with three sequential git
// operations: resolve the repository root, compute cleanliness from porcelain
// status (untracked files included), and compute ahead/behind counts against
// the configured upstream. Failure at an earlier step leaves later-step
// metrics unknown while still reporting whatever could be computed.
func InspectWorkspace(ctx context.Context, r cmdexec.Runner, path string, timeout time.Duration) board.RepoWorkspaceDrift {
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}

	ws := board.RepoWorkspaceDrift{WorkspacePath: path}

	// Step 1: repository root
	rootRes := r.Run(ctx, gitCmd(timeout, "-C", path, "rev-parse", "--show-toplevel"))
	if !rootRes.OK {
		reason := fmt.Sprintf("failed to resolve repository root: %s", rootRes.FailReason)
		ws.RepositoryRoot = board.Unknown[string](reason)
		ws.Clean = board.Unknown[bool](reason)
		ws.AheadCount = board.Unknown[int](reason)
		ws.BehindCount = board.Unknown[int](reason)
		ws.Diagnostics = append(ws.Diagnostics, classifyGitFailure(rootRes, path, ""))
		return ws
	}
	root := strings.TrimSpace(rootRes.Stdout)
	ws.RepositoryRoot = board.Known(root)

	// Step 2: cleanliness via porcelain status
	statusRes := r.Run(ctx, gitCmd(timeout, "-C", path, "status", "--porcelain"))
	if !statusRes.OK {
		reason := fmt.Sprintf("failed to read git status: %s", statusRes.FailReason)
		ws.Clean = board.Unknown[bool](reason)
		ws.Diagnostics = append(ws.Diagnostics, classifyGitFailure(statusRes, path, root))
	} else {
		ws.Clean = board.Known(strings.TrimSpace(statusRes.Stdout) == "")
	}

	// Step 3: upstream ref, then left-right ahead/behind counts
	upstreamRes := r.Run(ctx, gitCmd(timeout, "-C", path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}"))
	if !upstreamRes.OK {
		reason := fmt.Sprintf("failed to resolve upstream: %s", upstreamRes.FailReason)
		ws.AheadCount = board.Unknown[int](reason)
		ws.BehindCount = board.Unknown[int](reason)
		ws.Diagnostics = append(ws.Diagnostics, classifyGitFailure(upstreamRes, path, root))
		return ws
	}
	upstream := strings.TrimSpace(upstreamRes.Stdout)

	countRes := r.Run(ctx, gitCmd(timeout, "-C", path, "rev-list", "--left-right", "--count", upstream+"...HEAD"))
	if !countRes.OK {
		reason := fmt.Sprintf("failed to count ahead/behind commits: %s", countRes.FailReason)
		ws.AheadCount = board.Unknown[int](reason)
		ws.BehindCount = board.Unknown[int](reason)
		ws.Diagnostics = append(ws.Diagnostics, classifyGitFailure(countRes, path, root))
		return ws
	}

	behind, ahead, err := parseLeftRightCount(countRes.Stdout)
	if err != nil {
		reason := fmt.Sprintf("unparseable rev-list count output: %v", err)
		ws.AheadCount = board.Unknown[int](reason)
		ws.BehindCount = board.Unknown[int](reason)
		ws.Diagnostics = append(ws.Diagnostics, board.Warning{
			Source:   "repo-drift",
			Code:     "git-command-failed",
			Reason:   reason,
			Severity: board.SeverityWarn,
			Context:  root,
		})
		return ws
	}
	ws.AheadCount = board.Known(ahead)
	ws.BehindCount = board.Known(behind)
	return ws
}

func gitCmd(timeout time.Duration, args ...string) cmdexec.Command {
	return cmdexec.Command{Name: "git", Args: args, Timeout: timeout}
}

// parseLeftRightCount parses "behind<TAB>ahead" from
// git rev-list --left-right --count upstream...HEAD. The left column is
// commits only on the upstream (behind), the right column commits only on
// HEAD (ahead).
func parseLeftRightCount(out string) (behind, ahead int, err error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected two counts, got %q", strings.TrimSpace(out))
	}
	behind, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad behind count %q", fields[0])
	}
	ahead, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad ahead count %q", fields[1])
	}
	return behind, ahead, nil
}

// classifyGitFailure maps a failed git invocation to a structured warning by
// substring-matching the combined lowercased failure reason and stderr.
// The matching is inherently locale- and git-version-fragile; the priority
// order below is load-bearing and must not be reordered.
func classifyGitFailure(res cmdexec.Result, workspacePath, repoRoot string) board.Warning {
	text := strings.ToLower(res.FailReason + " " + res.Stderr)

	switch {
	case strings.Contains(text, "not found"):
		return board.Warning{
			Source:   "repo-drift",
			Code:     "git-missing",
			Reason:   "git binary not available: " + res.FailReason,
			Severity: board.SeverityError,
		}
	case strings.Contains(text, "not a git repository"), strings.Contains(text, "not in a git directory"):
		return board.Warning{
			Source:   "repo-drift",
			Code:     "not-a-git-repo",
			Reason:   "workspace is not a git repository",
			Severity: board.SeverityWarn,
			Context:  workspacePath,
		}
	case strings.Contains(text, "no upstream"), strings.Contains(text, "does not point to a branch"):
		context := repoRoot
		if context == "" {
			context = workspacePath
		}
		// Expected state for local-only branches, hence info severity.
		return board.Warning{
			Source:   "repo-drift",
			Code:     "upstream-missing",
			Reason:   "no upstream configured for current branch",
			Severity: board.SeverityInfo,
			Context:  context,
		}
	default:
		return board.Warning{
			Source:   "repo-drift",
			Code:     "git-command-failed",
			Reason:   res.FailReason,
			Severity: board.SeverityWarn,
			Context:  workspacePath,
		}
	}
}
