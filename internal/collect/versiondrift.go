package collect

import (
	"context"
	"fmt"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// CollectVersionDrift compares the installed tool version against the latest
// published one. Installed comes from a direct --version invocation; latest
// comes from the status payload's update registry when present, else a
// best-effort scan of the tool's update-check state file. Both ends are
// normalized by extracting the first dotted-numeric token.
func (c *Collector) CollectVersionDrift(ctx context.Context, status board.Metric[StatusPayload]) (board.VersionDriftCard, []board.Warning) {
	var warnings []board.Warning

	installed := normalizedVersion(cmdexec.Text(ctx, c.runner, c.quickTool("--version")))
	if !installed.Known {
		warnings = append(warnings, board.Warning{
			Source:   "version-drift",
			Code:     "installed-unknown",
			Reason:   installed.Reason,
			Severity: board.SeverityWarn,
		})
	}

	var latest board.Metric[string]
	switch {
	case status.Known && status.Value.Update != nil && status.Value.Update.LatestVersion != "":
		latest = normalizedVersion(board.Known(status.Value.Update.LatestVersion))
	default:
		latest = scanUpdateCheck(stateRoots(c.opts.Tool))
		if latest.Known {
			reason := "status payload lacked an update registry"
			if !status.Known {
				reason = fmt.Sprintf("status payload unavailable: %s", status.Reason)
			}
			c.log.Debug("latest version taken from update-check state file", zapReason(reason))
			warnings = append(warnings, board.Warning{
				Source:   "version-drift",
				Code:     "registry-degraded",
				Reason:   fmt.Sprintf("latest version taken from %s: %s", updateCheckFile, reason),
				Severity: board.SeverityWarn,
			})
		} else {
			warnings = append(warnings, board.Warning{
				Source:   "version-drift",
				Code:     "latest-unknown",
				Reason:   latest.Reason,
				Severity: board.SeverityWarn,
			})
		}
	}

	card := board.VersionDriftCard{
		InstalledVersion: installed,
		LatestVersion:    latest,
		UpdateAvailable:  board.UpdateAvailable(installed, latest),
	}
	return card, warnings
}

// normalizedVersion reduces free-text version output to its dotted-numeric
// token. Text without any such token is unknown, not empty.
func normalizedVersion(m board.Metric[string]) board.Metric[string] {
	if !m.Known {
		return m
	}
	v := board.ExtractVersion(m.Value)
	if v == "" {
		return board.Unknown[string](fmt.Sprintf("no version token in %q", m.Value))
	}
	return board.Known(v)
}
