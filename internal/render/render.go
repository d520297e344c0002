// Package render draws a collected snapshot as a human-readable, color-coded
// status board. It consumes the snapshot strictly read-only; machine-readable
// output is plain JSON marshaling of the snapshot with no transformation.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/steveyegge/clawboard/internal/board"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// Board writes the full status board for one snapshot.
func Board(w io.Writer, snap board.Snapshot) {
	fmt.Fprintf(w, "\n%s\n\n", cyan("=== Agent Status Board ==="))

	renderOverall(w, snap.Overall)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\n", yellow("Security:"))
	fmt.Fprintf(w, "  Critical: %s  Warning: %s  Info: %s\n",
		countWithFloor(snap.Security.Critical, 1, red),
		countWithFloor(snap.Security.Warning, 1, yellow),
		intMetric(snap.Security.Info))

	fmt.Fprintf(w, "%s\n", yellow("Cron:"))
	fmt.Fprintf(w, "  Enabled: %s  Failing: %s\n",
		intMetric(snap.Cron.EnabledCount),
		countWithFloor(snap.Cron.FailingOrRecentErrorCount, 1, red))

	fmt.Fprintf(w, "%s\n", yellow("Channels:"))
	fmt.Fprintf(w, "  Configured: %s  Connected: %s\n",
		intMetric(snap.Channels.ConfiguredCount),
		intMetric(snap.Channels.ConnectedCount))

	fmt.Fprintf(w, "%s\n", yellow("Agents:"))
	fmt.Fprintf(w, "  Configured: %s\n", intMetric(snap.Agents.ConfiguredCount))

	fmt.Fprintf(w, "%s\n", yellow("Sessions:"))
	fmt.Fprintf(w, "  Active (last %dm): %s\n",
		snap.Sessions.ActiveWindowMinutes, intMetric(snap.Sessions.ActiveCount))

	fmt.Fprintf(w, "%s\n", yellow("Gateway:"))
	fmt.Fprintf(w, "  Reachable: %s\n", reachable(snap.Gateway))

	fmt.Fprintf(w, "%s\n", yellow("Version:"))
	fmt.Fprintf(w, "  Installed: %s  Latest: %s  Update available: %s\n",
		stringMetric(snap.VersionDrift.InstalledVersion),
		stringMetric(snap.VersionDrift.LatestVersion),
		boolMetric(snap.VersionDrift.UpdateAvailable))

	renderRepoDrift(w, snap.RepoDrift)
	renderWarnings(w, snap.Warnings)

	fmt.Fprintf(w, "\n%s generated %s\n", gray("snapshot"),
		gray(snap.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
}

func renderOverall(w io.Writer, overall board.OverallCard) {
	var paint func(a ...interface{}) string
	icon := "?"
	switch overall.Level {
	case board.LevelGreen:
		paint, icon = green, "✓"
	case board.LevelAmber:
		paint, icon = yellow, "⚠"
	case board.LevelRed:
		paint, icon = red, "✗"
	default:
		paint = gray
	}
	fmt.Fprintf(w, "%s %s\n", paint(icon), paint(string(overall.Level)))
	for _, reason := range overall.Reasons {
		fmt.Fprintf(w, "  • %s\n", reason)
	}
}

func renderRepoDrift(w io.Writer, repo board.RepoDriftCard) {
	fmt.Fprintf(w, "%s\n", yellow("Repositories:"))
	fmt.Fprintf(w, "  Tracked: %s  Dirty: %s  Ahead: %s  Behind: %s\n",
		intMetric(repo.RepositoryCount),
		countWithFloor(repo.DirtyCount, 1, yellow),
		intMetric(repo.AheadCount),
		countWithFloor(repo.BehindCount, 1, yellow))
	for _, ws := range repo.Workspaces {
		fmt.Fprintf(w, "  %s clean=%s ahead=%s behind=%s\n",
			ws.WorkspacePath,
			boolMetric(ws.Clean),
			intMetric(ws.AheadCount),
			intMetric(ws.BehindCount))
	}
}

func renderWarnings(w io.Writer, warnings []board.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", yellow(fmt.Sprintf("Warnings (%d):", len(warnings))))
	for _, warning := range warnings {
		icon := gray("•")
		switch warning.Severity {
		case board.SeverityWarn:
			icon = yellow("⚠")
		case board.SeverityError:
			icon = red("✗")
		}
		line := fmt.Sprintf("  %s [%s] %s", icon, warning.Source, warning.Reason)
		if warning.Context != "" {
			line += gray(" (" + warning.Context + ")")
		}
		fmt.Fprintln(w, line)
	}
}

// unknownText is the literal indicator for undetermined metrics. Unknown is
// always rendered explicitly, never as a blank or a zero.
const unknownText = "unknown"

func intMetric(m board.Metric[int]) string {
	if !m.Known {
		return gray(unknownText)
	}
	return strconv.Itoa(m.Value)
}

// countWithFloor renders a count, painting it when it reaches the floor.
func countWithFloor(m board.Metric[int], floor int, paint func(a ...interface{}) string) string {
	if !m.Known {
		return gray(unknownText)
	}
	s := strconv.Itoa(m.Value)
	if m.Value >= floor {
		return paint(s)
	}
	return s
}

func boolMetric(m board.Metric[bool]) string {
	if !m.Known {
		return gray(unknownText)
	}
	return strconv.FormatBool(m.Value)
}

func stringMetric(m board.Metric[string]) string {
	if !m.Known {
		return gray(unknownText)
	}
	return m.Value
}

func reachable(gw board.GatewayCard) string {
	if !gw.Reachable.Known {
		return gray(unknownText)
	}
	if gw.Reachable.Value {
		return green("yes")
	}
	s := red("no")
	if gw.Error.Known && gw.Error.Value != "" {
		s += " " + gray("("+strings.TrimSpace(gw.Error.Value)+")")
	}
	return s
}
