package drift

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// InspectAll inspects every workspace path concurrently. Inspections are
// independent and order-insensitive; results come back in input order.
func InspectAll(ctx context.Context, r cmdexec.Runner, paths []string, timeout time.Duration) []board.RepoWorkspaceDrift {
	results := make([]board.RepoWorkspaceDrift, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = InspectWorkspace(ctx, r, path, timeout)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // inspections never return errors
	return results
}

// Aggregate folds per-workspace drift records into one summary card. The fold
// is symmetric: aggregating [A, B] and [B, A] yields identical metrics, with
// the exception that "first unknown reason" surfacing is an
// implementation-defined tie-break among multiple failures.
//
// Unknown-propagation rules:
//   - clean is known-false as soon as any workspace is known-dirty, even if
//     others are unknown: dirty is decisive. Otherwise one unknown workspace
//     makes clean unknown.
//   - dirtyCount requires every workspace's cleanliness to be known, so it
//     can be unknown even when clean has already been decided false.
//   - aheadCount/behindCount are sums, known only when every workspace's
//     respective metric is known.
//   - repositoryCount counts successfully-resolved roots and is never unknown
//     once the workspace list is non-empty.
func Aggregate(workspaces []board.RepoWorkspaceDrift, emptyReason string) board.RepoDriftCard {
	if len(workspaces) == 0 {
		return board.RepoDriftCard{
			Clean:           board.Unknown[bool](emptyReason),
			AheadCount:      board.Unknown[int](emptyReason),
			BehindCount:     board.Unknown[int](emptyReason),
			DirtyCount:      board.Unknown[int](emptyReason),
			RepositoryCount: board.Unknown[int](emptyReason),
			Workspaces:      []board.RepoWorkspaceDrift{},
		}
	}

	card := board.RepoDriftCard{Workspaces: workspaces}

	anyDirty := false
	allCleanKnown := true
	firstCleanUnknown := ""
	dirtyCount := 0
	repoCount := 0

	aheadSum, behindSum := 0, 0
	allAheadKnown, allBehindKnown := true, true
	firstAheadUnknown, firstBehindUnknown := "", ""

	for _, ws := range workspaces {
		if ws.RepositoryRoot.Known {
			repoCount++
		}

		if ws.Clean.Known {
			if !ws.Clean.Value {
				anyDirty = true
				dirtyCount++
			}
		} else {
			allCleanKnown = false
			if firstCleanUnknown == "" {
				firstCleanUnknown = ws.Clean.Reason
			}
		}

		if ws.AheadCount.Known {
			aheadSum += ws.AheadCount.Value
		} else {
			allAheadKnown = false
			if firstAheadUnknown == "" {
				firstAheadUnknown = ws.AheadCount.Reason
			}
		}

		if ws.BehindCount.Known {
			behindSum += ws.BehindCount.Value
		} else {
			allBehindKnown = false
			if firstBehindUnknown == "" {
				firstBehindUnknown = ws.BehindCount.Reason
			}
		}
	}

	switch {
	case anyDirty:
		card.Clean = board.Known(false)
	case !allCleanKnown:
		card.Clean = board.Unknown[bool](firstCleanUnknown)
	default:
		card.Clean = board.Known(true)
	}

	if allCleanKnown {
		card.DirtyCount = board.Known(dirtyCount)
	} else {
		card.DirtyCount = board.Unknown[int](firstCleanUnknown)
	}

	if allAheadKnown {
		card.AheadCount = board.Known(aheadSum)
	} else {
		card.AheadCount = board.Unknown[int](firstAheadUnknown)
	}

	if allBehindKnown {
		card.BehindCount = board.Known(behindSum)
	} else {
		card.BehindCount = board.Unknown[int](firstBehindUnknown)
	}

	card.RepositoryCount = board.Known(repoCount)
	return card
}
