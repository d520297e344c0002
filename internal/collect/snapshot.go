package collect

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/drift"
)

// Snapshot runs one full collection cycle: the shared status-source query
// first, then every collector fanned out concurrently, joined, deduplicated,
// stamped, and folded into an overall verdict. There is no failure path; a
// snapshot is always produced, with unknowns and warnings standing in for
// anything that could not be determined.
func (c *Collector) Snapshot(ctx context.Context) board.Snapshot {
	started := time.Now()
	status := c.fetchStatus(ctx)

	var (
		security board.SecurityCard
		cron     board.CronCard
		channels board.ChannelsCard
		agents   board.AgentsCard
		sessions board.SessionsCard
		gateway  board.GatewayCard
		version  board.VersionDriftCard
		repo     board.RepoDriftCard

		warnSets = make([][]board.Warning, 9)
	)

	// Fan-out/fan-in: each collector writes only its own result slot, and
	// results merge exclusively at the join point. The status payload is
	// passed by value, read-only, so no locking is needed.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		security, warnSets[0] = c.CollectSecurity(gctx, status)
		return nil
	})
	g.Go(func() error {
		cron, warnSets[1] = c.CollectCron(gctx)
		return nil
	})
	g.Go(func() error {
		channels, warnSets[2] = c.CollectChannels(gctx)
		return nil
	})
	g.Go(func() error {
		agents, warnSets[3] = c.CollectAgents(gctx, status)
		return nil
	})
	g.Go(func() error {
		sessions, warnSets[4] = c.CollectSessions(gctx)
		return nil
	})
	g.Go(func() error {
		gateway, warnSets[5] = c.CollectGateway(status)
		return nil
	})
	g.Go(func() error {
		version, warnSets[6] = c.CollectVersionDrift(gctx, status)
		return nil
	})
	g.Go(func() error {
		workspaces := drift.InspectAll(gctx, c.runner, c.opts.Workspaces, c.opts.QuickTimeout)
		repo = drift.Aggregate(workspaces, "no workspaces configured")
		for _, ws := range repo.Workspaces {
			warnSets[7] = append(warnSets[7], ws.Diagnostics...)
		}
		return nil
	})
	g.Go(func() error {
		warnSets[8] = c.CollectCompat(gctx)
		return nil
	})
	g.Wait() //nolint:errcheck // collectors never return errors

	var warnings []board.Warning
	for _, set := range warnSets {
		warnings = append(warnings, set...)
	}

	snap := board.Snapshot{
		ID:           uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Security:     security,
		Cron:         cron,
		Channels:     channels,
		Agents:       agents,
		Sessions:     sessions,
		Gateway:      gateway,
		VersionDrift: version,
		RepoDrift:    repo,
		Warnings:     board.DedupeWarnings(warnings),
	}
	snap.Overall = board.DeriveOverall(snap)

	c.log.Debug("snapshot collected",
		zap.String("id", snap.ID),
		zap.String("overall", string(snap.Overall.Level)),
		zap.Int("warnings", len(snap.Warnings)),
		zap.Duration("took", time.Since(started)))
	return snap
}
