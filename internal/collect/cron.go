package collect

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// CronListPayload is the output of `<tool> cron list --all --json`.
type CronListPayload struct {
	Jobs []CronJob `json:"jobs"`
}

// Validate rejects payloads without a jobs array.
func (p *CronListPayload) Validate() error {
	if p.Jobs == nil {
		return fmt.Errorf("missing jobs array")
	}
	return nil
}

// CronJob is one scheduled job. A nil Enabled means the tool omitted the
// flag, which it does for jobs that are enabled.
type CronJob struct {
	ID      string        `json:"id,omitempty"`
	Enabled *bool         `json:"enabled,omitempty"`
	State   *CronJobState `json:"state,omitempty"`
}

// CronJobState carries the job's recent execution state.
type CronJobState struct {
	ConsecutiveErrors *int    `json:"consecutiveErrors,omitempty"`
	LastStatus        *string `json:"lastStatus,omitempty"`
}

// CronStatusPayload is the coarser output of `<tool> cron status --json`.
type CronStatusPayload struct {
	Enabled *bool `json:"enabled,omitempty"`
	Jobs    *int  `json:"jobs,omitempty"`
}

// CollectCron queries both cron commands in parallel and prefers the richer
// list output when both succeed. The list gives an exact enabled count plus a
// derived failing count; the coarser status command covers only the enabled
// count, leaving the failing count unknown.
func (c *Collector) CollectCron(ctx context.Context) (board.CronCard, []board.Warning) {
	var (
		listM   board.Metric[CronListPayload]
		statusM board.Metric[CronStatusPayload]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listM = cmdexec.JSON[CronListPayload](gctx, c.runner, c.tool("cron", "list", "--all", "--json"))
		return nil
	})
	g.Go(func() error {
		statusM = cmdexec.JSON[CronStatusPayload](gctx, c.runner, c.tool("cron", "status", "--json"))
		return nil
	})
	g.Wait() //nolint:errcheck // collectors never return errors

	if listM.Known {
		enabled, failing := deriveCronCounts(listM.Value.Jobs)
		return board.CronCard{
			EnabledCount:              board.Known(enabled),
			FailingOrRecentErrorCount: board.Known(failing),
		}, nil
	}

	if statusM.Known {
		c.log.Debug("cron list unavailable, using cron status", zapReason(listM.Reason))
		card := board.CronCard{
			EnabledCount:              enabledCountFromStatus(statusM.Value),
			FailingOrRecentErrorCount: board.Unknown[int](fmt.Sprintf("cron list unavailable: %s", listM.Reason)),
		}
		return card, []board.Warning{{
			Source:   "cron",
			Code:     "list-degraded",
			Reason:   fmt.Sprintf("cron list unavailable, enabled count taken from cron status: %s", listM.Reason),
			Severity: board.SeverityWarn,
		}}
	}

	reason := fmt.Sprintf("%s; cron status fallback: %s", listM.Reason, statusM.Reason)
	card := board.CronCard{
		EnabledCount:              board.Unknown[int](reason),
		FailingOrRecentErrorCount: board.Unknown[int](reason),
	}
	return card, []board.Warning{{
		Source:   "cron",
		Code:     "cron-unavailable",
		Reason:   reason,
		Severity: board.SeverityWarn,
	}}
}

// deriveCronCounts counts enabled jobs and, among them, jobs that are failing
// or recently errored: a positive consecutive-error count, or a last status
// present and not equal to "ok".
func deriveCronCounts(jobs []CronJob) (enabled, failing int) {
	for _, job := range jobs {
		if job.Enabled != nil && !*job.Enabled {
			continue
		}
		enabled++
		if job.State == nil {
			continue
		}
		if job.State.ConsecutiveErrors != nil && *job.State.ConsecutiveErrors > 0 {
			failing++
			continue
		}
		if job.State.LastStatus != nil && *job.State.LastStatus != "ok" {
			failing++
		}
	}
	return enabled, failing
}

func enabledCountFromStatus(p CronStatusPayload) board.Metric[int] {
	if p.Enabled != nil && !*p.Enabled {
		return board.Known(0)
	}
	if p.Jobs == nil {
		return board.Unknown[int]("cron status omitted job count")
	}
	return board.Known(*p.Jobs)
}
