package collect

import (
	"context"
	"fmt"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// AgentsListPayload is the output of `<tool> agents list --json`: a bare
// array of agent entries.
type AgentsListPayload []AgentEntry

// Validate rejects a JSON null in place of the array.
func (p *AgentsListPayload) Validate() error {
	if *p == nil {
		return fmt.Errorf("expected agent array, got null")
	}
	return nil
}

// CollectAgents counts configured agents. Fallback chain: agents-list
// command, then the shared status payload's agent array, then the tool's
// config file agent list. Each successive fallback that serves the count
// still attaches a warning citing the primary failure.
func (c *Collector) CollectAgents(ctx context.Context, status board.Metric[StatusPayload]) (board.AgentsCard, []board.Warning) {
	primary := cmdexec.JSON[AgentsListPayload](ctx, c.runner, c.tool("agents", "list", "--json"))
	if primary.Known {
		return board.AgentsCard{ConfiguredCount: board.Known(len(primary.Value))}, nil
	}

	degraded := func(source string) []board.Warning {
		return []board.Warning{{
			Source:   "agents",
			Code:     "list-degraded",
			Reason:   fmt.Sprintf("agents list unavailable, count taken from %s: %s", source, primary.Reason),
			Severity: board.SeverityWarn,
		}}
	}

	if status.Known && status.Value.Agents != nil {
		c.log.Debug("agents list unavailable, using status payload", zapReason(primary.Reason))
		return board.AgentsCard{ConfiguredCount: board.Known(len(status.Value.Agents))}, degraded("status payload")
	}

	cfg := loadToolConfig(c.opts.Tool)
	if cfg.Known && cfg.Value.Agents != nil {
		c.log.Debug("agents list unavailable, using config file", zapReason(primary.Reason))
		return board.AgentsCard{ConfiguredCount: board.Known(len(cfg.Value.Agents))}, degraded("config file")
	}

	reason := fmt.Sprintf("%s; no agent list in status payload or config file", primary.Reason)
	return board.AgentsCard{ConfiguredCount: board.Unknown[int](reason)}, []board.Warning{{
		Source:   "agents",
		Code:     "agents-unavailable",
		Reason:   reason,
		Severity: board.SeverityWarn,
	}}
}
