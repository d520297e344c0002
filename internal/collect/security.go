package collect

import (
	"context"
	"fmt"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// SecurityAuditPayload is the output of `<tool> security audit --json`.
type SecurityAuditPayload struct {
	Summary *SecuritySummary `json:"summary"`
}

// Validate rejects payloads without the summary object.
func (p *SecurityAuditPayload) Validate() error {
	if p.Summary == nil {
		return fmt.Errorf("missing summary object")
	}
	return nil
}

// CollectSecurity queries the audit summary. Primary source is the audit
// command; the shared status payload's embedded audit summary is the only
// fallback. A final unknown chains both failure reasons.
func (c *Collector) CollectSecurity(ctx context.Context, status board.Metric[StatusPayload]) (board.SecurityCard, []board.Warning) {
	primary := cmdexec.JSON[SecurityAuditPayload](ctx, c.runner, c.tool("security", "audit", "--json"))
	if primary.Known {
		return securityCardFromSummary(primary.Value.Summary), nil
	}

	if status.Known && status.Value.Security != nil && status.Value.Security.Summary != nil {
		c.log.Debug("security audit command unavailable, using status payload",
			zapReason(primary.Reason))
		card := securityCardFromSummary(status.Value.Security.Summary)
		return card, []board.Warning{{
			Source:   "security",
			Code:     "audit-degraded",
			Reason:   fmt.Sprintf("audit command unavailable, counts taken from status payload: %s", primary.Reason),
			Severity: board.SeverityWarn,
		}}
	}

	reason := primary.Reason
	if !status.Known {
		reason = fmt.Sprintf("%s; status payload fallback: %s", primary.Reason, status.Reason)
	} else {
		reason = fmt.Sprintf("%s; status payload has no audit summary", primary.Reason)
	}
	card := board.SecurityCard{
		Critical: board.Unknown[int](reason),
		Warning:  board.Unknown[int](reason),
		Info:     board.Unknown[int](reason),
	}
	return card, []board.Warning{{
		Source:   "security",
		Code:     "audit-unavailable",
		Reason:   reason,
		Severity: board.SeverityWarn,
	}}
}

func securityCardFromSummary(s *SecuritySummary) board.SecurityCard {
	return board.SecurityCard{
		Critical: countMetric(s.Critical, "audit summary omitted critical count"),
		Warning:  countMetric(s.Warn, "audit summary omitted warn count"),
		Info:     countMetric(s.Info, "audit summary omitted info count"),
	}
}

func countMetric(v *int, missingReason string) board.Metric[int] {
	if v == nil {
		return board.Unknown[int](missingReason)
	}
	return board.Known(*v)
}
