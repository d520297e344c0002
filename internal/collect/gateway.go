package collect

import (
	"fmt"

	"github.com/steveyegge/clawboard/internal/board"
)

// CollectGateway derives gateway reachability from the shared status
// payload's embedded gateway sub-object. This is the one card whose warning
// severity escalates to error: a known-unreachable gateway is a RED-trigger
// and the operator should see it even in the warning list.
func (c *Collector) CollectGateway(status board.Metric[StatusPayload]) (board.GatewayCard, []board.Warning) {
	if !status.Known || status.Value.Gateway == nil {
		reason := "gateway state unavailable"
		if !status.Known {
			reason = fmt.Sprintf("gateway state unavailable: %s", status.Reason)
		}
		card := board.GatewayCard{
			Reachable: board.Unknown[bool](reason),
			Error:     board.Unknown[string](reason),
		}
		return card, []board.Warning{{
			Source:   "gateway",
			Code:     "state-unavailable",
			Reason:   reason,
			Severity: board.SeverityWarn,
		}}
	}

	gw := status.Value.Gateway
	var card board.GatewayCard
	var warnings []board.Warning

	if gw.Reachable == nil {
		card.Reachable = board.Unknown[bool]("gateway did not report reachability")
		warnings = append(warnings, board.Warning{
			Source:   "gateway",
			Code:     "reachability-unknown",
			Reason:   "gateway did not report reachability",
			Severity: board.SeverityWarn,
		})
	} else {
		card.Reachable = board.Known(*gw.Reachable)
		if !*gw.Reachable {
			reason := "gateway unreachable"
			if gw.Error != nil && *gw.Error != "" {
				reason = fmt.Sprintf("gateway unreachable: %s", *gw.Error)
			}
			warnings = append(warnings, board.Warning{
				Source:   "gateway",
				Code:     "unreachable",
				Reason:   reason,
				Severity: board.SeverityError,
			})
		}
	}

	if gw.Error == nil {
		card.Error = board.Unknown[string]("no gateway error provided")
	} else {
		card.Error = board.Known(*gw.Error)
	}

	return card, warnings
}
