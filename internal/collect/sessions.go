package collect

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// SessionsPayload is the output of `<tool> sessions --json --active <min>`.
type SessionsPayload struct {
	Count    *int              `json:"count,omitempty"`
	Sessions []json.RawMessage `json:"sessions,omitempty"`
}

// CollectSessions queries recently-active sessions. Single source, no
// fallback: the count is the explicit count field when present, else the
// sessions array length, else zero.
func (c *Collector) CollectSessions(ctx context.Context) (board.SessionsCard, []board.Warning) {
	window := c.opts.ActiveWindowMinutes
	payload := cmdexec.JSON[SessionsPayload](ctx, c.runner,
		c.tool("sessions", "--json", "--active", strconv.Itoa(window)))

	card := board.SessionsCard{ActiveWindowMinutes: window}
	if !payload.Known {
		card.ActiveCount = board.Unknown[int](payload.Reason)
		return card, []board.Warning{{
			Source:   "sessions",
			Code:     "sessions-unavailable",
			Reason:   payload.Reason,
			Severity: board.SeverityWarn,
		}}
	}

	switch {
	case payload.Value.Count != nil:
		card.ActiveCount = board.Known(*payload.Value.Count)
	case payload.Value.Sessions != nil:
		card.ActiveCount = board.Known(len(payload.Value.Sessions))
	default:
		card.ActiveCount = board.Known(0)
	}
	return card, nil
}
