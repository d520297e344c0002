package collect

import (
	"context"
	"fmt"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// ChannelsPayload is the output of `<tool> channels status --json`.
type ChannelsPayload struct {
	Channels map[string]ChannelState `json:"channels"`
}

// Validate rejects payloads without a channels map.
func (p *ChannelsPayload) Validate() error {
	if p.Channels == nil {
		return fmt.Errorf("missing channels map")
	}
	return nil
}

// ChannelState is one channel's reported state. Connected is provider-
// dependent and may be absent entirely.
type ChannelState struct {
	Configured *bool `json:"configured,omitempty"`
	Connected  *bool `json:"connected,omitempty"`
	Running    *bool `json:"running,omitempty"`
}

// CollectChannels queries per-channel state. The connected count is known
// only when at least one channel exposes a connected boolean; total absence
// of the signal is expected provider behavior and reported at info severity,
// not as a fault. Falls back to counting channel keys in the tool's config
// file when the status command fails.
func (c *Collector) CollectChannels(ctx context.Context) (board.ChannelsCard, []board.Warning) {
	primary := cmdexec.JSON[ChannelsPayload](ctx, c.runner, c.tool("channels", "status", "--json"))
	if primary.Known {
		configured := 0
		connected := 0
		sawConnectedSignal := false
		for _, ch := range primary.Value.Channels {
			if ch.Configured != nil && *ch.Configured {
				configured++
			}
			if ch.Connected != nil {
				sawConnectedSignal = true
				if *ch.Connected {
					connected++
				}
			}
		}

		card := board.ChannelsCard{ConfiguredCount: board.Known(configured)}
		if sawConnectedSignal {
			card.ConnectedCount = board.Known(connected)
			return card, nil
		}
		card.ConnectedCount = board.Unknown[int]("no channel reported a connected signal")
		return card, []board.Warning{{
			Source:   "channels",
			Code:     "connected-signal-absent",
			Reason:   "no channel reported a connected signal",
			Severity: board.SeverityInfo,
		}}
	}

	cfg := loadToolConfig(c.opts.Tool)
	if cfg.Known {
		c.log.Debug("channels status unavailable, counting config file channels",
			zapReason(primary.Reason))
		card := board.ChannelsCard{
			ConfiguredCount: board.Known(len(cfg.Value.Channels)),
			ConnectedCount:  board.Unknown[int](fmt.Sprintf("channels status unavailable: %s", primary.Reason)),
		}
		return card, []board.Warning{{
			Source:   "channels",
			Code:     "status-degraded",
			Reason:   fmt.Sprintf("channels status unavailable, configured count taken from config file: %s", primary.Reason),
			Severity: board.SeverityWarn,
		}}
	}

	reason := fmt.Sprintf("%s; config file fallback: %s", primary.Reason, cfg.Reason)
	card := board.ChannelsCard{
		ConfiguredCount: board.Unknown[int](reason),
		ConnectedCount:  board.Unknown[int](reason),
	}
	return card, []board.Warning{{
		Source:   "channels",
		Code:     "channels-unavailable",
		Reason:   reason,
		Severity: board.SeverityWarn,
	}}
}
