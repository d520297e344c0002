package collect

import (
	"context"

	"github.com/steveyegge/clawboard/internal/board"
	"github.com/steveyegge/clawboard/internal/cmdexec"
)

// StatusPayload is the parsed output of `<tool> status --json`. Every field
// is optional; the payload is a shared secondary source that several
// collectors (security, agents, gateway, version-drift) consult as a
// fallback, fetched once per cycle to avoid redundant external calls.
type StatusPayload struct {
	Gateway  *GatewayState    `json:"gateway,omitempty"`
	Agents   []AgentEntry     `json:"agents,omitempty"`
	Security *SecurityAudit   `json:"security,omitempty"`
	Sessions *SessionsSummary `json:"sessions,omitempty"`
	Update   *UpdateInfo      `json:"update,omitempty"`
}

// GatewayState is the embedded gateway sub-object. Pointer fields distinguish
// "reported false/empty" from "not reported at all".
type GatewayState struct {
	Reachable *bool   `json:"reachable,omitempty"`
	Error     *string `json:"error,omitempty"`
}

// AgentEntry identifies one configured agent.
type AgentEntry struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// SecurityAudit is the audit envelope shared by `status --json` and
// `security audit --json`.
type SecurityAudit struct {
	Summary *SecuritySummary `json:"summary,omitempty"`
}

// SecuritySummary carries finding counts by severity.
type SecuritySummary struct {
	Critical *int `json:"critical,omitempty"`
	Warn     *int `json:"warn,omitempty"`
	Info     *int `json:"info,omitempty"`
}

// SessionsSummary is the embedded session count.
type SessionsSummary struct {
	Count *int `json:"count,omitempty"`
}

// UpdateInfo carries the update registry's latest published version.
type UpdateInfo struct {
	LatestVersion string `json:"latestVersion,omitempty"`
}

// fetchStatus runs the shared status-source query once. Its result is passed
// by value, read-only, into every collector that wants it.
func (c *Collector) fetchStatus(ctx context.Context) board.Metric[StatusPayload] {
	return cmdexec.JSON[StatusPayload](ctx, c.runner, c.tool("status", "--json"))
}
