package board

import "time"

// SecurityCard summarizes the tool's security audit findings.
type SecurityCard struct {
	Critical Metric[int] `json:"critical"`
	Warning  Metric[int] `json:"warning"`
	Info     Metric[int] `json:"info"`
}

// CronCard summarizes scheduled job health.
type CronCard struct {
	EnabledCount Metric[int] `json:"enabledCount"`

	// FailingOrRecentErrorCount counts enabled jobs with a positive
	// consecutive-error count or a last status other than "ok".
	FailingOrRecentErrorCount Metric[int] `json:"failingOrRecentErrorCount"`
}

// ChannelsCard summarizes messaging channel state.
type ChannelsCard struct {
	ConfiguredCount Metric[int] `json:"configuredCount"`
	ConnectedCount  Metric[int] `json:"connectedCount"`
}

// AgentsCard summarizes configured agents.
type AgentsCard struct {
	ConfiguredCount Metric[int] `json:"configuredCount"`
}

// SessionsCard summarizes recently-active sessions.
type SessionsCard struct {
	ActiveCount Metric[int] `json:"activeCount"`

	// ActiveWindowMinutes is the query parameter, not an observation,
	// so it is a plain int rather than a Metric.
	ActiveWindowMinutes int `json:"activeWindowMinutes"`
}

// GatewayCard summarizes gateway reachability.
type GatewayCard struct {
	Reachable Metric[bool]   `json:"reachable"`
	Error     Metric[string] `json:"error"`
}

// VersionDriftCard compares the installed tool version against the latest
// published one.
type VersionDriftCard struct {
	InstalledVersion Metric[string] `json:"installedVersion"`
	LatestVersion    Metric[string] `json:"latestVersion"`
	UpdateAvailable  Metric[bool]   `json:"updateAvailable"`
}

// RepoWorkspaceDrift is the git drift record for a single workspace path.
// Each field can be independently unknown: a failure resolving the repository
// root leaves cleanliness and ahead/behind unknown while the path itself is
// still reported.
type RepoWorkspaceDrift struct {
	// WorkspacePath is the inspected path; an input, not an observation
	WorkspacePath string `json:"workspacePath"`

	RepositoryRoot Metric[string] `json:"repositoryRoot"`
	Clean          Metric[bool]   `json:"clean"`
	AheadCount     Metric[int]    `json:"aheadCount"`
	BehindCount    Metric[int]    `json:"behindCount"`

	// Diagnostics holds the warnings produced while inspecting this workspace
	Diagnostics []Warning `json:"diagnostics,omitempty"`
}

// RepoDriftCard is the aggregate of all workspace drift records.
type RepoDriftCard struct {
	Clean           Metric[bool] `json:"clean"`
	AheadCount      Metric[int]  `json:"aheadCount"`
	BehindCount     Metric[int]  `json:"behindCount"`
	DirtyCount      Metric[int]  `json:"dirtyCount"`
	RepositoryCount Metric[int]  `json:"repositoryCount"`

	Workspaces []RepoWorkspaceDrift `json:"workspaces"`
}

// Level is the overall health verdict.
type Level string

const (
	LevelGreen Level = "GREEN"
	LevelAmber Level = "AMBER"
	LevelRed   Level = "RED"
)

// OverallCard is the derived verdict with ranked reasons. It is only ever
// produced by DeriveOverall, never constructed independently.
type OverallCard struct {
	Level   Level    `json:"level"`
	Reasons []string `json:"reasons"`
}

// Snapshot is the root aggregate: one immutable collection of every card,
// the derived overall verdict, a generation timestamp, and the deduplicated
// warning list. A snapshot is constructed fresh on each collection cycle and
// superseded, never mutated, by the next cycle's snapshot.
type Snapshot struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`

	Security     SecurityCard     `json:"security"`
	Cron         CronCard         `json:"cron"`
	Channels     ChannelsCard     `json:"channels"`
	Agents       AgentsCard       `json:"agents"`
	Sessions     SessionsCard     `json:"sessions"`
	Gateway      GatewayCard      `json:"gateway"`
	VersionDrift VersionDriftCard `json:"versionDrift"`
	RepoDrift    RepoDriftCard    `json:"repoDrift"`
	Overall      OverallCard      `json:"overall"`

	Warnings []Warning `json:"warnings"`
}
