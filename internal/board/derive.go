package board

// Canned reason strings used by the deriver. The renderer and tests match on
// these exactly, so they are constants rather than inline literals.
const (
	ReasonAllHealthy      = "all health checks passed"
	ReasonUnknownCritical = "unknown state in critical cards"
)

// DeriveOverall folds all collected cards into one verdict with deterministic
// severity precedence. Evaluation is two strict tiers: RED conditions are
// checked first and short-circuit AMBER evaluation entirely. Unknown values
// never trigger RED on their own; they escalate to AMBER via the watch-list.
func DeriveOverall(s Snapshot) OverallCard {
	var red []string

	if s.Security.Critical.Known && s.Security.Critical.Value > 0 {
		red = append(red, "critical security findings > 0")
	}
	if s.Cron.FailingOrRecentErrorCount.Known && s.Cron.FailingOrRecentErrorCount.Value > 0 {
		red = append(red, "failing or recently erroring cron jobs > 0")
	}
	if s.Gateway.Reachable.Known && !s.Gateway.Reachable.Value {
		red = append(red, "gateway unreachable")
	}

	if len(red) > 0 {
		return OverallCard{Level: LevelRed, Reasons: red}
	}

	var amber []string

	if s.Security.Warning.Known && s.Security.Warning.Value > 0 {
		amber = append(amber, "security warnings > 0")
	}
	if s.RepoDrift.Clean.Known && !s.RepoDrift.Clean.Value {
		amber = append(amber, "uncommitted changes in workspaces")
	}
	if s.RepoDrift.BehindCount.Known && s.RepoDrift.BehindCount.Value > 0 {
		amber = append(amber, "workspaces behind upstream")
	}
	if anyWatchListUnknown(s) {
		amber = append(amber, ReasonUnknownCritical)
	}

	if len(amber) > 0 {
		return OverallCard{Level: LevelAmber, Reasons: amber}
	}

	return OverallCard{Level: LevelGreen, Reasons: []string{ReasonAllHealthy}}
}

// anyWatchListUnknown reports whether any metric on the fixed watch-list is
// unknown. An unknown watch-list metric alone is sufficient to force AMBER;
// the synthetic reason is added once regardless of how many are unknown.
func anyWatchListUnknown(s Snapshot) bool {
	watched := []bool{
		s.Security.Critical.Known,
		s.Security.Warning.Known,
		s.Cron.FailingOrRecentErrorCount.Known,
		s.Channels.ConfiguredCount.Known,
		s.Gateway.Reachable.Known,
		s.RepoDrift.Clean.Known,
		s.RepoDrift.BehindCount.Known,
		s.VersionDrift.InstalledVersion.Known,
		s.VersionDrift.LatestVersion.Known,
	}
	for _, known := range watched {
		if !known {
			return true
		}
	}
	return false
}
