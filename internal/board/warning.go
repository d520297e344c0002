package board

// Severity classifies how serious a collection warning is.
// Severities are informative only; they never block snapshot production.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Warning is a structured diagnostic attached to a snapshot. Warnings are
// advisory: they record degraded collection paths (fallbacks taken, sources
// unavailable) without ever aborting the snapshot.
type Warning struct {
	// Source is the subsystem that produced the warning (e.g. "security")
	Source string `json:"source"`

	// Code is a stable machine-readable identifier (e.g. "audit-unavailable")
	Code string `json:"code"`

	// Reason is the human-readable explanation
	Reason string `json:"reason"`

	// Severity is one of info/warn/error
	Severity Severity `json:"severity"`

	// Context optionally names the subject (a file path, job id, workspace)
	Context string `json:"context,omitempty"`
}

// DedupeWarnings collapses duplicate warnings, preserving first-seen order.
// Two warnings are duplicates when source, code, reason, and context are all
// equal; severity is deliberately excluded so the first-reported severity
// wins.
func DedupeWarnings(warnings []Warning) []Warning {
	type key struct {
		source, code, reason, context string
	}
	seen := make(map[key]bool, len(warnings))
	out := make([]Warning, 0, len(warnings))
	for _, w := range warnings {
		k := key{w.Source, w.Code, w.Reason, w.Context}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, w)
	}
	return out
}
