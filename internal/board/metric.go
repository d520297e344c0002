package board

// Metric wraps an observed health signal that may not have been determinable.
// A metric is either known (carries a value) or unknown (carries a reason
// explaining why the value could not be determined). This keeps "could not
// determine" structurally distinct from "determined to be zero/false/empty",
// which a plain nullable value would conflate.
type Metric[T any] struct {
	// Known is true when Value holds a real observation
	Known bool `json:"known"`

	// Value is the observed value; meaningful only when Known is true
	Value T `json:"value,omitempty"`

	// Reason explains why the value is unknown; set only when Known is false
	Reason string `json:"reason,omitempty"`
}

// Known constructs a known metric carrying v.
func Known[T any](v T) Metric[T] {
	return Metric[T]{Known: true, Value: v}
}

// Unknown constructs an unknown metric with a human-readable reason.
func Unknown[T any](reason string) Metric[T] {
	return Metric[T]{Reason: reason}
}

// FirstKnown returns the first known metric in order, or an unknown metric
// carrying the last reason when none are known. This is the fallback-chain
// combinator used by collectors: try primary, then each secondary, give up
// with the final failure reason.
func FirstKnown[T any](metrics ...Metric[T]) Metric[T] {
	reason := "no sources consulted"
	for _, m := range metrics {
		if m.Known {
			return m
		}
		if m.Reason != "" {
			reason = m.Reason
		}
	}
	return Unknown[T](reason)
}

// Or returns m when known, otherwise the fallback.
func (m Metric[T]) Or(fallback Metric[T]) Metric[T] {
	if m.Known {
		return m
	}
	return fallback
}
