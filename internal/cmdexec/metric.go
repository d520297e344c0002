package cmdexec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/steveyegge/clawboard/internal/board"
)

// Validatable payloads can reject structurally-unexpected JSON after it has
// been successfully parsed, so collectors can tell "not JSON at all" apart
// from "JSON, but not the shape this command produces".
type Validatable interface {
	Validate() error
}

// Text runs cmd and returns its trimmed stdout as a known metric. Any
// failure, including empty trimmed output, collapses to unknown with the
// failure reason.
func Text(ctx context.Context, r Runner, cmd Command) board.Metric[string] {
	res := r.Run(ctx, cmd)
	if !res.OK {
		return board.Unknown[string](res.FailReason)
	}
	out := strings.TrimSpace(res.Stdout)
	if out == "" {
		return board.Unknown[string](fmt.Sprintf("%s produced empty output", cmd.Name))
	}
	return board.Known(out)
}

// JSON runs cmd, parses stdout as JSON into T, and validates the result when
// T implements Validatable. Parse failures and shape mismatches both collapse
// to unknown, each with a distinguishable reason.
func JSON[T any](ctx context.Context, r Runner, cmd Command) board.Metric[T] {
	res := r.Run(ctx, cmd)
	if !res.OK {
		return board.Unknown[T](res.FailReason)
	}

	var v T
	if err := json.Unmarshal([]byte(res.Stdout), &v); err != nil {
		return board.Unknown[T](fmt.Sprintf("%s produced invalid JSON: %v", cmd.Name, err))
	}
	if val, ok := any(&v).(Validatable); ok {
		if err := val.Validate(); err != nil {
			return board.Unknown[T](fmt.Sprintf("%s produced unexpected JSON shape: %v", cmd.Name, err))
		}
	}
	return board.Known(v)
}
