package contract

import "context"

// ToolExecutor runs a named tool and reports the outcome as text.
// Implementations never fail hard: unknown tools, bad arguments, and
// handler faults all come back as descriptive strings so the dialogue can
// recover conversationally.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, args map[string]any) string
}
