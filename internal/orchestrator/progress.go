package orchestrator

import "context"

// ProgressEvent reports cascade movement to an observer (the websocket
// channel, tests). Events are advisory; generation does not block on them.
type ProgressEvent struct {
	Stage    string `json:"stage"` // "selected", "attempting", "tier-failed", "done"
	Strategy string `json:"strategy,omitempty"`
	Tier     int    `json:"tier"`
	Cached   bool   `json:"cached,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ProgressFunc func(ProgressEvent)

type ctxKeyProgress struct{}

// WithProgress attaches a progress observer to the context.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, ctxKeyProgress{}, fn)
}

func progressFrom(ctx context.Context) ProgressFunc {
	if v := ctx.Value(ctxKeyProgress{}); v != nil {
		if fn, ok := v.(ProgressFunc); ok {
			return fn
		}
	}
	return func(ProgressEvent) {}
}
