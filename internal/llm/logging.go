package llm

import (
	"context"
	"log"
)

type ctxKeyStrategy struct{}

// WithStrategy attaches a strategy name to the context for log attribution.
func WithStrategy(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxKeyStrategy{}, name)
}

// StrategyFrom returns the strategy name stored in the context.
func StrategyFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyStrategy{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}

// WithLogging logs request size and errors. Provide a custom logger or nil
// to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next TextClient) TextClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next TextClient
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Generate(ctx context.Context, prompt string, opts GenerateOpts) (string, error) {
	l.log.Printf("LLM request (%s): %d bytes", StrategyFrom(ctx), len(prompt))
	out, err := l.next.Generate(ctx, prompt, opts)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", StrategyFrom(ctx), err)
	}
	return out, err
}
