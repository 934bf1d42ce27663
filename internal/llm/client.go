package llm

import (
	"context"
	"errors"
)

// ErrEmptyOutput is returned when the model replies with no usable text.
var ErrEmptyOutput = errors.New("llm: empty output from model")

// GenerateOpts bound a single generation call.
type GenerateOpts struct {
	MaxTokens   int32
	Temperature float32
}

// TextClient defines the interface for text-generation providers.
type TextClient interface {
	Name() string
	Close() error
	Generate(ctx context.Context, prompt string, opts GenerateOpts) (string, error)
}

// Middleware wraps a TextClient with extra behavior.
type Middleware func(next TextClient) TextClient

// Chain applies middlewares left to right (the first listed is outermost).
func Chain(client TextClient, mws ...Middleware) TextClient {
	for i := len(mws) - 1; i >= 0; i-- {
		client = mws[i](client)
	}
	return client
}
