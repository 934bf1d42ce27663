package llm

import (
	"context"
	"testing"
	"time"
)

type echoClient struct{ trace *[]string }

func (e *echoClient) Name() string { return "echo" }
func (e *echoClient) Close() error { return nil }

func (e *echoClient) Generate(_ context.Context, prompt string, _ GenerateOpts) (string, error) {
	*e.trace = append(*e.trace, "client")
	return prompt, nil
}

func TestChainOrder(t *testing.T) {
	var trace []string
	mw := func(tag string) Middleware {
		return func(next TextClient) TextClient {
			return clientFunc(func(ctx context.Context, prompt string, opts GenerateOpts) (string, error) {
				trace = append(trace, tag)
				return next.Generate(ctx, prompt, opts)
			})
		}
	}

	cli := Chain(&echoClient{trace: &trace}, mw("outer"), mw("inner"))
	out, err := cli.Generate(context.Background(), "hello", GenerateOpts{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "hello" {
		t.Fatalf("out = %q, want hello", out)
	}
	want := []string{"outer", "inner", "client"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace[%d] = %q, want %q", i, trace[i], want[i])
		}
	}
}

type clientFunc func(ctx context.Context, prompt string, opts GenerateOpts) (string, error)

func (clientFunc) Name() string { return "func" }
func (clientFunc) Close() error { return nil }

func (f clientFunc) Generate(ctx context.Context, prompt string, opts GenerateOpts) (string, error) {
	return f(ctx, prompt, opts)
}

func TestNilLimiterAcquire(t *testing.T) {
	var l *rpsLimiter
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("nil limiter Acquire: %v", err)
	}
	l.Stop()
}

func TestLimiterBurstThenBlock(t *testing.T) {
	l := newRPSLimiter(1, 2)
	defer l.Stop()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := l.Acquire(ctx); err != nil {
			t.Fatalf("burst acquire %d: %v", i, err)
		}
	}

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := l.Acquire(short); err == nil {
		t.Fatal("expected third immediate acquire to block past the burst")
	}
}

func TestStrategyFromDefault(t *testing.T) {
	if got := StrategyFrom(context.Background()); got != "unknown" {
		t.Fatalf("StrategyFrom = %q", got)
	}
	ctx := WithStrategy(context.Background(), "hybrid-visual")
	if got := StrategyFrom(ctx); got != "hybrid-visual" {
		t.Fatalf("StrategyFrom = %q", got)
	}
}
