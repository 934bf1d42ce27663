package strategy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ticketsmith/internal/llm"
	"ticketsmith/internal/template"
	"ticketsmith/internal/types"
)

type fakeLLM struct {
	out string
	err error
}

func (f *fakeLLM) Name() string { return "fake" }
func (f *fakeLLM) Close() error { return nil }
func (f *fakeLLM) Generate(_ context.Context, _ string, _ llm.GenerateOpts) (string, error) {
	return f.out, f.err
}

func testRegistry(t *testing.T, client llm.TextClient) *Registry {
	t.Helper()
	engine, err := template.NewEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return NewRegistry(Deps{LLM: client, Templates: engine})
}

func baseRequest() *types.GenerationRequest {
	return &types.GenerationRequest{
		ComponentName: "Button",
		Platform:      types.PlatformJira,
		DocumentType:  types.DocComponent,
		TechStack:     types.TechStack{"React"},
	}
}

func TestSelectNoAICapabilityReturnsEmergency(t *testing.T) {
	r := testRegistry(t, nil)
	bundle := &types.ContextBundle{HasFrameData: true}
	s := r.Select(baseRequest(), bundle, Capabilities{AIService: false, TemplateEngine: true})
	if s.Name() != NameEmergency {
		t.Fatalf("expected emergency, got %s", s.Name())
	}
}

func TestSelectAIWithFrameDataReturnsGuided(t *testing.T) {
	r := testRegistry(t, &fakeLLM{out: "x"})
	bundle := &types.ContextBundle{HasFrameData: true}
	s := r.Select(baseRequest(), bundle, Capabilities{AIService: true, TemplateEngine: true})
	if s.Name() != NameGuided {
		t.Fatalf("expected guided, got %s", s.Name())
	}
}

func TestSelectAIWithoutDataReturnsEmergency(t *testing.T) {
	r := testRegistry(t, &fakeLLM{out: "x"})
	bundle := &types.ContextBundle{}
	s := r.Select(baseRequest(), bundle, Capabilities{AIService: true, TemplateEngine: true})
	if s.Name() != NameEmergency {
		t.Fatalf("expected emergency, got %s", s.Name())
	}
}

func TestSelectLegacyNameRemap(t *testing.T) {
	r := testRegistry(t, &fakeLLM{out: "x"})
	cases := map[string]string{
		"ai":         NameGuided,
		"ai-powered": NameGuided,
		"legacy":     NameEmergency,
		"template":   NameEmergency,
		"visual":     NameHybrid,
	}
	for legacy, want := range cases {
		req := baseRequest()
		req.PreferredStrategy = legacy
		s := r.Select(req, &types.ContextBundle{}, Capabilities{})
		if s.Name() != want {
			t.Fatalf("legacy %q: expected %s, got %s", legacy, want, s.Name())
		}
	}
}

func TestSelectDeterministic(t *testing.T) {
	r := testRegistry(t, &fakeLLM{out: "x"})
	req := baseRequest()
	bundle := &types.ContextBundle{HasFrameData: true}
	caps := Capabilities{AIService: true, TemplateEngine: true}
	first := r.Select(req, bundle, caps).Name()
	for i := 0; i < 10; i++ {
		if got := r.Select(req, bundle, caps).Name(); got != first {
			t.Fatalf("selection not deterministic: %s vs %s", got, first)
		}
	}
}

func TestCascadeFromGuidedEndsAtEmergency(t *testing.T) {
	r := testRegistry(t, &fakeLLM{out: "x"})
	guided, _ := r.Resolve(NameGuided)
	tiers := r.CascadeFrom(guided)
	if len(tiers) != 4 {
		t.Fatalf("expected 4 tiers, got %d", len(tiers))
	}
	if tiers[len(tiers)-1].Name() != NameEmergency {
		t.Fatalf("cascade must end at emergency")
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Tier() <= tiers[i-1].Tier() {
			t.Fatalf("tiers out of order: %v", tiers)
		}
	}
}

func TestEmergencyNeverFails(t *testing.T) {
	e := &Emergency{}
	res, err := e.Generate(context.Background(), baseRequest(), nil)
	if err != nil {
		t.Fatalf("emergency must not fail: %v", err)
	}
	if !strings.Contains(res.Content, "Button") {
		t.Fatalf("content missing component name:\n%s", res.Content)
	}
	if res.Metadata.StrategyUsed != NameEmergency {
		t.Fatalf("unexpected strategy: %s", res.Metadata.StrategyUsed)
	}
}

func TestEmergencyNilRequestUsesDefaults(t *testing.T) {
	e := &Emergency{}
	res, err := e.Generate(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("emergency must not fail: %v", err)
	}
	if strings.TrimSpace(res.Content) == "" {
		t.Fatalf("content must never be empty")
	}
}

func TestGuidedPropagatesLLMFailure(t *testing.T) {
	r := testRegistry(t, &fakeLLM{err: errors.New("timeout")})
	guided, _ := r.Resolve(NameGuided)
	_, err := guided.Generate(context.Background(), baseRequest(), &types.ContextBundle{})
	if err == nil {
		t.Fatalf("expected tier failure")
	}
}

func TestHybridRequiresVisualInput(t *testing.T) {
	r := testRegistry(t, &fakeLLM{out: "x"})
	hybrid, _ := r.Resolve(NameHybrid)
	caps := Capabilities{AIService: true, TemplateEngine: true}

	if hybrid.Available(caps, baseRequest(), &types.ContextBundle{}) {
		t.Fatalf("hybrid should need a screenshot or enhanced frame data")
	}
	req := baseRequest()
	req.Screenshot = &types.Screenshot{Bytes: []byte{1}, Format: "png"}
	if !hybrid.Available(caps, req, &types.ContextBundle{}) {
		t.Fatalf("hybrid should run with a screenshot")
	}
	req = baseRequest()
	req.EnhancedFrameData = &types.FrameNode{Name: "Button"}
	if !hybrid.Available(caps, req, &types.ContextBundle{}) {
		t.Fatalf("hybrid should run with enhanced frame data")
	}
}
