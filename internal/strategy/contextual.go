package strategy

import (
	"context"
	"fmt"
	"strings"

	"ticketsmith/internal/llm"
	"ticketsmith/internal/types"
)

// Contextual is tier 2: AI generation from the context bundle alone, no
// template skeleton. Needs only the AI service.
type Contextual struct {
	LLM llm.TextClient
}

func (c *Contextual) Name() string { return NameContextual }
func (c *Contextual) Tier() int    { return 2 }

func (c *Contextual) Requires() []Capability {
	return []Capability{CapAIService}
}

func (c *Contextual) Available(caps Capabilities, _ *types.GenerationRequest, _ *types.ContextBundle) bool {
	return caps.AIService
}

func (c *Contextual) Generate(ctx context.Context, req *types.GenerationRequest, bundle *types.ContextBundle) (types.GenerationResult, error) {
	if c.LLM == nil {
		return types.GenerationResult{}, fmt.Errorf("contextual strategy: %w", types.ErrDependencyUnavailable)
	}

	prompt := fmt.Sprintf(`Write a complete implementation ticket for the %s platform.

Component: %s
Document type: %s
Tech stack: %s

Use the design context below. Structure the ticket with a summary, design context, acceptance criteria, and technical notes. Return only the ticket text.

[DESIGN CONTEXT]
%s

[INSTRUCTIONS]
%s`, req.Platform, req.ComponentName, req.DocumentType, req.TechStack.String(), bundleJSON(bundle), strings.TrimSpace(req.Instructions))

	ctx = llm.WithStrategy(ctx, NameContextual)
	out, err := c.LLM.Generate(ctx, prompt, llm.GenerateOpts{MaxTokens: 2048, Temperature: 0.6})
	if err != nil {
		return types.GenerationResult{}, fmt.Errorf("contextual generation: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return types.GenerationResult{}, fmt.Errorf("contextual: %w", types.ErrGenerationFailure)
	}
	return newResult(NameContextual, "contextual", out, bundleConfidence(bundle)*0.8), nil
}
