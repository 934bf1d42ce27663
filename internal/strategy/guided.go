package strategy

import (
	"context"
	"fmt"
	"strings"

	"ticketsmith/internal/llm"
	"ticketsmith/internal/template"
	"ticketsmith/internal/types"
)

// Guided is tier 0: full context bundle + template skeleton + AI pass that
// fills the skeleton into structured, template-conformant content.
type Guided struct {
	LLM       llm.TextClient
	Templates *template.Engine
}

func (g *Guided) Name() string { return NameGuided }
func (g *Guided) Tier() int    { return 0 }

func (g *Guided) Requires() []Capability {
	return []Capability{CapAIService, CapTemplateEngine}
}

func (g *Guided) Available(caps Capabilities, _ *types.GenerationRequest, _ *types.ContextBundle) bool {
	return caps.AIService && caps.TemplateEngine
}

func (g *Guided) Generate(ctx context.Context, req *types.GenerationRequest, bundle *types.ContextBundle) (types.GenerationResult, error) {
	if g.LLM == nil || g.Templates == nil {
		return types.GenerationResult{}, fmt.Errorf("guided strategy: %w", types.ErrDependencyUnavailable)
	}
	skeleton, err := g.Templates.Render(template.TemplateID(req.Platform, req.DocumentType), templateVars(req, bundle))
	if err != nil {
		return types.GenerationResult{}, fmt.Errorf("guided skeleton: %w", err)
	}

	prompt := fmt.Sprintf(`You are a senior engineer writing an implementation ticket for the %s platform.

Complete the ticket skeleton below using the design context. Keep the skeleton's structure and headings exactly; replace placeholder prose with concrete, specific detail. Return only the completed ticket text.

[SKELETON]
%s

[DESIGN CONTEXT]
%s

[INSTRUCTIONS]
%s`, req.Platform, skeleton, bundleJSON(bundle), strings.TrimSpace(req.Instructions))

	ctx = llm.WithStrategy(ctx, NameGuided)
	out, err := g.LLM.Generate(ctx, prompt, llm.GenerateOpts{MaxTokens: 2048, Temperature: 0.4})
	if err != nil {
		return types.GenerationResult{}, fmt.Errorf("guided generation: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return types.GenerationResult{}, fmt.Errorf("guided: %w", types.ErrGenerationFailure)
	}
	return newResult(NameGuided, "guided", out, bundleConfidence(bundle)), nil
}
