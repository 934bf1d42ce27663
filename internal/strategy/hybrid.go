package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ticketsmith/internal/llm"
	"ticketsmith/internal/template"
	"ticketsmith/internal/types"
)

// Hybrid is tier 1: template-rendered skeleton enhanced with a best-effort
// AI pass over the raw visual context. Needs a screenshot or enhanced frame
// data to have anything visual to work from.
type Hybrid struct {
	LLM       llm.TextClient
	Templates *template.Engine
}

func (h *Hybrid) Name() string { return NameHybrid }
func (h *Hybrid) Tier() int    { return 1 }

func (h *Hybrid) Requires() []Capability {
	return []Capability{CapAIService, CapTemplateEngine, CapScreenshot}
}

func (h *Hybrid) Available(caps Capabilities, req *types.GenerationRequest, bundle *types.ContextBundle) bool {
	if !caps.AIService || !caps.TemplateEngine {
		return false
	}
	if bundle != nil && bundle.HasScreenshot() {
		return true
	}
	return req != nil && (req.HasScreenshot() || req.EnhancedFrameData != nil)
}

func (h *Hybrid) Generate(ctx context.Context, req *types.GenerationRequest, bundle *types.ContextBundle) (types.GenerationResult, error) {
	if h.LLM == nil || h.Templates == nil {
		return types.GenerationResult{}, fmt.Errorf("hybrid strategy: %w", types.ErrDependencyUnavailable)
	}
	skeleton, err := h.Templates.Render(template.TemplateID(req.Platform, req.DocumentType), templateVars(req, bundle))
	if err != nil {
		return types.GenerationResult{}, fmt.Errorf("hybrid skeleton: %w", err)
	}

	visual := visualContext(req, bundle)
	prompt := fmt.Sprintf(`You are reviewing a design capture to enrich an implementation ticket.

Below is a ticket skeleton and what is known about the captured visual. Rewrite the skeleton into a finished ticket, folding in concrete visual observations where they help. Return only the ticket text.

[SKELETON]
%s

[VISUAL CONTEXT]
%s`, skeleton, visual)

	ctx = llm.WithStrategy(ctx, NameHybrid)
	out, err := h.LLM.Generate(ctx, prompt, llm.GenerateOpts{MaxTokens: 2048, Temperature: 0.5})
	if err != nil {
		return types.GenerationResult{}, fmt.Errorf("hybrid generation: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return types.GenerationResult{}, fmt.Errorf("hybrid: %w", types.ErrGenerationFailure)
	}
	return newResult(NameHybrid, "hybrid", out, bundleConfidence(bundle)*0.9), nil
}

func visualContext(req *types.GenerationRequest, bundle *types.ContextBundle) string {
	parts := []string{}
	if bundle.HasScreenshot() {
		parts = append(parts, fmt.Sprintf("A %s screenshot of the selection is attached (%d bytes).",
			bundle.Screenshot.Format, len(bundle.Screenshot.Bytes)))
	} else if req.HasScreenshot() {
		parts = append(parts, fmt.Sprintf("A %s screenshot of the selection is attached (%d bytes).",
			req.Screenshot.Format, len(req.Screenshot.Bytes)))
	}
	if req.EnhancedFrameData != nil {
		if raw, err := json.MarshalIndent(req.EnhancedFrameData, "", "  "); err == nil {
			parts = append(parts, "[ENHANCED FRAME DATA]\n"+string(raw))
		}
	}
	if len(parts) == 0 {
		return "No visual capture is available."
	}
	return strings.Join(parts, "\n\n")
}
