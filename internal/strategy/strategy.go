package strategy

import (
	"context"
	"encoding/json"
	"time"

	"ticketsmith/internal/types"
)

// Capability names a dependency a strategy needs before it can run.
type Capability string

const (
	CapAIService      Capability = "ai-service"
	CapTemplateEngine Capability = "template-engine"
	CapFrameData      Capability = "frame-data"
	CapScreenshot     Capability = "screenshot"
)

// Capabilities is the service-level availability snapshot. Per-request
// signals (frame data, screenshot) come from the request and bundle.
type Capabilities struct {
	AIService      bool `json:"aiService"`
	TemplateEngine bool `json:"templateEngine"`
}

// Strategy names one way of turning a context bundle into ticket content.
// Strategies are stateless after construction; the registry owns them for
// the process lifetime.
type Strategy interface {
	Name() string
	// Tier is the strategy's position in the fallback cascade; lower tiers
	// run first and need more dependencies.
	Tier() int
	Requires() []Capability
	// Available reports whether the strategy can run for this request.
	Available(caps Capabilities, req *types.GenerationRequest, bundle *types.ContextBundle) bool
	Generate(ctx context.Context, req *types.GenerationRequest, bundle *types.ContextBundle) (types.GenerationResult, error)
}

// Canonical strategy names.
const (
	NameGuided     = "ai-powered-primary"
	NameHybrid     = "hybrid-visual"
	NameContextual = "ai-contextual"
	NameEmergency  = "emergency"
)

func newResult(name, genType, content string, confidence float64) types.GenerationResult {
	return types.GenerationResult{
		Content: content,
		Metadata: types.ResultMetadata{
			StrategyUsed:   name,
			GenerationType: genType,
			Confidence:     confidence,
			GeneratedAt:    time.Now().UTC(),
		},
	}
}

// bundleJSON renders the analyzable fragments for prompt embedding.
// Screenshot bytes are elided.
func bundleJSON(bundle *types.ContextBundle) string {
	if bundle == nil {
		return "{}"
	}
	view := map[string]any{
		"fragments":         bundle.Fragments,
		"overallConfidence": bundle.OverallConfidence,
		"hasFrameData":      bundle.HasFrameData,
		"hasScreenshot":     bundle.HasScreenshot(),
	}
	raw, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func bundleConfidence(bundle *types.ContextBundle) float64 {
	if bundle == nil {
		return 0
	}
	return bundle.OverallConfidence
}

// templateVars builds the variable map shared by all template renders.
func templateVars(req *types.GenerationRequest, bundle *types.ContextBundle) map[string]any {
	vars := map[string]any{
		"ComponentName": req.ComponentName,
		"TechStack":     req.TechStack.String(),
		"Platform":      string(req.Platform),
		"DocumentType":  string(req.DocumentType),
	}
	if bundle != nil {
		if frag, ok := bundle.Fragment(types.SourceDesign); ok && len(frag.Data) > 0 {
			if names, ok := frag.Data["componentNames"].([]string); ok && len(names) > 0 {
				vars["DesignSummary"] = "Design includes: " + joinLimit(names, 10)
			}
		}
		if frag, ok := bundle.Fragment(types.SourceBusiness); ok {
			if domain, ok := frag.Data["industryDomain"].(string); ok {
				vars["BusinessSummary"] = "Inferred domain: " + domain
			}
		}
		if frag, ok := bundle.Fragment(types.SourceTechnical); ok {
			if effort, ok := frag.Data["estimatedEffort"].(string); ok {
				vars["TechnicalNotes"] = "Estimated effort: " + effort
			}
		}
	}
	return vars
}

func joinLimit(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
