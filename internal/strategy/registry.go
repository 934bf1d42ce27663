package strategy

import (
	"sort"
	"strings"

	"ticketsmith/internal/llm"
	"ticketsmith/internal/template"
	"ticketsmith/internal/types"
)

// legacyNames maps names older plugin versions still send to the canonical
// strategy names.
var legacyNames = map[string]string{
	"ai":         NameGuided,
	"ai-powered": NameGuided,
	"visual":     NameHybrid,
	"hybrid":     NameHybrid,
	"contextual": NameContextual,
	"legacy":     NameEmergency,
	"template":   NameEmergency,
	"fallback":   NameEmergency,
}

// Registry holds the fixed, tier-ordered strategy set.
type Registry struct {
	ordered []Strategy
	byName  map[string]Strategy
}

type Deps struct {
	LLM       llm.TextClient
	Templates *template.Engine
}

func NewRegistry(deps Deps) *Registry {
	ordered := []Strategy{
		&Guided{LLM: deps.LLM, Templates: deps.Templates},
		&Hybrid{LLM: deps.LLM, Templates: deps.Templates},
		&Contextual{LLM: deps.LLM},
		&Emergency{},
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Tier() < ordered[j].Tier() })

	byName := make(map[string]Strategy, len(ordered))
	for _, s := range ordered {
		byName[s.Name()] = s
	}
	return &Registry{ordered: ordered, byName: byName}
}

// Resolve maps a requested name, through the legacy table if needed, to a
// registered strategy.
func (r *Registry) Resolve(name string) (Strategy, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, false
	}
	if s, ok := r.byName[name]; ok {
		return s, true
	}
	if canonical, ok := legacyNames[name]; ok {
		s, ok := r.byName[canonical]
		return s, ok
	}
	return nil, false
}

// Select picks the strategy for a request. Deterministic over
// (preferredStrategy, capabilities, bundle.HasFrameData, bundle screenshot).
func (r *Registry) Select(req *types.GenerationRequest, bundle *types.ContextBundle, caps Capabilities) Strategy {
	if req != nil {
		if s, ok := r.Resolve(req.PreferredStrategy); ok {
			return s
		}
	}
	if caps.AIService && bundle != nil && (bundle.HasFrameData || bundle.HasScreenshot()) {
		if s, ok := r.byName[NameGuided]; ok {
			return s
		}
	}
	return r.byName[NameEmergency]
}

// CascadeFrom returns the fallback order starting at the given strategy's
// tier and ending at the terminal emergency tier.
func (r *Registry) CascadeFrom(s Strategy) []Strategy {
	start := 0
	if s != nil {
		start = s.Tier()
	}
	out := make([]Strategy, 0, len(r.ordered))
	for _, cand := range r.ordered {
		if cand.Tier() >= start {
			out = append(out, cand)
		}
	}
	return out
}

// All returns the registry in tier order.
func (r *Registry) All() []Strategy {
	return append([]Strategy(nil), r.ordered...)
}
