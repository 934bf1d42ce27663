package orchestrator

import (
	"ticketsmith/internal/strategy"
)

// Health is a synchronous snapshot of in-memory state. No live probes.
type Health struct {
	Status            string                `json:"status"`
	Dependencies      map[string]bool       `json:"dependencies"`
	CacheSize         int                   `json:"cacheSize"`
	AnalysisCacheSize int                   `json:"analysisCacheSize"`
	DurableBackend    string                `json:"durableBackend"`
	Capabilities      strategy.Capabilities `json:"capabilities"`
	Strategies        []string              `json:"strategies"`
}

// Health never returns an error and reflects only in-memory state.
func (o *Orchestrator) Health() Health {
	h := Health{
		Status: "ok",
		Dependencies: map[string]bool{
			"aiService":      o.caps.AIService,
			"templateEngine": o.caps.TemplateEngine,
			"durableCache":   o.cache.DurableName() != "none",
		},
		CacheSize:         o.cache.Size(),
		AnalysisCacheSize: o.agg.CacheLen(),
		DurableBackend:    o.cache.DurableName(),
		Capabilities:      o.caps,
	}
	for _, s := range o.registry.All() {
		h.Strategies = append(h.Strategies, s.Name())
	}
	if !o.caps.AIService {
		h.Status = "degraded"
	}
	return h
}
