package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"ticketsmith/internal/types"
)

// Analyzer turns raw design data into one confidence-scored fragment.
// Analyzers are pure; a returned error never aborts aggregation.
type Analyzer func(types.DesignData, types.FileContext) (types.ContextFragment, error)

// expectedBySource lets the aggregator weight each fragment by how much of
// its expected signal actually materialized.
var expectedBySource = map[types.FragmentSource]int{
	types.SourceDesign:    designExpectedFields,
	types.SourceBusiness:  businessExpectedFields,
	types.SourceTechnical: technicalExpectedFields,
	types.SourceUX:        uxExpectedFields,
}

// Aggregator merges analyzer outputs into one ContextBundle. Repeated
// aggregation of the same design data within a process is served from a
// bounded read-through cache.
type Aggregator struct {
	analyzers map[types.FragmentSource]Analyzer
	cache     *lru.Cache[string, types.ContextBundle]
}

func NewAggregator() *Aggregator {
	cache, err := lru.New[string, types.ContextBundle](128)
	if err != nil {
		cache = nil
	}
	return &Aggregator{
		analyzers: map[types.FragmentSource]Analyzer{
			types.SourceDesign:    AnalyzeDesignTokens,
			types.SourceBusiness:  AnalyzeBusinessContext,
			types.SourceTechnical: AnalyzeTechnicalComplexity,
			types.SourceUX:        AnalyzeUXSignals,
		},
		cache: cache,
	}
}

// BuildContext is total: any input, including a nil document, yields a
// valid bundle. Analyzer failures become zero-confidence fragments.
func (a *Aggregator) BuildContext(d types.DesignData, fc types.FileContext) types.ContextBundle {
	key := designHash(d, fc)
	if a.cache != nil && key != "" {
		if cached, ok := a.cache.Get(key); ok {
			out := cached
			out.Screenshot = d.Screenshot
			return out
		}
	}

	bundle := types.ContextBundle{
		Fragments:    make(map[types.FragmentSource]types.ContextFragment, len(a.analyzers)),
		Screenshot:   d.Screenshot,
		HasFrameData: d.Document != nil,
	}

	var weighted, totalWeight float64
	for _, src := range orderedSources() {
		analyze := a.analyzers[src]
		frag, err := analyze(d, fc)
		if err != nil {
			frag = types.ContextFragment{
				Source:  src,
				Missing: []string{fmt.Sprintf("%s analysis failed: %v", src, err)},
			}
		}
		frag.Source = src
		bundle.Fragments[src] = frag

		expected := expectedBySource[src]
		if expected <= 0 {
			expected = 1
		}
		weight := float64(len(frag.Data)) / float64(expected)
		weighted += frag.Confidence * weight
		totalWeight += weight

		for _, m := range frag.Missing {
			bundle.DebugMarkers = append(bundle.DebugMarkers, string(src)+": "+m)
		}
	}
	if totalWeight > 0 {
		bundle.OverallConfidence = weighted / totalWeight
	}

	if a.cache != nil && key != "" {
		cached := bundle
		cached.Screenshot = nil // reattached per call from the live input
		a.cache.Add(key, cached)
	}
	return bundle
}

// CacheLen reports the read-through cache occupancy for health reporting.
func (a *Aggregator) CacheLen() int {
	if a == nil || a.cache == nil {
		return 0
	}
	return a.cache.Len()
}

func orderedSources() []types.FragmentSource {
	return []types.FragmentSource{
		types.SourceDesign,
		types.SourceBusiness,
		types.SourceTechnical,
		types.SourceUX,
	}
}

// designHash fingerprints the analyzable portion of the input. Screenshot
// bytes are excluded: they do not feed the analyzers.
func designHash(d types.DesignData, fc types.FileContext) string {
	styleKeys := make([]string, 0, len(d.Styles))
	for k := range d.Styles {
		styleKeys = append(styleKeys, k+"="+d.Styles[k])
	}
	sort.Strings(styleKeys)
	raw, err := json.Marshal(map[string]any{
		"document": d.Document,
		"styles":   styleKeys,
		"file":     fc,
	})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
