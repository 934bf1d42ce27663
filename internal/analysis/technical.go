package analysis

import (
	"ticketsmith/internal/figma"
	"ticketsmith/internal/types"
)

// AnalyzeTechnicalComplexity estimates implementation effort from the shape
// of the node tree.
func AnalyzeTechnicalComplexity(d types.DesignData, _ types.FileContext) (types.ContextFragment, error) {
	frag := types.ContextFragment{
		Source: types.SourceTechnical,
		Data:   map[string]any{},
	}

	count, depth := figma.CountNodes(d.Document)
	if count > 0 {
		frag.Data["nodeCount"] = count
		frag.Data["maxDepth"] = depth
	} else {
		frag.Missing = append(frag.Missing, "nodeCount missing", "maxDepth missing")
	}

	score := complexityScore(count, depth)
	if score > 0 {
		frag.Data["complexityScore"] = score
		frag.Data["estimatedEffort"] = effortLabel(score)
	} else {
		frag.Missing = append(frag.Missing, "complexityScore missing")
	}

	frag.Confidence = fieldConfidence(len(frag.Data), technicalExpectedFields)
	return frag, nil
}

// complexityScore maps tree size and nesting into 0..100.
func complexityScore(count, depth int) int {
	if count == 0 {
		return 0
	}
	score := count + depth*5
	if score > 100 {
		score = 100
	}
	return score
}

func effortLabel(score int) string {
	switch {
	case score < 20:
		return "small"
	case score < 60:
		return "medium"
	default:
		return "large"
	}
}
