package analysis

import (
	"ticketsmith/internal/figma"
	"ticketsmith/internal/types"
)

// expected field counts per analyzer, used to weight fragment confidence in
// the aggregate.
const (
	designExpectedFields    = 4
	businessExpectedFields  = 3
	technicalExpectedFields = 4
	uxExpectedFields        = 3
)

// AnalyzeDesignTokens extracts palette, typography, and component identity
// signals from the raw design tree. Pure over its input.
func AnalyzeDesignTokens(d types.DesignData, _ types.FileContext) (types.ContextFragment, error) {
	frag := types.ContextFragment{
		Source: types.SourceDesign,
		Data:   map[string]any{},
	}

	palette := figma.CollectFills(d.Document, 16)
	if len(palette) == 0 && len(d.Styles) > 0 {
		// Published styles stand in for node fills when the tree is shallow.
		for _, styleName := range d.Styles {
			palette = append(palette, styleName)
			if len(palette) >= 16 {
				break
			}
		}
	}
	if len(palette) > 0 {
		frag.Data["colorPalette"] = palette
	} else {
		frag.Missing = append(frag.Missing, "colorPalette missing")
	}

	texts := figma.CollectText(d.Document, 24)
	if len(texts) > 0 {
		frag.Data["typography"] = texts
	} else {
		frag.Missing = append(frag.Missing, "typography missing")
	}

	names := figma.CollectNames(d.Document, 32)
	if len(names) > 0 {
		frag.Data["componentNames"] = names
	} else {
		frag.Missing = append(frag.Missing, "componentNames missing")
	}

	if len(d.Styles) > 0 {
		frag.Data["styleCount"] = len(d.Styles)
	} else {
		frag.Missing = append(frag.Missing, "styles missing")
	}

	frag.Confidence = fieldConfidence(len(frag.Data), designExpectedFields)
	return frag, nil
}

func fieldConfidence(populated, expected int) float64 {
	if expected <= 0 || populated <= 0 {
		return 0
	}
	if populated > expected {
		populated = expected
	}
	return 100 * float64(populated) / float64(expected)
}
