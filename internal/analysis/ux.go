package analysis

import (
	"strings"

	"ticketsmith/internal/figma"
	"ticketsmith/internal/types"
)

var interactiveMarkers = []string{"button", "input", "field", "link", "toggle", "checkbox", "select", "slider"}
var navigationMarkers = []string{"nav", "menu", "tab", "breadcrumb", "sidebar", "drawer", "header", "footer"}

// AnalyzeUXSignals extracts interaction and navigation signals from node
// naming conventions.
func AnalyzeUXSignals(d types.DesignData, _ types.FileContext) (types.ContextFragment, error) {
	frag := types.ContextFragment{
		Source: types.SourceUX,
		Data:   map[string]any{},
	}

	names := figma.CollectNames(d.Document, 128)

	interactive := matchMarkers(names, interactiveMarkers)
	if len(interactive) > 0 {
		frag.Data["interactiveElements"] = interactive
	} else {
		frag.Missing = append(frag.Missing, "interactiveElements missing")
	}

	navigation := matchMarkers(names, navigationMarkers)
	if len(navigation) > 0 {
		frag.Data["navigationPatterns"] = navigation
	} else {
		frag.Missing = append(frag.Missing, "navigationPatterns missing")
	}

	texts := figma.CollectText(d.Document, 64)
	if len(texts) > 0 {
		frag.Data["visibleCopyCount"] = len(texts)
	} else {
		frag.Missing = append(frag.Missing, "visibleCopy missing")
	}

	frag.Confidence = fieldConfidence(len(frag.Data), uxExpectedFields)
	return frag, nil
}

func matchMarkers(names, markers []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, m := range markers {
			if strings.Contains(lower, m) {
				if _, ok := seen[name]; !ok {
					seen[name] = struct{}{}
					out = append(out, name)
				}
				break
			}
		}
	}
	return out
}
