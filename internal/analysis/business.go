package analysis

import (
	"strings"

	"ticketsmith/internal/figma"
	"ticketsmith/internal/types"
)

var industryKeywords = map[string][]string{
	"e-commerce": {"cart", "checkout", "product", "price", "order", "shop"},
	"finance":    {"balance", "account", "transaction", "payment", "invoice", "wallet"},
	"healthcare": {"patient", "appointment", "prescription", "clinic", "doctor"},
	"social":     {"feed", "follow", "like", "comment", "share", "profile"},
	"analytics":  {"dashboard", "chart", "metric", "report", "graph", "kpi"},
}

var intentKeywords = map[string][]string{
	"data entry":  {"form", "input", "field", "submit", "signup", "register"},
	"browsing":    {"list", "card", "grid", "gallery", "search", "filter"},
	"monitoring":  {"dashboard", "status", "alert", "chart", "metric"},
	"transaction": {"checkout", "payment", "confirm", "purchase"},
}

// AnalyzeBusinessContext infers domain and intent signals from node names,
// visible text, and project metadata.
func AnalyzeBusinessContext(d types.DesignData, fc types.FileContext) (types.ContextFragment, error) {
	frag := types.ContextFragment{
		Source: types.SourceBusiness,
		Data:   map[string]any{},
	}

	corpus := strings.ToLower(strings.Join(append(
		figma.CollectNames(d.Document, 64),
		append(figma.CollectText(d.Document, 64), fc.FileName, fc.ProjectName, fc.Description)...,
	), " "))

	if domain := bestKeywordMatch(corpus, industryKeywords); domain != "" {
		frag.Data["industryDomain"] = domain
	} else {
		frag.Missing = append(frag.Missing, "industryDomain missing")
	}

	if intent := bestKeywordMatch(corpus, intentKeywords); intent != "" {
		frag.Data["userIntent"] = intent
	} else {
		frag.Missing = append(frag.Missing, "userIntent missing")
	}

	if strings.TrimSpace(fc.ProjectName) != "" || strings.TrimSpace(fc.FileName) != "" {
		frag.Data["projectContext"] = strings.TrimSpace(strings.Join([]string{fc.ProjectName, fc.FileName}, " / "))
	} else {
		frag.Missing = append(frag.Missing, "projectContext missing")
	}

	frag.Confidence = fieldConfidence(len(frag.Data), businessExpectedFields)
	return frag, nil
}

func bestKeywordMatch(corpus string, table map[string][]string) string {
	best, bestHits := "", 0
	for label, words := range table {
		hits := 0
		for _, w := range words {
			if strings.Contains(corpus, w) {
				hits++
			}
		}
		if hits > bestHits || (hits == bestHits && hits > 0 && label < best) {
			best, bestHits = label, hits
		}
	}
	if bestHits == 0 {
		return ""
	}
	return best
}
