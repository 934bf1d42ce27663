package strategy

import (
	"context"
	"fmt"
	"strings"

	"ticketsmith/internal/types"
)

// emergencyFallback is the unconditional last resort. Returned verbatim if
// even local substitution produces nothing usable.
const emergencyFallback = `# Implementation Ticket

A ticket could not be generated from the design data. Please describe the
component manually: what it is, where it appears, and how it should behave.`

// Emergency is tier 3, the terminal strategy. Pure local substitution over
// fields already on the request; no external calls, cannot fail.
type Emergency struct{}

func (e *Emergency) Name() string { return NameEmergency }
func (e *Emergency) Tier() int    { return 3 }

func (e *Emergency) Requires() []Capability { return nil }

func (e *Emergency) Available(Capabilities, *types.GenerationRequest, *types.ContextBundle) bool {
	return true
}

// Generate never returns an error.
func (e *Emergency) Generate(_ context.Context, req *types.GenerationRequest, bundle *types.ContextBundle) (types.GenerationResult, error) {
	content := buildEmergencyTicket(req)
	if strings.TrimSpace(content) == "" {
		content = emergencyFallback
	}
	confidence := 10.0
	if bundle != nil && bundle.OverallConfidence/4 > confidence {
		confidence = bundle.OverallConfidence / 4
	}
	return newResult(NameEmergency, "template", content, confidence), nil
}

func buildEmergencyTicket(req *types.GenerationRequest) string {
	name := "Component"
	stack := "the project's stack"
	docType := "component"
	if req != nil {
		if s := strings.TrimSpace(req.ComponentName); s != "" {
			name = s
		}
		if s := req.TechStack.String(); s != "" {
			stack = s
		}
		if req.DocumentType != "" {
			docType = string(req.DocumentType)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "## Summary\nImplement the %s %s using %s.\n\n", name, docType, stack)
	sb.WriteString("## Acceptance Criteria\n")
	fmt.Fprintf(&sb, "- %s matches the referenced design\n", name)
	sb.WriteString("- Handles empty, loading, and error states\n")
	sb.WriteString("- Covered by unit tests\n\n")
	sb.WriteString("## Notes\n")
	sb.WriteString("Generated without AI assistance; refine against the design frame before implementation.\n")
	return sb.String()
}
