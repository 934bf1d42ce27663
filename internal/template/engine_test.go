package template

import (
	"errors"
	"strings"
	"testing"

	"ticketsmith/internal/types"
)

func TestRenderAllPlatformDocumentPairs(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	platforms := []types.Platform{types.PlatformJira, types.PlatformGitHub, types.PlatformConfluence}
	docs := []types.DocumentType{types.DocComponent, types.DocFeature, types.DocBug}
	for _, p := range platforms {
		for _, d := range docs {
			id := TemplateID(p, d)
			out, err := engine.Render(id, map[string]any{"ComponentName": "Button", "TechStack": "React"})
			if err != nil {
				t.Fatalf("render %s: %v", id, err)
			}
			if !strings.Contains(out, "Button") {
				t.Fatalf("render %s: missing component name:\n%s", id, out)
			}
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	_, err = engine.Render("jira_epic", nil)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRenderNilEngine(t *testing.T) {
	var engine *Engine
	_, err := engine.Render("jira_component", nil)
	if !errors.Is(err, types.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency-unavailable, got %v", err)
	}
}
