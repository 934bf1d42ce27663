package template

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	texttemplate "text/template"

	"ticketsmith/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ErrTemplateNotFound is returned when no skeleton exists for the id.
var ErrTemplateNotFound = errors.New("template not found")

// RenderError wraps a template execution failure.
type RenderError struct {
	ID  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.ID, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Engine renders ticket skeletons. Templates are parsed once at construction
// and keyed "<platform>/<documentType>".
type Engine struct {
	mu  sync.RWMutex
	set *texttemplate.Template
}

func NewEngine() (*Engine, error) {
	set, err := texttemplate.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Engine{set: set}, nil
}

// TemplateID builds the lookup id for a platform/document-type pair.
func TemplateID(platform types.Platform, doc types.DocumentType) string {
	return string(platform) + "_" + string(doc)
}

// Render executes the named skeleton with the given variables.
func (e *Engine) Render(templateID string, vars map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", fmt.Errorf("template engine not configured: %w", types.ErrDependencyUnavailable)
	}
	name := templateID + ".tmpl"
	e.mu.RLock()
	tmpl := e.set.Lookup(name)
	e.mu.RUnlock()
	if tmpl == nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, vars); err != nil {
		return "", &RenderError{ID: templateID, Err: err}
	}
	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", &RenderError{ID: templateID, Err: errors.New("empty output")}
	}
	return out, nil
}

// Has reports whether a skeleton exists for the id.
func (e *Engine) Has(templateID string) bool {
	if e == nil || e.set == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.set.Lookup(templateID+".tmpl") != nil
}
