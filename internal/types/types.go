package types

import (
	"time"
)

// Request enums ------------------------------------------------------------------

type Platform string

const (
	PlatformJira       Platform = "jira"
	PlatformGitHub     Platform = "github"
	PlatformConfluence Platform = "confluence"
)

type DocumentType string

const (
	DocComponent DocumentType = "component"
	DocFeature   DocumentType = "feature"
	DocBug       DocumentType = "bug"
)

type FragmentSource string

const (
	SourceDesign    FragmentSource = "design"
	SourceBusiness  FragmentSource = "business"
	SourceTechnical FragmentSource = "technical"
	SourceUX        FragmentSource = "ux"
)

// Design data --------------------------------------------------------------------

// FrameNode is one element in the design source's document tree.
type FrameNode struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Type     string         `json:"type,omitempty"`
	Text     string         `json:"characters,omitempty"`
	Fills    []string       `json:"fills,omitempty"`
	Children []*FrameNode   `json:"children,omitempty"`
	Extra    map[string]any `json:"-"`
}

type Screenshot struct {
	Bytes  []byte `json:"bytes"`
	Format string `json:"format"`
}

// DesignData is what the design-data source returns for one selection. Any
// field may be empty; the document may be nil for an empty selection.
type DesignData struct {
	Document   *FrameNode        `json:"document"`
	Styles     map[string]string `json:"styles,omitempty"`
	Screenshot *Screenshot       `json:"screenshot,omitempty"`
}

// FileContext carries project metadata that accompanies a selection.
type FileContext struct {
	FileName    string `json:"fileName,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
	Description string `json:"description,omitempty"`
}

// Request / result ---------------------------------------------------------------

// GenerationRequest is immutable once constructed. Owned by the call that
// created it.
type GenerationRequest struct {
	ComponentID       string       `json:"componentId,omitempty"`
	ComponentName     string       `json:"componentName"`
	Platform          Platform     `json:"platform"`
	DocumentType      DocumentType `json:"documentType"`
	TechStack         TechStack    `json:"techStack,omitempty"`
	FrameData         []*FrameNode `json:"frameData,omitempty"`
	EnhancedFrameData *FrameNode   `json:"enhancedFrameData,omitempty"`
	Screenshot        *Screenshot  `json:"screenshot,omitempty"`
	Instructions      string       `json:"instructions,omitempty"`
	PreferredStrategy string       `json:"preferredStrategy,omitempty"`
	FileContext       *FileContext `json:"fileContext,omitempty"`
}

// HasFrameData reports whether the request carries any structured frame data.
func (r *GenerationRequest) HasFrameData() bool {
	if r == nil {
		return false
	}
	return len(r.FrameData) > 0 || r.EnhancedFrameData != nil
}

// HasScreenshot reports whether the request carries a raster capture.
func (r *GenerationRequest) HasScreenshot() bool {
	return r != nil && r.Screenshot != nil && len(r.Screenshot.Bytes) > 0
}

// ContextFragment is one analyzer's partial, confidence-scored view of the
// design. Produced once, never mutated after creation.
type ContextFragment struct {
	Source     FragmentSource `json:"source"`
	Confidence float64        `json:"confidence"` // 0..100
	Data       map[string]any `json:"data,omitempty"`
	Missing    []string       `json:"missing,omitempty"`
}

// ContextBundle is the merged aggregate of all fragments for one request.
// Created per request, discarded after the request completes.
type ContextBundle struct {
	Fragments         map[FragmentSource]ContextFragment `json:"fragments"`
	Screenshot        *Screenshot                        `json:"screenshot,omitempty"`
	HasFrameData      bool                               `json:"hasFrameData"`
	OverallConfidence float64                            `json:"overallConfidence"`
	DebugMarkers      []string                           `json:"debugMarkers,omitempty"`
}

// HasScreenshot reports whether the bundle carries a raster capture.
func (b *ContextBundle) HasScreenshot() bool {
	return b != nil && b.Screenshot != nil && len(b.Screenshot.Bytes) > 0
}

// Fragment returns the fragment for the given source, if present.
func (b *ContextBundle) Fragment(src FragmentSource) (ContextFragment, bool) {
	if b == nil || b.Fragments == nil {
		return ContextFragment{}, false
	}
	f, ok := b.Fragments[src]
	return f, ok
}

// ResultMetadata describes how a GenerationResult was produced.
type ResultMetadata struct {
	StrategyUsed   string    `json:"strategyUsed"`
	GenerationType string    `json:"generationType"`
	Confidence     float64   `json:"confidence"`
	Degraded       bool      `json:"degraded"`
	Cached         bool      `json:"cached"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// GenerationResult is the terminal output of the pipeline. Content is never
// empty by the time it reaches a caller.
type GenerationResult struct {
	Content  string         `json:"content"`
	Metadata ResultMetadata `json:"metadata"`
}
