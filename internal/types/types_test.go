package types

import (
	"encoding/json"
	"testing"
)

func TestTechStackUnmarshalString(t *testing.T) {
	var req GenerationRequest
	raw := `{"componentName":"Button","platform":"jira","documentType":"component","techStack":"React"}`
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := req.TechStack.String(); got != "React" {
		t.Fatalf("unexpected tech stack: %q", got)
	}
}

func TestTechStackUnmarshalList(t *testing.T) {
	var req GenerationRequest
	raw := `{"componentName":"Button","platform":"jira","documentType":"component","techStack":["React"," TypeScript ",""]}`
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := req.TechStack.String(); got != "React, TypeScript" {
		t.Fatalf("unexpected tech stack: %q", got)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		req  GenerationRequest
	}{
		{"missing name", GenerationRequest{Platform: PlatformJira, DocumentType: DocComponent}},
		{"missing platform", GenerationRequest{ComponentName: "Button", DocumentType: DocComponent}},
		{"bad platform", GenerationRequest{ComponentName: "Button", Platform: "asana", DocumentType: DocComponent}},
		{"missing doc type", GenerationRequest{ComponentName: "Button", Platform: PlatformJira}},
		{"bad doc type", GenerationRequest{ComponentName: "Button", Platform: PlatformJira, DocumentType: "epic"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !IsValidation(err) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateAcceptsCompleteRequest(t *testing.T) {
	req := GenerationRequest{ComponentName: "Button", Platform: PlatformGitHub, DocumentType: DocFeature}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHasFrameData(t *testing.T) {
	var req GenerationRequest
	if req.HasFrameData() {
		t.Fatalf("empty request should have no frame data")
	}
	req.FrameData = []*FrameNode{{Name: "Button"}}
	if !req.HasFrameData() {
		t.Fatalf("expected frame data")
	}
}
