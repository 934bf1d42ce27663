package cache

import (
	"testing"

	"ticketsmith/internal/types"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key(KeyFields{
		Strategy:      "emergency",
		Platform:      types.PlatformJira,
		DocumentType:  types.DocComponent,
		TechStack:     "React",
		ComponentName: "Button",
	})
	b := Key(KeyFields{
		ComponentName: "Button",
		TechStack:     "React",
		DocumentType:  types.DocComponent,
		Platform:      types.PlatformJira,
		Strategy:      "emergency",
	})
	if a != b {
		t.Fatalf("field construction order changed the key: %s vs %s", a, b)
	}
}

func TestKeyVariesWithFields(t *testing.T) {
	base := KeyFields{
		Strategy:      "emergency",
		Platform:      types.PlatformJira,
		DocumentType:  types.DocComponent,
		TechStack:     "React",
		ComponentName: "Button",
	}
	withShot := base
	withShot.HasScreenshot = true
	if Key(base) == Key(withShot) {
		t.Fatalf("screenshot presence must change the key")
	}
	otherPlatform := base
	otherPlatform.Platform = types.PlatformGitHub
	if Key(base) == Key(otherPlatform) {
		t.Fatalf("platform must change the key")
	}
}

func TestRequestKeyMatchesFieldKey(t *testing.T) {
	req := &types.GenerationRequest{
		ComponentName: "Button",
		Platform:      types.PlatformJira,
		DocumentType:  types.DocComponent,
		TechStack:     types.TechStack{"React"},
	}
	got := RequestKey("emergency", req)
	want := Key(KeyFields{
		Strategy:      "emergency",
		Platform:      types.PlatformJira,
		DocumentType:  types.DocComponent,
		TechStack:     "React",
		ComponentName: "Button",
	})
	if got != want {
		t.Fatalf("request key mismatch: %s vs %s", got, want)
	}
}
