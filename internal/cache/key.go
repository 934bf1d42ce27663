package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"ticketsmith/internal/types"
)

// KeyFields is the normalized identity of a generation. Two requests that
// agree on these fields share a cache entry.
type KeyFields struct {
	Strategy      string
	Platform      types.Platform
	DocumentType  types.DocumentType
	TechStack     string
	ComponentName string
	HasScreenshot bool
}

// Key derives a deterministic cache key. The fields are serialized through a
// map so the JSON encoder emits sorted keys; field ordering at the call site
// cannot change the hash.
func Key(f KeyFields) string {
	raw, err := json.Marshal(map[string]any{
		"strategy":      f.Strategy,
		"platform":      string(f.Platform),
		"documentType":  string(f.DocumentType),
		"techStack":     f.TechStack,
		"componentName": f.ComponentName,
		"hasScreenshot": f.HasScreenshot,
	})
	if err != nil {
		// Marshal of string/bool map cannot fail; keep a stable fallback anyway.
		raw = []byte(f.Strategy + "|" + string(f.Platform) + "|" + string(f.DocumentType) + "|" + f.TechStack + "|" + f.ComponentName)
	}
	sum := sha256.Sum256(raw)
	return "ticket:" + hex.EncodeToString(sum[:])
}

// RequestKey builds the key for a request resolved to a strategy name.
func RequestKey(strategy string, req *types.GenerationRequest) string {
	return Key(KeyFields{
		Strategy:      strategy,
		Platform:      req.Platform,
		DocumentType:  req.DocumentType,
		TechStack:     req.TechStack.String(),
		ComponentName: req.ComponentName,
		HasScreenshot: req.HasScreenshot(),
	})
}
