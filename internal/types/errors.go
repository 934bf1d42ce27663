package types

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a malformed or missing request field. It is the
// one error class that fails fast instead of cascading.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrDependencyUnavailable marks an external collaborator that is
// unreachable or unconfigured. Triggers a cascade advance, never a caller
// error.
var ErrDependencyUnavailable = errors.New("dependency unavailable")

// ErrGenerationFailure marks a tier that ran but produced no usable content.
var ErrGenerationFailure = errors.New("generation produced no usable content")

// Validate checks the fields a generation request cannot do without.
func (r *GenerationRequest) Validate() error {
	if r == nil {
		return &ValidationError{Field: "request", Reason: "is nil"}
	}
	if strings.TrimSpace(r.ComponentName) == "" {
		return &ValidationError{Field: "componentName", Reason: "is required"}
	}
	switch r.Platform {
	case PlatformJira, PlatformGitHub, PlatformConfluence:
	case "":
		return &ValidationError{Field: "platform", Reason: "is required"}
	default:
		return &ValidationError{Field: "platform", Reason: fmt.Sprintf("unknown platform %q", r.Platform)}
	}
	switch r.DocumentType {
	case DocComponent, DocFeature, DocBug:
	case "":
		return &ValidationError{Field: "documentType", Reason: "is required"}
	default:
		return &ValidationError{Field: "documentType", Reason: fmt.Sprintf("unknown document type %q", r.DocumentType)}
	}
	return nil
}
