package driven

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a source file.
// It maintains a priority-ordered list of normalisers and dispatches
// on the source's extension.
type NormaliserRegistry interface {
	// Normalise renders source using the best matching normaliser.
	// Selection priority: extension-specific > fallback.
	Normalise(ctx context.Context, source domain.Path) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedExtensions returns all extensions with a specific normaliser.
	SupportedExtensions() []string
}
