package driven

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// ManifestReader reads a manifest file into an untyped mapping.
// The format is chosen by the file extension.
type ManifestReader interface {
	Read(ctx context.Context, path domain.Path) (domain.RawManifest, error)

	// SupportedExtensions lists the extensions Read accepts.
	SupportedExtensions() []string
}
