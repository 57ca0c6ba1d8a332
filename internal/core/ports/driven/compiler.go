package driven

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// DocumentCompiler compiles Typst documents and queries their metadata.
type DocumentCompiler interface {
	// Compile renders source to a complete HTML document.
	Compile(ctx context.Context, source domain.Path) (string, error)

	// QueryMetadata returns the values of all metadata elements carrying label,
	// in document order.
	QueryMetadata(ctx context.Context, source domain.Path, label string) ([]any, error)
}
