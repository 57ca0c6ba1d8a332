package driving

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
)

// ManifestResolver turns manifest files into resolved modules and sections.
type ManifestResolver interface {
	// CollectMetas resolves every input manifest and its children, depth
	// first and in declaration order. When verifyWith is non-nil each entry
	// is checked against the remote course before it is returned.
	// Any failure aborts resolution; no partial result is returned.
	CollectMetas(ctx context.Context, inputs []domain.Path, verifyWith driven.RemoteService) ([]domain.ResolvedEntry, error)

	// Dependencies returns every local file the entries need, including the
	// manifest files themselves.
	Dependencies(ctx context.Context, entries []domain.ResolvedEntry) (domain.PathSet, error)
}
