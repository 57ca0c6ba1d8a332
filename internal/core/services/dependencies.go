package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// Dependencies returns the union of every entry's dependency set plus the
// manifest files the entries were read from.
func (r *ManifestResolver) Dependencies(ctx context.Context, entries []domain.ResolvedEntry) (domain.PathSet, error) {
	deps := domain.NewPathSet()
	declared := r.declaredFiles(ctx)

	for _, e := range entries {
		if e.File != "" {
			deps.Add(e.File)
		}
		targetDeps, err := e.Target.Dependencies(e.Root, declared)
		if err != nil {
			return nil, locate(e.Location, err)
		}
		deps.Union(targetDeps)
	}
	return deps, nil
}

// declaredFiles queries a Typst source for the files listed in its
// attachments and dependencies metadata. Nil when no compiler is configured.
func (r *ManifestResolver) declaredFiles(ctx context.Context) domain.DeclaredFiles {
	if r.compiler == nil {
		return nil
	}
	return func(source domain.Path) ([]domain.Path, error) {
		var paths []domain.Path
		for _, label := range []string{domain.LabelAttachments, domain.LabelDependencies} {
			values, err := r.compiler.QueryMetadata(ctx, source, label)
			if err != nil {
				return nil, fmt.Errorf("query <%s>: %w", label, err)
			}
			found, err := domain.PathsFromMetadata(label, values)
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
		}
		return paths, nil
	}
}
