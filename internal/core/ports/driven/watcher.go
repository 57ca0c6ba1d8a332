package driven

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// FileWatcher blocks until one of a set of files changes.
type FileWatcher interface {
	// WaitForChange returns the first path among paths that was written,
	// created, renamed or removed. It returns ctx.Err() when ctx is done.
	WaitForChange(ctx context.Context, paths []domain.Path) (domain.Path, error)
}
