package driving

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// ModuleUploader pushes resolved modules and sections to Moodle.
type ModuleUploader interface {
	// UploadModule prepares the editor contents and files of one target and
	// calls its update operation. The raw remote result is returned.
	UploadModule(ctx context.Context, root domain.Path, target domain.Target) (any, error)

	// UploadAll uploads entries in order and stops at the first failure.
	// The report holds the results of every entry uploaded so far.
	UploadAll(ctx context.Context, entries []domain.ResolvedEntry) (*UploadReport, error)
}

// UploadReport summarises one upload run.
type UploadReport struct {
	// RunID identifies the run in logs.
	RunID string

	// Results lists one entry per uploaded target, in upload order.
	Results []UploadResult
}

// UploadResult is the outcome of one target's update call.
type UploadResult struct {
	Location string
	Tag      domain.ModType
	Result   any
}
