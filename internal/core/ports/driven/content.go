package driven

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// ContentService updates module and section content remotely.
// A nil editor payload is sent as empty text. A nil item reference means
// "no files"; implementations decide whether to omit it or send zero.
// Each method returns the raw decoded result; "ok" means success.
type ContentService interface {
	UpdateAssignContent(ctx context.Context, req AssignUpdate) (any, error)
	UpdateFolderContent(ctx context.Context, req FolderUpdate) (any, error)
	UpdateLabelContent(ctx context.Context, req LabelUpdate) (any, error)
	UpdatePageContent(ctx context.Context, req PageUpdate) (any, error)
	UpdateResourceContent(ctx context.Context, req ResourceUpdate) (any, error)
	UpdateSectionContent(ctx context.Context, req SectionUpdate) (any, error)
}

// AssignUpdate is the payload of update_assign_content.
type AssignUpdate struct {
	CMID        int
	Intro       *domain.EditorPayload
	Activity    *domain.EditorPayload
	Attachments *int
}

// FolderUpdate is the payload of update_folder_content.
type FolderUpdate struct {
	CMID  int
	Intro *domain.EditorPayload
	Files *int
}

// LabelUpdate is the payload of update_label_content.
type LabelUpdate struct {
	CMID  int
	Intro *domain.EditorPayload
}

// PageUpdate is the payload of update_page_content.
type PageUpdate struct {
	CMID  int
	Intro *domain.EditorPayload
	Page  *domain.EditorPayload
}

// ResourceUpdate is the payload of update_resource_content.
type ResourceUpdate struct {
	CMID  int
	Intro *domain.EditorPayload
	Files *int
}

// SectionUpdate is the payload of update_section_content.
type SectionUpdate struct {
	Section int
	Summary *domain.EditorPayload
}
