package moodle

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
)

// Update functions of the local_modcontentservice plugin.
const (
	FuncUpdateAssign   = "local_modcontentservice_update_assign_content"
	FuncUpdateFolder   = "local_modcontentservice_update_folder_content"
	FuncUpdateLabel    = "local_modcontentservice_update_label_content"
	FuncUpdatePage     = "local_modcontentservice_update_page_content"
	FuncUpdateResource = "local_modcontentservice_update_resource_content"
	FuncUpdateSection  = "local_modcontentservice_update_section_content"
)

// Ensure ContentService implements the interface.
var _ driven.ContentService = (*ContentService)(nil)

// ContentService calls the modcontentservice update functions.
// Missing editors are sent as empty text and missing file areas as item 0.
type ContentService struct {
	remote driven.RemoteService
}

// NewContentService creates a content service on top of remote.
func NewContentService(remote driven.RemoteService) *ContentService {
	return &ContentService{remote: remote}
}

func (s *ContentService) call(ctx context.Context, function string, params map[string]any) (any, error) {
	var result any
	if err := s.remote.Post(ctx, function, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateAssignContent replaces an assignment's intro, activity and attachments.
func (s *ContentService) UpdateAssignContent(ctx context.Context, req driven.AssignUpdate) (any, error) {
	return s.call(ctx, FuncUpdateAssign, map[string]any{
		"cmid":        req.CMID,
		"intro":       editor(req.Intro),
		"activity":    editor(req.Activity),
		"attachments": itemOrZero(req.Attachments),
	})
}

// UpdateFolderContent replaces a folder's intro and files.
func (s *ContentService) UpdateFolderContent(ctx context.Context, req driven.FolderUpdate) (any, error) {
	return s.call(ctx, FuncUpdateFolder, map[string]any{
		"cmid":  req.CMID,
		"intro": editor(req.Intro),
		"files": itemOrZero(req.Files),
	})
}

// UpdateLabelContent replaces a label's text.
func (s *ContentService) UpdateLabelContent(ctx context.Context, req driven.LabelUpdate) (any, error) {
	return s.call(ctx, FuncUpdateLabel, map[string]any{
		"cmid":  req.CMID,
		"intro": editor(req.Intro),
	})
}

// UpdatePageContent replaces a page's intro and content.
func (s *ContentService) UpdatePageContent(ctx context.Context, req driven.PageUpdate) (any, error) {
	return s.call(ctx, FuncUpdatePage, map[string]any{
		"cmid":  req.CMID,
		"intro": editor(req.Intro),
		"page":  editor(req.Page),
	})
}

// UpdateResourceContent replaces a resource's intro and file.
func (s *ContentService) UpdateResourceContent(ctx context.Context, req driven.ResourceUpdate) (any, error) {
	return s.call(ctx, FuncUpdateResource, map[string]any{
		"cmid":  req.CMID,
		"intro": editor(req.Intro),
		"files": itemOrZero(req.Files),
	})
}

// UpdateSectionContent replaces a section's summary.
func (s *ContentService) UpdateSectionContent(ctx context.Context, req driven.SectionUpdate) (any, error) {
	return s.call(ctx, FuncUpdateSection, map[string]any{
		"section": req.Section,
		"summary": editor(req.Summary),
	})
}

// editor encodes an editor payload. The itemid key is omitted when the
// editor has no files.
func editor(p *domain.EditorPayload) map[string]any {
	if p == nil {
		return map[string]any{"text": ""}
	}
	m := map[string]any{
		"text":   p.Text,
		"format": int(p.Format),
	}
	if p.ItemID != nil {
		m["itemid"] = *p.ItemID
	}
	return m
}

func itemOrZero(itemID *int) int {
	if itemID == nil {
		return 0
	}
	return *itemID
}
