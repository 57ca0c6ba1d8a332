package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/core/ports/driving"
	"github.com/custodia-labs/mdl/internal/logger"
)

// resultOK is the result every update operation returns on success.
const resultOK = "ok"

// Ensure Uploader implements the interface.
var _ driving.ModuleUploader = (*Uploader)(nil)

// Uploader prepares editor content and files and dispatches each target to
// its update operation.
type Uploader struct {
	remote      driven.RemoteService
	content     driven.ContentService
	normalisers driven.NormaliserRegistry
}

// NewUploader creates an uploader.
func NewUploader(
	remote driven.RemoteService,
	content driven.ContentService,
	normalisers driven.NormaliserRegistry,
) *Uploader {
	return &Uploader{
		remote:      remote,
		content:     content,
		normalisers: normalisers,
	}
}

// UploadAll uploads entries in order. The first failing entry stops the run.
func (u *Uploader) UploadAll(ctx context.Context, entries []domain.ResolvedEntry) (*driving.UploadReport, error) {
	report := &driving.UploadReport{RunID: uuid.New().String()}
	logger.Info("Upload run %s: %d entries", report.RunID, len(entries))

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := u.UploadModule(ctx, e.Root, e.Target)
		if err != nil {
			return report, locate(e.Location, err)
		}
		if s, ok := result.(string); !ok || s != resultOK {
			return report, locate(e.Location, fmt.Errorf("%w: update_%s_content returned %v",
				domain.ErrRemoteCall, updateName(e.Target), result))
		}

		logger.Debug("Uploaded %s (%s)", e.Location, e.Target.Tag())
		report.Results = append(report.Results, driving.UploadResult{
			Location: e.Location,
			Tag:      e.Target.Tag(),
			Result:   result,
		})
	}
	return report, nil
}

// UploadModule uploads one target whose relative paths are resolved against root.
//
//nolint:gocyclo // One case per target variant
func (u *Uploader) UploadModule(ctx context.Context, root domain.Path, target domain.Target) (any, error) {
	switch m := target.(type) {
	case *domain.AssignMeta:
		intro, err := u.prepareEditor(ctx, root, m.Intro)
		if err != nil {
			return nil, fmt.Errorf("intro: %w", err)
		}
		activity, err := u.prepareEditor(ctx, root, m.Activity)
		if err != nil {
			return nil, fmt.Errorf("activity: %w", err)
		}
		attachments, err := u.uploadFiles(ctx, root, domain.UploadFilesFor(m.Attachments))
		if err != nil {
			return nil, fmt.Errorf("attachments: %w", err)
		}
		return u.content.UpdateAssignContent(ctx, driven.AssignUpdate{
			CMID: m.CMID, Intro: intro, Activity: activity, Attachments: attachments,
		})

	case *domain.FolderMeta:
		intro, err := u.prepareEditor(ctx, root, m.Intro)
		if err != nil {
			return nil, fmt.Errorf("intro: %w", err)
		}
		files := make([]domain.UploadFile, len(m.Files))
		for i, f := range m.Files {
			files[i] = domain.UploadFile{Name: f.Name, Path: f.Path}
		}
		itemID, err := u.uploadFiles(ctx, root, files)
		if err != nil {
			return nil, fmt.Errorf("files: %w", err)
		}
		return u.content.UpdateFolderContent(ctx, driven.FolderUpdate{
			CMID: m.CMID, Intro: intro, Files: itemID,
		})

	case *domain.LabelMeta:
		intro, err := u.prepareEditor(ctx, root, m.Intro)
		if err != nil {
			return nil, fmt.Errorf("intro: %w", err)
		}
		return u.content.UpdateLabelContent(ctx, driven.LabelUpdate{CMID: m.CMID, Intro: intro})

	case *domain.PageMeta:
		intro, err := u.prepareEditor(ctx, root, m.Intro)
		if err != nil {
			return nil, fmt.Errorf("intro: %w", err)
		}
		page, err := u.prepareEditor(ctx, root, m.Page)
		if err != nil {
			return nil, fmt.Errorf("page: %w", err)
		}
		return u.content.UpdatePageContent(ctx, driven.PageUpdate{CMID: m.CMID, Intro: intro, Page: page})

	case *domain.ResourceMeta:
		intro, err := u.prepareEditor(ctx, root, m.Intro)
		if err != nil {
			return nil, fmt.Errorf("intro: %w", err)
		}
		itemID, err := u.uploadFiles(ctx, root, domain.UploadFilesFor([]domain.Path{m.File}))
		if err != nil {
			return nil, fmt.Errorf("file: %w", err)
		}
		return u.content.UpdateResourceContent(ctx, driven.ResourceUpdate{
			CMID: m.CMID, Intro: intro, Files: itemID,
		})

	case *domain.SectionMeta:
		summary, err := u.prepareEditor(ctx, root, m.Summary)
		if err != nil {
			return nil, fmt.Errorf("summary: %w", err)
		}
		return u.content.UpdateSectionContent(ctx, driven.SectionUpdate{Section: m.Section, Summary: summary})

	default:
		return nil, fmt.Errorf("%w: cannot upload %T", domain.ErrInvalidInput, target)
	}
}

// prepareEditor renders editor content and uploads its attachments.
// Nil content yields a nil payload.
func (u *Uploader) prepareEditor(ctx context.Context, root domain.Path, content *domain.EditorContent) (*domain.EditorPayload, error) {
	if content == nil {
		return nil, nil
	}

	source := content.Source.Resolve(root)
	res, err := u.normalisers.Normalise(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", source, err)
	}

	attachments := make([]domain.Path, 0, len(content.Attachments)+len(res.Attachments))
	attachments = append(attachments, content.Attachments...)
	attachments = append(attachments, res.Attachments...)

	itemID, err := u.uploadFiles(ctx, root, domain.UploadFilesFor(attachments))
	if err != nil {
		return nil, err
	}
	return &domain.EditorPayload{Text: res.Text, Format: res.Format, ItemID: itemID}, nil
}

// uploadFiles uploads the distinct files in one request and returns the
// draft item id. It returns nil without calling the remote when files is empty.
func (u *Uploader) uploadFiles(ctx context.Context, root domain.Path, files []domain.UploadFile) (*int, error) {
	seen := make(map[domain.UploadFile]bool, len(files))
	unique := make([]domain.UploadFile, 0, len(files))
	for _, f := range files {
		f.Path = f.Path.Resolve(root)
		if seen[f] {
			continue
		}
		seen[f] = true
		unique = append(unique, f)
	}
	if len(unique) == 0 {
		return nil, nil
	}
	sort.Slice(unique, func(i, j int) bool {
		if unique[i].Name != unique[j].Name {
			return unique[i].Name < unique[j].Name
		}
		return unique[i].Path < unique[j].Path
	})

	uploaded, err := u.remote.UploadFiles(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("upload %d files: %w", len(unique), err)
	}
	if len(uploaded) == 0 {
		return nil, fmt.Errorf("%w: upload of %d files returned no item", domain.ErrRemoteCall, len(unique))
	}

	itemID := uploaded[0].ItemID
	logger.Debug("Uploaded %d files to draft item %d", len(unique), itemID)
	return &itemID, nil
}

// updateName returns the update operation suffix for a target.
func updateName(target domain.Target) string {
	if target.Tag() == domain.ModSection {
		return "section"
	}
	return string(target.Tag())
}
