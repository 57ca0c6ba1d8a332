package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
)

// --- Fakes shared by the service tests ---

// fakeReader implements driven.ManifestReader from an in-memory map.
type fakeReader struct {
	manifests map[domain.Path]domain.RawManifest
	reads     []domain.Path
}

func (r *fakeReader) Read(_ context.Context, path domain.Path) (domain.RawManifest, error) {
	r.reads = append(r.reads, path)
	raw, ok := r.manifests[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	// Resolution must not mutate what the reader handed out.
	return raw.Clone(), nil
}

func (r *fakeReader) SupportedExtensions() []string {
	return []string{domain.ExtYAML}
}

// fakeRemote implements driven.RemoteService.
type fakeRemote struct {
	modules   map[int]domain.CourseModule
	sections  map[int][]domain.Section
	courses   []domain.Course
	uploads   [][]domain.UploadFile
	nextItem  int
	uploadErr error

	moduleCalls   int
	contentsCalls []bool
	searchFilter  domain.CourseFilter
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		modules:  make(map[int]domain.CourseModule),
		sections: make(map[int][]domain.Section),
		nextItem: 100,
	}
}

func (r *fakeRemote) Post(_ context.Context, function string, _ map[string]any, _ any) error {
	return fmt.Errorf("unexpected call to %s", function)
}

func (r *fakeRemote) UploadFiles(_ context.Context, files []domain.UploadFile) ([]domain.UploadedFile, error) {
	if r.uploadErr != nil {
		return nil, r.uploadErr
	}
	r.uploads = append(r.uploads, files)
	item := r.nextItem
	r.nextItem++
	out := make([]domain.UploadedFile, len(files))
	for i, f := range files {
		out[i] = domain.UploadedFile{ItemID: item, Filename: f.Name, Filepath: "/"}
	}
	return out, nil
}

func (r *fakeRemote) GetCourseModule(_ context.Context, cmid int) (*domain.CourseModule, error) {
	r.moduleCalls++
	cm, ok := r.modules[cmid]
	if !ok {
		return nil, fmt.Errorf("%w: module %d", domain.ErrNotFound, cmid)
	}
	return &cm, nil
}

func (r *fakeRemote) GetCourseContents(_ context.Context, courseID int, excludeModules bool) ([]domain.Section, error) {
	r.contentsCalls = append(r.contentsCalls, excludeModules)
	sections, ok := r.sections[courseID]
	if !ok {
		return nil, fmt.Errorf("%w: course %d", domain.ErrNotFound, courseID)
	}
	return sections, nil
}

func (r *fakeRemote) SearchCourses(_ context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	r.searchFilter = filter
	return r.courses, nil
}

// fakeContent implements driven.ContentService and records every request.
type fakeContent struct {
	requests []any
	result   any
	err      error
}

func (c *fakeContent) record(req any) (any, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if c.result == nil {
		return resultOK, nil
	}
	return c.result, nil
}

func (c *fakeContent) UpdateAssignContent(_ context.Context, req driven.AssignUpdate) (any, error) {
	return c.record(req)
}

func (c *fakeContent) UpdateFolderContent(_ context.Context, req driven.FolderUpdate) (any, error) {
	return c.record(req)
}

func (c *fakeContent) UpdateLabelContent(_ context.Context, req driven.LabelUpdate) (any, error) {
	return c.record(req)
}

func (c *fakeContent) UpdatePageContent(_ context.Context, req driven.PageUpdate) (any, error) {
	return c.record(req)
}

func (c *fakeContent) UpdateResourceContent(_ context.Context, req driven.ResourceUpdate) (any, error) {
	return c.record(req)
}

func (c *fakeContent) UpdateSectionContent(_ context.Context, req driven.SectionUpdate) (any, error) {
	return c.record(req)
}

// fakeRegistry implements driven.NormaliserRegistry with canned results.
type fakeRegistry struct {
	results map[domain.Path]*driven.NormaliseResult
	calls   []domain.Path
}

func (r *fakeRegistry) Normalise(_ context.Context, source domain.Path) (*driven.NormaliseResult, error) {
	r.calls = append(r.calls, source)
	if res, ok := r.results[source]; ok {
		return res, nil
	}
	return &driven.NormaliseResult{
		Text:   "<p>" + source.Base() + "</p>",
		Format: domain.FormatForExtension(source.Ext()),
	}, nil
}

func (r *fakeRegistry) Register(driven.Normaliser) {}

func (r *fakeRegistry) SupportedExtensions() []string { return nil }

// fakeCompiler implements driven.DocumentCompiler.
type fakeCompiler struct {
	metadata map[domain.Path]map[string][]any
	queryErr error
}

func (c *fakeCompiler) Compile(_ context.Context, source domain.Path) (string, error) {
	return "<html><body>" + source.Base() + "</body></html>", nil
}

func (c *fakeCompiler) QueryMetadata(_ context.Context, source domain.Path, label string) ([]any, error) {
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return c.metadata[source][label], nil
}

func intPtr(n int) *int { return &n }
