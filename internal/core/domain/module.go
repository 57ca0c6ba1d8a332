package domain

import (
	"fmt"
	"strings"
)

// ModType is the value of a manifest's "mod" tag.
type ModType string

// Module tags. Tags starting with SpecialPrefix are not Moodle module types.
const (
	ModAssign   ModType = "assign"
	ModFolder   ModType = "folder"
	ModLabel    ModType = "label"
	ModPage     ModType = "page"
	ModResource ModType = "resource"
	ModSection  ModType = "$section"

	SpecialPrefix = "$"
)

// IsSpecial reports whether the tag is a $-prefixed pseudo type.
func (t ModType) IsSpecial() bool {
	return strings.HasPrefix(string(t), SpecialPrefix)
}

// Target is anything a manifest can update: a module or a section.
// The set of implementations is closed.
type Target interface {
	// Tag returns the manifest tag this target was built from.
	Tag() ModType

	// DeclaredCourse returns the course the manifest claims, if any.
	DeclaredCourse() (int, bool)

	// Dependencies returns every local file the target needs, resolved against root.
	Dependencies(root Path, declared DeclaredFiles) (PathSet, error)

	target()
}

// ModuleMeta is a manifest describing one course module, identified by cmid.
type ModuleMeta interface {
	Target

	// Base returns the fields every module shares.
	Base() *ModuleBase
}

// ModuleBase holds the fields shared by all module variants.
type ModuleBase struct {
	Mod    ModType
	Course *int
	CMID   int
	Intro  *EditorContent
}

func (b *ModuleBase) Tag() ModType { return b.Mod }

func (b *ModuleBase) Base() *ModuleBase { return b }

func (b *ModuleBase) DeclaredCourse() (int, bool) {
	if b.Course == nil {
		return 0, false
	}
	return *b.Course, true
}

func (b *ModuleBase) target() {}

// AssignMeta describes an assignment: intro, activity instructions and a flat
// list of additional files.
type AssignMeta struct {
	ModuleBase
	Activity    *EditorContent
	Attachments []Path
}

func (m *AssignMeta) Dependencies(root Path, declared DeclaredFiles) (PathSet, error) {
	deps, err := m.Intro.Dependencies(root, declared)
	if err != nil {
		return nil, err
	}
	activity, err := m.Activity.Dependencies(root, declared)
	if err != nil {
		return nil, err
	}
	deps.Union(activity)
	for _, a := range m.Attachments {
		deps.Add(a.Resolve(root))
	}
	return deps, nil
}

// FolderFile maps a remote file name to the local file uploaded under it.
type FolderFile struct {
	Name string
	Path Path
}

// FolderMeta describes a folder and the files it should contain.
type FolderMeta struct {
	ModuleBase
	Files []FolderFile
}

func (m *FolderMeta) Dependencies(root Path, declared DeclaredFiles) (PathSet, error) {
	deps, err := m.Intro.Dependencies(root, declared)
	if err != nil {
		return nil, err
	}
	for _, f := range m.Files {
		deps.Add(f.Path.Resolve(root))
	}
	return deps, nil
}

// LabelMeta describes a label. Its only content is the intro.
type LabelMeta struct {
	ModuleBase
}

func (m *LabelMeta) Dependencies(root Path, declared DeclaredFiles) (PathSet, error) {
	return m.Intro.Dependencies(root, declared)
}

// PageMeta describes a page.
type PageMeta struct {
	ModuleBase
	Page *EditorContent
}

func (m *PageMeta) Dependencies(root Path, declared DeclaredFiles) (PathSet, error) {
	deps, err := m.Intro.Dependencies(root, declared)
	if err != nil {
		return nil, err
	}
	page, err := m.Page.Dependencies(root, declared)
	if err != nil {
		return nil, err
	}
	deps.Union(page)
	return deps, nil
}

// ResourceMeta describes a resource holding exactly one file.
type ResourceMeta struct {
	ModuleBase
	File Path
}

func (m *ResourceMeta) Dependencies(root Path, declared DeclaredFiles) (PathSet, error) {
	deps, err := m.Intro.Dependencies(root, declared)
	if err != nil {
		return nil, err
	}
	deps.Add(m.File.Resolve(root))
	return deps, nil
}

// NewModuleMeta builds the module variant selected by the raw "mod" field.
// All nested paths and editor contents are coerced before it returns.
func NewModuleMeta(raw RawManifest) (ModuleMeta, error) {
	f := newFieldReader("module", raw)

	tag, err := f.requiredString("mod")
	if err != nil {
		return nil, err
	}
	mod := ModType(tag)
	switch mod {
	case ModAssign, ModFolder, ModLabel, ModPage, ModResource:
	default:
		return nil, fmt.Errorf("%w: Unknown ModuleMeta class %q", ErrParse, tag)
	}
	f.kind = tag

	base := ModuleBase{Mod: mod}
	if base.Course, err = f.optionalInt("course"); err != nil {
		return nil, err
	}
	if base.CMID, err = f.requiredInt("cmid"); err != nil {
		return nil, err
	}
	if base.Intro, err = f.editor("intro"); err != nil {
		return nil, err
	}

	var meta ModuleMeta
	switch mod {
	case ModAssign:
		m := &AssignMeta{ModuleBase: base}
		if m.Activity, err = f.editor("activity"); err != nil {
			return nil, err
		}
		if m.Attachments, err = f.paths("attachments"); err != nil {
			return nil, err
		}
		if m.Attachments == nil {
			m.Attachments = []Path{}
		}
		meta = m
	case ModFolder:
		m := &FolderMeta{ModuleBase: base}
		if m.Files, err = f.folderFiles("files"); err != nil {
			return nil, err
		}
		meta = m
	case ModLabel:
		meta = &LabelMeta{ModuleBase: base}
	case ModPage:
		m := &PageMeta{ModuleBase: base}
		if m.Page, err = f.editor("page"); err != nil {
			return nil, err
		}
		meta = m
	case ModResource:
		m := &ResourceMeta{ModuleBase: base}
		if m.File, err = f.requiredPath("file"); err != nil {
			return nil, err
		}
		meta = m
	}

	if err := f.finish(); err != nil {
		return nil, err
	}
	return meta, nil
}

// ParseTarget builds a module or a section from a raw mapping with a "mod" tag.
func ParseTarget(raw RawManifest) (Target, error) {
	tag, ok := raw["mod"].(string)
	if !ok {
		return NewModuleMeta(raw)
	}
	mod := ModType(tag)
	switch {
	case mod == ModSection:
		body := raw.Clone()
		delete(body, "mod")
		return NewSectionMeta(body)
	case mod.IsSpecial():
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecialType, tag)
	default:
		return NewModuleMeta(raw)
	}
}

// coerceFolderFiles accepts a list of local paths, uploaded under their base
// names, or a mapping from remote name to local path, ordered by remote name.
func coerceFolderFiles(v any) ([]FolderFile, error) {
	if mapping, ok := AsMapping(v); ok {
		names := mapping.Keys()
		files := make([]FolderFile, 0, len(names))
		for _, name := range names {
			p, err := coercePath(mapping[name])
			if err != nil {
				return nil, fmt.Errorf("%q: %w", name, err)
			}
			files = append(files, FolderFile{Name: name, Path: p})
		}
		return files, nil
	}

	paths, err := coercePaths(v)
	if err != nil {
		return nil, fmt.Errorf("expected list or mapping of paths: %w", err)
	}
	files := make([]FolderFile, len(paths))
	for i, p := range paths {
		files[i] = FolderFile{Name: p.Base(), Path: p}
	}
	return files, nil
}
