package domain

import "fmt"

// Metadata labels a Typst document can declare.
const (
	LabelFrontMatter  = "frontmatter"
	LabelAttachments  = "attachments"
	LabelDependencies = "dependencies"
)

// DeclaredFiles reports the extra files a Typst document declares through its
// attachments and dependencies metadata. source is already resolved; the
// returned paths are relative to the same root as the manifest.
type DeclaredFiles func(source Path) ([]Path, error)

// EditorContent is one unit of rich text: a source document plus the files
// it embeds. Source is always set.
type EditorContent struct {
	Source      Path
	Attachments []Path
}

// NewEditorContent builds editor content from a raw mapping with the keys
// "source" (required) and "attachments" (optional list).
func NewEditorContent(raw RawManifest) (*EditorContent, error) {
	f := newFieldReader("editor content", raw)

	source, err := f.requiredPath("source")
	if err != nil {
		return nil, err
	}
	attachments, err := f.paths("attachments")
	if err != nil {
		return nil, err
	}
	if err := f.finish(); err != nil {
		return nil, err
	}

	if attachments == nil {
		attachments = []Path{}
	}
	return &EditorContent{Source: source, Attachments: attachments}, nil
}

// Dependencies returns the source and attachments resolved against root.
// For Typst sources the files the document declares are added when declared
// is non-nil.
func (e *EditorContent) Dependencies(root Path, declared DeclaredFiles) (PathSet, error) {
	deps := NewPathSet()
	if e == nil {
		return deps, nil
	}

	source := e.Source.Resolve(root)
	deps.Add(source)
	for _, a := range e.Attachments {
		deps.Add(a.Resolve(root))
	}

	if source.IsTypst() && declared != nil {
		extra, err := declared(source)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", source, err)
		}
		for _, p := range extra {
			deps.Add(p.Resolve(root))
		}
	}
	return deps, nil
}

// PathsFromMetadata converts Typst metadata values into paths. Each value is
// either a single path string or a list of path strings.
func PathsFromMetadata(label string, values []any) ([]Path, error) {
	var paths []Path
	for i, v := range values {
		switch item := v.(type) {
		case string:
			p, err := coercePath(item)
			if err != nil {
				return nil, fmt.Errorf("%w: <%s>[%d]: %v", ErrParse, label, i, err)
			}
			paths = append(paths, p)
		case []any:
			list, err := coercePaths(item)
			if err != nil {
				return nil, fmt.Errorf("%w: <%s>[%d]%v", ErrParse, label, i, err)
			}
			paths = append(paths, list...)
		default:
			return nil, fmt.Errorf("%w: <%s>[%d]: expected path, got %T", ErrParse, label, i, v)
		}
	}
	return paths, nil
}

func coerceEditorContent(v any) (*EditorContent, error) {
	switch e := v.(type) {
	case *EditorContent:
		if e == nil {
			return nil, nil
		}
		return e.normalised()
	case EditorContent:
		return e.normalised()
	default:
		raw, ok := AsMapping(v)
		if !ok {
			return nil, fmt.Errorf("expected editor content mapping, got %T", v)
		}
		return NewEditorContent(raw)
	}
}

// normalised returns a cleaned copy of e with the same guarantees as
// NewEditorContent.
func (e *EditorContent) normalised() (*EditorContent, error) {
	if e.Source == "" {
		return nil, fmt.Errorf("editor content has no source")
	}
	source, err := coercePath(e.Source)
	if err != nil {
		return nil, err
	}
	attachments, err := coercePaths(e.Attachments)
	if err != nil {
		return nil, err
	}
	return &EditorContent{Source: source, Attachments: attachments}, nil
}
