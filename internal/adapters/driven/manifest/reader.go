package manifest

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.ManifestReader = (*Reader)(nil)

// Reader dispatches on the manifest file extension.
type Reader struct {
	compiler driven.DocumentCompiler
}

// NewReader creates a manifest reader. compiler may be nil, in which case
// Typst manifests are rejected.
func NewReader(compiler driven.DocumentCompiler) *Reader {
	return &Reader{compiler: compiler}
}

// SupportedExtensions lists the extensions Read accepts.
func (r *Reader) SupportedExtensions() []string {
	return []string{domain.ExtYAML, domain.ExtYML, domain.ExtMarkdown, domain.ExtTypst}
}

// Read parses the manifest at path.
func (r *Reader) Read(ctx context.Context, path domain.Path) (domain.RawManifest, error) {
	switch ext := path.Ext(); ext {
	case domain.ExtYAML, domain.ExtYML:
		return r.readYAML(path)
	case domain.ExtMarkdown:
		return r.readMarkdown(path)
	case domain.ExtTypst:
		return r.readTypst(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q; supported are YAML (.yaml, .yml), Markdown (.md) and Typst (.typ)",
			domain.ErrUnsupportedFormat, ext)
	}
}

func (r *Reader) readYAML(path domain.Path) (domain.RawManifest, error) {
	data, err := os.ReadFile(path.String())
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return decodeMapping(data)
}

func (r *Reader) readMarkdown(path domain.Path) (domain.RawManifest, error) {
	data, err := os.ReadFile(path.String())
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	front, _, ok := domain.SplitFrontMatter(string(data))
	if !ok {
		return nil, fmt.Errorf("%w: no front matter block delimited by \"---\"", domain.ErrParse)
	}
	return decodeMapping([]byte(front))
}

func (r *Reader) readTypst(ctx context.Context, path domain.Path) (domain.RawManifest, error) {
	if r.compiler == nil {
		return nil, fmt.Errorf("%w: Typst compiler needed to read %s", domain.ErrNotConfigured, path)
	}
	values, err := r.compiler.QueryMetadata(ctx, path, domain.LabelFrontMatter)
	if err != nil {
		return nil, fmt.Errorf("query <%s>: %w", domain.LabelFrontMatter, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one <%s> value, found %d",
			domain.ErrParse, domain.LabelFrontMatter, len(values))
	}
	raw, ok := domain.AsMapping(values[0])
	if !ok {
		return nil, fmt.Errorf("%w: <%s> must be a dictionary, got %T",
			domain.ErrParse, domain.LabelFrontMatter, values[0])
	}
	return raw, nil
}

// decodeMapping decodes one YAML document that must be a mapping.
// Nested mappings are normalised to map[string]any.
func decodeMapping(data []byte) (domain.RawManifest, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if doc == nil {
		return domain.RawManifest{}, nil
	}
	raw, ok := domain.AsMapping(normalise(doc))
	if !ok {
		return nil, fmt.Errorf("%w: manifest must be a mapping, got %T", domain.ErrParse, doc)
	}
	return raw, nil
}

// normalise converts map[any]any produced for non-string keys into
// map[string]any, recursively.
func normalise(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalise(item)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[fmt.Sprint(k)] = normalise(item)
		}
		return m
	case []any:
		for i, item := range t {
			t[i] = normalise(item)
		}
		return t
	default:
		return v
	}
}
