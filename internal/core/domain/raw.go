package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// RawManifest is the untyped mapping a manifest reader produces.
// Nested mappings are map[string]any and sequences are []any.
type RawManifest map[string]any

// Clone returns a shallow copy of the mapping.
func (m RawManifest) Clone() RawManifest {
	c := make(RawManifest, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Pop removes key and returns its value.
func (m RawManifest) Pop(key string) (any, bool) {
	v, ok := m[key]
	if ok {
		delete(m, key)
	}
	return v, ok
}

// Keys returns the keys in lexical order.
func (m RawManifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsMapping converts a decoded mapping value into a RawManifest.
// It accepts the shapes YAML and JSON decoders produce.
func AsMapping(v any) (RawManifest, bool) {
	switch m := v.(type) {
	case RawManifest:
		return m, true
	case map[string]any:
		return RawManifest(m), true
	case map[any]any:
		out := make(RawManifest, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// fieldReader coerces the fields of one manifest body eagerly and remembers
// which keys were consumed, so leftovers can be reported.
type fieldReader struct {
	kind string
	raw  RawManifest
	used map[string]bool
}

func newFieldReader(kind string, raw RawManifest) *fieldReader {
	return &fieldReader{kind: kind, raw: raw, used: make(map[string]bool)}
}

func (f *fieldReader) take(key string) (any, bool) {
	f.used[key] = true
	v, ok := f.raw[key]
	if ok && v == nil {
		return nil, false
	}
	return v, ok
}

func (f *fieldReader) errorf(key, format string, args ...any) error {
	return fmt.Errorf("%w: %s: field %q: %s", ErrParse, f.kind, key, fmt.Sprintf(format, args...))
}

func (f *fieldReader) missing(key string) error {
	return fmt.Errorf("%w: %s: missing required field %q", ErrParse, f.kind, key)
}

func (f *fieldReader) requiredString(key string) (string, error) {
	v, ok := f.take(key)
	if !ok {
		return "", f.missing(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", f.errorf(key, "expected string, got %T", v)
	}
	return s, nil
}

func (f *fieldReader) requiredInt(key string) (int, error) {
	n, err := f.optionalInt(key)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, f.missing(key)
	}
	return *n, nil
}

func (f *fieldReader) optionalInt(key string) (*int, error) {
	v, ok := f.take(key)
	if !ok {
		return nil, nil
	}
	n, err := coerceInt(v)
	if err != nil {
		return nil, f.errorf(key, "%v", err)
	}
	return &n, nil
}

func (f *fieldReader) requiredPath(key string) (Path, error) {
	v, ok := f.take(key)
	if !ok {
		return "", f.missing(key)
	}
	p, err := coercePath(v)
	if err != nil {
		return "", f.errorf(key, "%v", err)
	}
	return p, nil
}

func (f *fieldReader) paths(key string) ([]Path, error) {
	v, ok := f.take(key)
	if !ok {
		return nil, nil
	}
	paths, err := coercePaths(v)
	if err != nil {
		return nil, f.errorf(key, "%v", err)
	}
	return paths, nil
}

func (f *fieldReader) editor(key string) (*EditorContent, error) {
	v, ok := f.take(key)
	if !ok {
		return nil, nil
	}
	e, err := coerceEditorContent(v)
	if errors.Is(err, ErrParse) {
		return nil, fmt.Errorf("%s field %q: %w", f.kind, key, err)
	}
	if err != nil {
		return nil, f.errorf(key, "%v", err)
	}
	return e, nil
}

func (f *fieldReader) folderFiles(key string) ([]FolderFile, error) {
	v, ok := f.take(key)
	if !ok {
		return nil, f.missing(key)
	}
	files, err := coerceFolderFiles(v)
	if err != nil {
		return nil, f.errorf(key, "%v", err)
	}
	return files, nil
}

// finish fails when the body holds keys no field consumed.
func (f *fieldReader) finish() error {
	var extra []string
	for _, k := range f.raw.Keys() {
		if !f.used[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		return fmt.Errorf("%w: %s: unexpected fields %q", ErrParse, f.kind, extra)
	}
	return nil
}

func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %s", n)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func coercePath(v any) (Path, error) {
	switch p := v.(type) {
	case Path:
		return NewPath(string(p)), nil
	case string:
		if p == "" {
			return "", fmt.Errorf("empty path")
		}
		return NewPath(p), nil
	default:
		return "", fmt.Errorf("expected path, got %T", v)
	}
}

func coercePaths(v any) ([]Path, error) {
	switch list := v.(type) {
	case []Path:
		out := make([]Path, len(list))
		for i, p := range list {
			out[i] = NewPath(string(p))
		}
		return out, nil
	case []string:
		out := make([]Path, len(list))
		for i, s := range list {
			p, err := coercePath(s)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = p
		}
		return out, nil
	case []any:
		out := make([]Path, len(list))
		for i, item := range list {
			p, err := coercePath(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = p
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of paths, got %T", v)
	}
}
