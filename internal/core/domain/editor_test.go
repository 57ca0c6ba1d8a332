package domain

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewEditorContent tests the accepted shapes of editor content.
func TestNewEditorContent(t *testing.T) {
	e, err := NewEditorContent(RawManifest{"source": "intro.md"})
	require.NoError(t, err)
	assert.Equal(t, Path("intro.md"), e.Source)
	assert.Equal(t, []Path{}, e.Attachments)

	e, err = NewEditorContent(RawManifest{
		"source":      "intro.md",
		"attachments": []any{"img/a.png", "img/b.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Path{NewPath("img/a.png"), NewPath("img/b.png")}, e.Attachments)
}

func TestNewEditorContent_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  RawManifest
	}{
		{"missing source", RawManifest{"attachments": []any{}}},
		{"source not a string", RawManifest{"source": 4}},
		{"attachments not a list", RawManifest{"source": "a.md", "attachments": "b.png"}},
		{"unknown field", RawManifest{"source": "a.md", "format": "html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEditorContent(tt.raw)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

// TestCoerceEditorContent_Instances tests that ready-made values get the
// same cleaning as parsed mappings.
func TestCoerceEditorContent_Instances(t *testing.T) {
	given := &EditorContent{Source: "./text/../intro.md", Attachments: []Path{"img//a.png"}}

	for _, v := range []any{given, *given} {
		e, err := coerceEditorContent(v)
		require.NoError(t, err)
		assert.Equal(t, &EditorContent{Source: "intro.md", Attachments: []Path{NewPath("img/a.png")}}, e)
	}
	assert.Equal(t, Path("./text/../intro.md"), given.Source)

	e, err := coerceEditorContent(EditorContent{Source: "intro.md"})
	require.NoError(t, err)
	assert.NotNil(t, e.Attachments)
	assert.Empty(t, e.Attachments)

	e, err = coerceEditorContent((*EditorContent)(nil))
	require.NoError(t, err)
	assert.Nil(t, e)

	_, err = coerceEditorContent(EditorContent{})
	assert.Error(t, err)
}

// TestNewModuleMeta_EditorInstance tests a page built from an in-memory
// editor value.
func TestNewModuleMeta_EditorInstance(t *testing.T) {
	meta, err := NewModuleMeta(RawManifest{
		"mod": "page", "cmid": 1,
		"page": EditorContent{Source: "pages/./a.md"},
	})
	require.NoError(t, err)
	page, ok := meta.(*PageMeta)
	require.True(t, ok)
	assert.Equal(t, &EditorContent{Source: NewPath("pages/a.md"), Attachments: []Path{}}, page.Page)

	_, err = NewModuleMeta(RawManifest{"mod": "page", "cmid": 1, "page": &EditorContent{}})
	assert.ErrorIs(t, err, ErrParse)
}

func TestEditorContent_Dependencies(t *testing.T) {
	e := &EditorContent{Source: "page.md", Attachments: []Path{"img/a.png"}}

	deps, err := e.Dependencies("course", nil)
	require.NoError(t, err)
	assert.Equal(t, []Path{
		Path(filepath.Join("course", "img", "a.png")),
		Path(filepath.Join("course", "page.md")),
	}, deps.Sorted())
}

func TestEditorContent_Dependencies_Nil(t *testing.T) {
	var e *EditorContent
	deps, err := e.Dependencies("course", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, deps.Len())
}

func TestEditorContent_Dependencies_Typst(t *testing.T) {
	e := &EditorContent{Source: "sheet.typ"}

	var queried Path
	declared := func(source Path) ([]Path, error) {
		queried = source
		return []Path{"figures/plot.svg", "common.typ"}, nil
	}

	deps, err := e.Dependencies("course", declared)
	require.NoError(t, err)
	assert.Equal(t, Path(filepath.Join("course", "sheet.typ")), queried)
	assert.True(t, deps.Contains(Path(filepath.Join("course", "figures", "plot.svg"))))
	assert.True(t, deps.Contains(Path(filepath.Join("course", "common.typ"))))
	assert.Equal(t, 3, deps.Len())
}

func TestEditorContent_Dependencies_NonTypstSkipsQuery(t *testing.T) {
	e := &EditorContent{Source: "page.md"}
	declared := func(Path) ([]Path, error) {
		t.Fatal("declared files queried for a markdown source")
		return nil, nil
	}
	_, err := e.Dependencies("", declared)
	require.NoError(t, err)
}

func TestEditorContent_Dependencies_QueryError(t *testing.T) {
	boom := errors.New("typst failed")
	e := &EditorContent{Source: "sheet.typ"}
	_, err := e.Dependencies("", func(Path) ([]Path, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestPathsFromMetadata(t *testing.T) {
	paths, err := PathsFromMetadata(LabelAttachments, []any{
		"a.png",
		[]any{"b.png", "c/d.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Path{"a.png", "b.png", NewPath("c/d.png")}, paths)

	paths, err = PathsFromMetadata(LabelDependencies, nil)
	require.NoError(t, err)
	assert.Empty(t, paths)

	_, err = PathsFromMetadata(LabelAttachments, []any{42})
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "<attachments>")
}
