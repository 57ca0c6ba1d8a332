package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

func TestNew_DefaultDebounce(t *testing.T) {
	assert.Equal(t, DefaultDebounce, New(0).debounce)
	assert.Equal(t, time.Second, New(time.Second).debounce)
}

func TestWatcher_WaitForChangeEmpty(t *testing.T) {
	_, err := New(0).WaitForChange(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWatcher_WaitForChangeCancelled(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "page.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(0).WaitForChange(ctx, []domain.Path{domain.NewPath(file)})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWatcher_WaitForChangeWrite(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "page.md")
	other := filepath.Join(dir, "other.md")
	require.NoError(t, os.WriteFile(watched, []byte("x"), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(other, []byte("ignored"), 0o600)
		_ = os.WriteFile(watched, []byte("changed"), 0o600)
	}()

	got, err := New(20*time.Millisecond).WaitForChange(ctx, []domain.Path{domain.NewPath(watched)})

	require.NoError(t, err)
	assert.Equal(t, domain.NewPath(watched), got)
}

func TestWatcher_WaitForChangeMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "m.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("mod: label"), 0o600))
	paths := []domain.Path{
		domain.NewPath(manifest),
		domain.NewPath(filepath.Join(dir, "missing", "doc.pdf")),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(0).WaitForChange(ctx, paths)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWatcher_WaitForChangeWriteBesideMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "m.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("mod: label"), 0o600))
	paths := []domain.Path{
		domain.NewPath(filepath.Join(dir, "missing", "deeper", "doc.pdf")),
		domain.NewPath(manifest),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(manifest, []byte("mod: page"), 0o600)
	}()

	got, err := New(20*time.Millisecond).WaitForChange(ctx, paths)

	require.NoError(t, err)
	assert.Equal(t, domain.NewPath(manifest), got)
}

func TestAddDir_NearestExistingAncestor(t *testing.T) {
	dir := t.TempDir()
	fsw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer fsw.Close()

	added := make(map[string]bool)
	require.NoError(t, addDir(fsw, filepath.Join(dir, "a", "b"), added))
	require.NoError(t, addDir(fsw, filepath.Join(dir, "a"), added))

	assert.Equal(t, map[string]bool{dir: true}, added)
	assert.Equal(t, []string{dir}, fsw.WatchList())
}

func TestHandleEvent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.typ")
	watched := map[string]domain.Path{file: domain.NewPath(file)}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create", fsnotify.Event{Name: file, Op: fsnotify.Create}, true},
		{"write", fsnotify.Event{Name: file, Op: fsnotify.Write}, true},
		{"remove", fsnotify.Event{Name: file, Op: fsnotify.Remove}, true},
		{"rename", fsnotify.Event{Name: file, Op: fsnotify.Rename}, true},
		{"chmod ignored", fsnotify.Event{Name: file, Op: fsnotify.Chmod}, false},
		{"unwatched file", fsnotify.Event{Name: filepath.Join(dir, "b.typ"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := handleEvent(watched, tt.event)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, domain.NewPath(file), p)
			}
		})
	}
}
