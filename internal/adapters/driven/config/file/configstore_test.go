package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mdl", "config.toml"), store.Path())
}

func TestConfigStore_Getters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("moodle.base_url", "https://moodle.example.org"))
	require.NoError(t, store.Set("moodle.requests_per_second", 5))
	require.NoError(t, store.Set("upload.verify", true))

	assert.Equal(t, "https://moodle.example.org", store.GetString("moodle.base_url"))
	assert.Equal(t, 5, store.GetInt("moodle.requests_per_second"))
	assert.True(t, store.GetBool("upload.verify"))

	// Missing keys and wrong types yield zero values
	assert.Equal(t, "", store.GetString("moodle.token"))
	assert.Equal(t, 0, store.GetInt("moodle.base_url"))
	assert.False(t, store.GetBool("moodle.base_url"))

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

// TestConfigStore_Persistence tests that dotted keys survive a reload.
func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("moodle.base_url", "https://lms.example.org"))
	require.NoError(t, store1.Set("moodle.timeout_seconds", 30))
	require.NoError(t, store1.Set("typst.root", "/srv/course"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://lms.example.org", store2.GetString("moodle.base_url"))
	assert.Equal(t, 30, store2.GetInt("moodle.timeout_seconds"))
	assert.Equal(t, "/srv/course", store2.GetString("typst.root"))
	assert.Equal(t, []string{"moodle.base_url", "moodle.timeout_seconds", "typst.root"}, store2.Keys())
}

// TestConfigStore_WritesTables tests that dotted keys are written as tables.
func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("moodle.base_url", "https://lms.example.org"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[moodle]")
	assert.Regexp(t, `(?m)^base_url = .https://lms\.example\.org.$`, string(data))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[moodle]\nbase_url = \"https://lms.example.org\"\ntoken = \"abc\"\n\n[typst]\nbinary = \"/opt/typst\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "abc", store.GetString("moodle.token"))
	assert.Equal(t, "/opt/typst", store.GetString("typst.binary"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("moodle.token", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
	assert.Len(t, store.Keys(), 10)
}

// TestNewConfigStore_MkdirAllError tests error handling when directory creation fails
func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestNewConfigStore_LoadCorruptedFile tests error handling when loading corrupted TOML
func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestConfigStore_Save_WriteFileError tests error handling when WriteFile fails
func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
	assert.Error(t, store.Save())
}

func TestFlattenAndNest(t *testing.T) {
	nested := map[string]any{
		"moodle": map[string]any{"base_url": "u", "token": "t"},
		"plain":  1,
	}
	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{"moodle.base_url": "u", "moodle.token": "t", "plain": 1}, flat)
	assert.Equal(t, nested, nestMap(flat))

	// A scalar wins over a table with the same prefix.
	assert.Equal(t, map[string]any{"a": 1}, nestMap(map[string]any{"a": 1, "a.b": 2}))
}
