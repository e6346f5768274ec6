package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gderrors "github.com/mizushima/gdforge/internal/errors"
)

func TestListFiles(t *testing.T) {
	s := New()
	dir := t.TempDir()
	for _, name := range []string{"Weapons.json", "Actors.json", "notes.txt", "Items.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	names, err := s.ListFiles(dir, ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{"Actors.json", "Items.json", "Weapons.json"}, names)

	all, err := s.ListFiles(dir, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestListFilesAbsentDir(t *testing.T) {
	s := New()
	names, err := s.ListFiles(filepath.Join(t.TempDir(), "missing"), ".json")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEnsureDirIdempotent(t *testing.T) {
	s := New()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, s.EnsureDir(dir))
	require.NoError(t, s.EnsureDir(dir))
	assert.True(t, s.Exists(dir))
}

func TestDeleteFile(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "gone.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	require.NoError(t, s.DeleteFile(path))
	assert.False(t, s.Exists(path))

	err := s.DeleteFile(path)
	assert.Equal(t, gderrors.CodeIO, gderrors.CodeOf(err))
}

func TestCopyFile(t *testing.T) {
	s := New()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.json")
	dst := filepath.Join(dir, "dst.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"a":1}`), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("stale"), 0o644))

	require.NoError(t, s.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}
