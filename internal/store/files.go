package store

import (
	"io"
	"os"
	"strings"

	gderrors "github.com/mizushima/gdforge/internal/errors"
)

// Exists reports whether a file or directory exists at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory at path, including parents. Idempotent.
func (s *Store) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return gderrors.IO("failed to create directory", path, err)
	}
	return nil
}

// ListFiles returns the sorted names of regular files in dir, optionally
// filtered by extension (e.g. ".json"). An absent directory yields an empty
// list, not an error.
func (s *Store) ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, gderrors.IO("failed to list directory", dir, err)
	}

	// os.ReadDir returns entries sorted by name.
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext != "" && !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// DeleteFile removes the file at path.
func (s *Store) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return gderrors.IO("failed to delete file", path, err)
	}
	return nil
}

// CopyFile copies src to dst, overwriting dst if it exists.
func (s *Store) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return gderrors.IO("failed to open source file", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst)
	if err != nil {
		return gderrors.IO("failed to create destination file", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return gderrors.IO("failed to copy file", dst, err)
	}
	if err := out.Close(); err != nil {
		return gderrors.IO("failed to finish copying file", dst, err)
	}
	return nil
}
