// Package store provides corruption-resistant reads and writes for single
// JSON documents.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/pretty"

	gderrors "github.com/mizushima/gdforge/internal/errors"
	"github.com/mizushima/gdforge/internal/shape"
)

// Store reads and writes JSON documents with automatic backup and atomic
// replacement. Every write follows backup -> temp file -> rename, so a reader
// never observes a half-written document and the previous content survives as
// <path>.bak.
type Store struct {
	indent string
}

// New returns a Store that pretty-prints documents with two-space indentation
// for human-diffable output.
func New() *Store {
	return &Store{indent: "  "}
}

// Write serializes doc and atomically replaces the file at path.
func (s *Store) Write(path string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return gderrors.IO("failed to serialize document", path, err)
	}
	return s.WriteBytes(path, data)
}

// WriteBytes atomically replaces the file at path with the pretty-printed
// form of data. If a file already exists at path it is copied to path+".bak"
// first; a backup failure aborts the write before the target is touched. The
// temporary file is written next to the target so the final rename stays on
// one filesystem and is atomic with respect to concurrent readers.
func (s *Store) WriteBytes(path string, data []byte) error {
	if s.Exists(path) {
		if err := s.CopyFile(path, path+".bak"); err != nil {
			return fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}

	out := pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: s.indent})
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		_ = os.Remove(tmp)
		return gderrors.IO("failed to write temporary file", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		// The temp file may be left behind here. That is surfaced, not
		// retried: the original document is still intact.
		return gderrors.IO("failed to replace document", path, err)
	}
	return nil
}

// ReadBytes reads the raw bytes of a document, checking only that they are
// valid JSON.
func (s *Store) ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gderrors.IO("failed to read document", path, err)
	}
	if !json.Valid(data) {
		return nil, gderrors.Corrupt(path, fmt.Errorf("invalid JSON syntax"))
	}
	return data, nil
}

// ReadRaw parses the document at path into out with no shape check. Callers
// are responsible for their own defensive checks; this exists for documents
// just written by this process and for documents too dynamic to usefully
// validate.
func (s *Store) ReadRaw(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return gderrors.IO("failed to read document", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return gderrors.Corrupt(path, err)
	}
	return nil
}

// ReadValidated parses the document at path, checks it against sh and decodes
// it into out. The document is never partially decoded: a shape mismatch
// fails before out is touched.
func (s *Store) ReadValidated(path string, sh *shape.Shape, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return gderrors.IO("failed to read document", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return gderrors.Corrupt(path, err)
	}
	if verr := sh.Validate(doc); verr != nil {
		return verr.WithPath(path)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return gderrors.Corrupt(path, err)
	}
	return nil
}
