// Package reload maintains the shared change counter that signals "data
// changed" to an external editor process.
//
// The counter lives inside the project's system document next to unrelated
// configuration. Reads and writes go through gjson/sjson so the sibling
// fields survive the read-modify-write untouched. A monotonic counter in a
// small, already-frequently-read document is cheaper and more reliable than
// filesystem watch APIs or content hashing.
package reload

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	gderrors "github.com/mizushima/gdforge/internal/errors"
	"github.com/mizushima/gdforge/internal/store"
)

// DefaultField is the counter field inside the system document.
const DefaultField = "versionId"

// Ledger tracks the change counter in one designated document.
type Ledger struct {
	store *store.Store
	path  string
	field string
}

// NewLedger binds a ledger to the document at path using DefaultField.
func NewLedger(st *store.Store, path string) *Ledger {
	return &Ledger{store: st, path: path, field: DefaultField}
}

// Bump increments the counter by one and returns the new value. A missing or
// non-numeric counter field counts as 0. Must be called exactly once per
// document written by a mutating operation, after that write has succeeded.
func (l *Ledger) Bump() (int64, error) {
	data, err := l.store.ReadBytes(l.path)
	if err != nil {
		return 0, err
	}

	next := gjson.GetBytes(data, l.field).Int() + 1
	updated, err := sjson.SetBytes(data, l.field, next)
	if err != nil {
		return 0, gderrors.IO("failed to update change counter", l.path, err)
	}

	if err := l.store.WriteBytes(l.path, updated); err != nil {
		return 0, err
	}
	return next, nil
}

// Current returns the counter without mutating it. A missing or non-numeric
// field reads as 0.
func (l *Ledger) Current() (int64, error) {
	data, err := l.store.ReadBytes(l.path)
	if err != nil {
		return 0, err
	}
	return gjson.GetBytes(data, l.field).Int(), nil
}
