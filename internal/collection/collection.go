// Package collection implements CRUD over a single record-array document.
//
// A record-array document is a JSON array in which slot 0 is permanently null
// (the sentinel) and a record's ID equals its slot index. IDs are never
// reassigned and the array is never compacted: deleting a record nulls its
// slot, and creating a record always appends at the current array length, so
// a deleted ID is never recycled.
package collection

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	gderrors "github.com/mizushima/gdforge/internal/errors"
	"github.com/mizushima/gdforge/internal/models"
	"github.com/mizushima/gdforge/internal/reload"
	"github.com/mizushima/gdforge/internal/shape"
	"github.com/mizushima/gdforge/internal/store"
)

// recordHeader is the part of a record every kind guarantees.
type recordHeader struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var recordArrayShape = shape.ArrayOf[recordHeader]()

// Collection manages one record-array document. Construct one per entity
// kind via New; mutations persist through the store's atomic write and bump
// the reload ledger once per document written.
type Collection struct {
	store    *store.Store
	ledger   *reload.Ledger
	path     string
	resource string
	defaults func(id int) models.Record
}

// New binds a collection to the document at path. resource is the singular
// entity name used in error messages; defaults produces a fully-populated
// record for a given ID.
func New(st *store.Store, ledger *reload.Ledger, path, resource string, defaults func(id int) models.Record) *Collection {
	return &Collection{
		store:    st,
		ledger:   ledger,
		path:     path,
		resource: resource,
		defaults: defaults,
	}
}

func (c *Collection) load() ([]models.Record, error) {
	var doc []models.Record
	if err := c.store.ReadValidated(c.path, recordArrayShape, &doc); err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		// Tolerate a bare [] by treating it as sentinel-only.
		doc = []models.Record{nil}
	}
	return doc, nil
}

// persist writes the document and bumps the ledger. The bump happens only
// after the write has fully succeeded; a crash in between costs at most one
// missed reload signal, which the next mutation's bump repairs.
func (c *Collection) persist(doc []models.Record) error {
	if err := c.store.Write(c.path, doc); err != nil {
		return err
	}
	if _, err := c.ledger.Bump(); err != nil {
		return fmt.Errorf("document written but reload counter not bumped: %w", err)
	}
	return nil
}

// List returns all non-sentinel records in slot order.
func (c *Collection) List() ([]models.Record, error) {
	doc, err := c.load()
	if err != nil {
		return nil, err
	}
	records := make([]models.Record, 0, len(doc))
	for _, rec := range doc {
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Get returns the record with the given ID.
func (c *Collection) Get(id int) (models.Record, error) {
	doc, err := c.load()
	if err != nil {
		return nil, err
	}
	if id < 1 || id >= len(doc) || doc[id] == nil {
		return nil, gderrors.NotFound(c.resource, id)
	}
	return doc[id], nil
}

// Create appends a new record. The ID is always the current array length, so
// IDs stay dense and monotonically increasing even across deletions. The
// record is the kind's default overlaid with partial; caller fields win
// except id, which is forced to the computed value.
func (c *Collection) Create(partial models.Record) (int, models.Record, error) {
	doc, err := c.load()
	if err != nil {
		return 0, nil, err
	}

	id := len(doc)
	rec := c.defaults(id).Merge(partial)
	rec["id"] = id
	doc = append(doc, rec)

	if err := c.persist(doc); err != nil {
		return 0, nil, err
	}
	return id, rec, nil
}

// Update shallow-merges partial over the existing record. Fields omitted
// from partial are left exactly as they were; id is pinned to the original.
func (c *Collection) Update(id int, partial models.Record) (models.Record, error) {
	doc, err := c.load()
	if err != nil {
		return nil, err
	}
	if id < 1 || id >= len(doc) || doc[id] == nil {
		return nil, gderrors.NotFound(c.resource, id)
	}

	merged := doc[id].Merge(partial)
	merged["id"] = id
	doc[id] = merged

	if err := c.persist(doc); err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete sets the record's slot to the sentinel, leaving every other ID
// stable. With protectFirst, deleting record 1 is refused before any I/O so
// the document stays byte-for-byte unchanged and the ledger unbumped.
func (c *Collection) Delete(id int, protectFirst bool) error {
	if protectFirst && id == 1 {
		return gderrors.Protected(fmt.Sprintf("%s 1 is the default record and cannot be deleted", c.resource))
	}

	doc, err := c.load()
	if err != nil {
		return err
	}
	if id < 1 || id >= len(doc) || doc[id] == nil {
		return gderrors.NotFound(c.resource, id)
	}

	doc[id] = nil
	return c.persist(doc)
}

// Search returns the records whose named string fields contain query,
// ignoring case, in slot order. Field names may be dotted paths into nested
// structures. Non-string field values are skipped, not coerced.
func (c *Collection) Search(query string, fields []string) ([]models.Record, error) {
	records, err := c.List()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]models.Record, 0)
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, gderrors.IO("failed to serialize record", c.path, err)
		}
		for _, field := range fields {
			v := gjson.GetBytes(raw, field)
			if v.Type == gjson.String && strings.Contains(strings.ToLower(v.Str), q) {
				matches = append(matches, rec)
				break
			}
		}
	}
	return matches, nil
}
