package collection

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gderrors "github.com/mizushima/gdforge/internal/errors"
	"github.com/mizushima/gdforge/internal/models"
	"github.com/mizushima/gdforge/internal/reload"
	"github.com/mizushima/gdforge/internal/store"
)

func testDefaults(id int) models.Record {
	return models.Record{"id": id, "name": "", "value": 0}
}

// newCollection seeds a temp project with the given document content and a
// fresh ledger.
func newCollection(t *testing.T, doc string) (*Collection, *reload.Ledger) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Items.json")
	ledgerPath := filepath.Join(dir, "System.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	require.NoError(t, os.WriteFile(ledgerPath, []byte(`{"versionId": 0}`), 0o644))

	st := store.New()
	ledger := reload.NewLedger(st, ledgerPath)
	return New(st, ledger, path, "item", testDefaults), ledger
}

const seed = `[null, {"id": 1, "name": "First", "value": 10}]`

func TestList(t *testing.T) {
	c, _ := newCollection(t, seed)

	records, err := c.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].ID())
	assert.Equal(t, "First", records[0].Name())
}

func TestListSentinelOnly(t *testing.T) {
	c, _ := newCollection(t, `[null]`)

	records, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGet(t *testing.T) {
	c, _ := newCollection(t, seed)

	rec, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "First", rec.Name())

	for _, id := range []int{0, -1, 2, 99} {
		_, err := c.Get(id)
		assert.Equal(t, gderrors.CodeNotFound, gderrors.CodeOf(err), "id %d", id)
	}
}

func TestCreate(t *testing.T) {
	c, _ := newCollection(t, seed)

	id, rec, err := c.Create(models.Record{"name": "Second", "value": 20})
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	assert.Equal(t, 2, rec.ID())
	assert.Equal(t, "Second", rec.Name())
	assert.Equal(t, 20, rec["value"])

	records, err := c.List()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCreateForcesComputedID(t *testing.T) {
	c, _ := newCollection(t, seed)

	id, rec, err := c.Create(models.Record{"id": 99, "name": "Sneaky"})
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	assert.Equal(t, 2, rec.ID())
}

func TestCreateNeverReusesDeletedIDs(t *testing.T) {
	c, _ := newCollection(t, `[null]`)

	// n-th create on a sentinel-only document yields id n+1, deletions
	// in between notwithstanding.
	for want := 1; want <= 3; want++ {
		id, _, err := c.Create(models.Record{"name": "x"})
		require.NoError(t, err)
		assert.Equal(t, want, id)
		require.NoError(t, c.Delete(id, false))
	}
}

func TestUpdate(t *testing.T) {
	c, _ := newCollection(t, seed)

	rec, err := c.Update(1, models.Record{"name": "Updated"})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID())
	assert.Equal(t, "Updated", rec.Name())
	assert.Equal(t, float64(10), rec["value"], "omitted fields unchanged")

	_, err = c.Update(5, models.Record{"name": "x"})
	assert.Equal(t, gderrors.CodeNotFound, gderrors.CodeOf(err))
}

func TestUpdatePinsID(t *testing.T) {
	c, _ := newCollection(t, seed)

	rec, err := c.Update(1, models.Record{"id": 42, "name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID())
}

func TestDelete(t *testing.T) {
	c, _ := newCollection(t, seed)

	_, _, err := c.Create(models.Record{"name": "Second"})
	require.NoError(t, err)

	require.NoError(t, c.Delete(2, false))

	records, err := c.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].ID())

	_, err = c.Get(2)
	assert.Equal(t, gderrors.CodeNotFound, gderrors.CodeOf(err))
}

func TestDeleteKeepsOtherIDsStable(t *testing.T) {
	c, _ := newCollection(t, seed)
	for _, name := range []string{"Second", "Third"} {
		_, _, err := c.Create(models.Record{"name": name})
		require.NoError(t, err)
	}

	before, err := c.Get(3)
	require.NoError(t, err)

	require.NoError(t, c.Delete(2, false))

	after, err := c.Get(3)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// The slot is nulled, never removed: array length is unchanged.
	var doc []models.Record
	require.NoError(t, store.New().ReadRaw(c.path, &doc))
	assert.Len(t, doc, 4)
	assert.Nil(t, doc[2])
}

func TestDeleteProtectedFirst(t *testing.T) {
	c, ledger := newCollection(t, seed)

	docBefore, err := os.ReadFile(c.path)
	require.NoError(t, err)
	verBefore, err := ledger.Current()
	require.NoError(t, err)

	err = c.Delete(1, true)
	assert.Equal(t, gderrors.CodeProtected, gderrors.CodeOf(err))

	docAfter, err := os.ReadFile(c.path)
	require.NoError(t, err)
	assert.Equal(t, docBefore, docAfter, "document byte-for-byte unchanged")
	assert.False(t, store.New().Exists(c.path+".bak"), "no backup churn")

	verAfter, err := ledger.Current()
	require.NoError(t, err)
	assert.Equal(t, verBefore, verAfter, "no ledger bump")

	// Without protection the first record is deletable.
	require.NoError(t, c.Delete(1, false))
}

func TestMutationsBumpLedgerOnce(t *testing.T) {
	c, ledger := newCollection(t, seed)

	before, err := ledger.Current()
	require.NoError(t, err)

	id, _, err := c.Create(models.Record{"name": "Second"})
	require.NoError(t, err)
	_, err = c.Update(id, models.Record{"name": "Renamed"})
	require.NoError(t, err)
	require.NoError(t, c.Delete(id, false))

	after, err := ledger.Current()
	require.NoError(t, err)
	assert.Equal(t, before+3, after, "one bump per mutating operation")
}

func TestReadsDoNotBumpLedger(t *testing.T) {
	c, ledger := newCollection(t, seed)

	before, err := ledger.Current()
	require.NoError(t, err)

	_, err = c.List()
	require.NoError(t, err)
	_, err = c.Get(1)
	require.NoError(t, err)
	_, err = c.Search("first", []string{"name"})
	require.NoError(t, err)

	after, err := ledger.Current()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSearch(t *testing.T) {
	c, _ := newCollection(t, `[null,
		{"id": 1, "name": "Hero Sword", "note": "starter", "price": 100},
		{"id": 2, "name": "HERO SHIELD", "note": "", "price": 50},
		null,
		{"id": 4, "name": "Potion", "note": "Restores a hero's HP", "price": 20}
	]`)

	matches, err := c.Search("hero", []string{"name"})
	require.NoError(t, err)
	require.Len(t, matches, 2, "case-insensitive on both sides")
	assert.Equal(t, 1, matches[0].ID())
	assert.Equal(t, 2, matches[1].ID())

	matches, err = c.Search("hero", []string{"name", "note"})
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	// Non-string fields are skipped, not coerced.
	matches, err = c.Search("100", []string{"price"})
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = c.Search("zzz", []string{"name"})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCorruptDocumentSurfaces(t *testing.T) {
	c, _ := newCollection(t, `[null, {`)

	_, err := c.List()
	assert.Equal(t, gderrors.CodeCorrupt, gderrors.CodeOf(err))
}

func TestWrongShapeSurfaces(t *testing.T) {
	c, _ := newCollection(t, `{"id": 1}`)

	_, err := c.List()
	assert.Equal(t, gderrors.CodeValidation, gderrors.CodeOf(err))
}

func TestRoundTripThroughDisk(t *testing.T) {
	c, _ := newCollection(t, seed)

	id, _, err := c.Create(models.Record{"name": "Second", "value": 20})
	require.NoError(t, err)

	// Re-read through a fresh collection to prove nothing is cached.
	c2 := New(store.New(), c.ledger, c.path, "item", testDefaults)
	rec, err := c2.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Second", rec.Name())
	assert.Equal(t, float64(20), rec["value"])

	var doc []json.RawMessage
	require.NoError(t, store.New().ReadRaw(c.path, &doc))
	assert.Equal(t, "null", string(doc[0]), "slot 0 stays the sentinel")
}
