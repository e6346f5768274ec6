package project

import (
	"fmt"
	"path/filepath"
	"regexp"

	gderrors "github.com/mizushima/gdforge/internal/errors"
)

// mapFileRe matches per-map document names: a fixed three-digit zero-padded
// suffix, one document per map.
var mapFileRe = regexp.MustCompile(`^Map\d{3}\.json$`)

// MapPath returns the path of map n's document.
func (p *Project) MapPath(n int) string {
	return filepath.Join(p.DataDir(), fmt.Sprintf("Map%03d.json", n))
}

// ListMaps returns the sorted names of all per-map documents.
func (p *Project) ListMaps() ([]string, error) {
	files, err := p.store.ListFiles(p.DataDir(), ".json")
	if err != nil {
		return nil, err
	}
	maps := make([]string, 0, len(files))
	for _, name := range files {
		if mapFileRe.MatchString(name) {
			maps = append(maps, name)
		}
	}
	return maps, nil
}

// DeleteMap removes map n's document outright. Map documents are one per
// file, not slots in a shared array, so removal deletes the file rather than
// nulling a slot. The ledger is bumped once for the removed document.
func (p *Project) DeleteMap(n int) error {
	path := p.MapPath(n)
	if !p.store.Exists(path) {
		return gderrors.NotFound("map", n)
	}
	if err := p.store.DeleteFile(path); err != nil {
		return err
	}
	if _, err := p.ledger.Bump(); err != nil {
		return fmt.Errorf("map deleted but reload counter not bumped: %w", err)
	}
	return nil
}
