// Package project validates and introspects a game project directory: the
// marker document proving a directory is a project, the data subdirectory
// holding every record-array document, and the read-only resource folders.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mizushima/gdforge/internal/collection"
	gderrors "github.com/mizushima/gdforge/internal/errors"
	"github.com/mizushima/gdforge/internal/models"
	"github.com/mizushima/gdforge/internal/reload"
	"github.com/mizushima/gdforge/internal/store"
)

// markerNames are the accepted project marker filenames. Both casings exist
// in the wild; either identifies a valid project root.
var markerNames = []string{"Game.gdproj", "game.gdproj"}

// requiredFiles must all exist inside data/ for a project to validate clean.
var requiredFiles = []string{
	"Actors.json",
	"Classes.json",
	"Skills.json",
	"Items.json",
	"Weapons.json",
	"Armors.json",
	"Enemies.json",
	"Troops.json",
	"States.json",
	"CommonEvents.json",
	"System.json",
	"MapInfos.json",
}

// resourceDirs are the asset folders, relative to the project root. They are
// read-only from this system's perspective.
var resourceDirs = []string{
	"img/characters",
	"img/faces",
	"img/pictures",
	"img/tilesets",
	"img/battlebacks",
	"audio/bgm",
	"audio/bgs",
	"audio/me",
	"audio/se",
}

// systemFile holds the reload ledger counter next to unrelated configuration.
const systemFile = "System.json"

// Project is the handle to one loaded project directory. Every core entry
// point takes it explicitly; there is no process-wide current project.
type Project struct {
	root   string
	store  *store.Store
	ledger *reload.Ledger
}

// Open binds a Project to root. Fails with NO_PROJECT_LOADED when the marker
// document is absent.
func Open(root string, st *store.Store) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, gderrors.IO("failed to resolve project path", root, err)
	}
	if !hasMarker(st, abs) {
		return nil, gderrors.NoProject(abs)
	}
	return &Project{
		root:   abs,
		store:  st,
		ledger: reload.NewLedger(st, filepath.Join(abs, "data", systemFile)),
	}, nil
}

func hasMarker(st *store.Store, root string) bool {
	for _, name := range markerNames {
		if st.Exists(filepath.Join(root, name)) {
			return true
		}
	}
	return false
}

// Root returns the absolute project root path.
func (p *Project) Root() string {
	return p.root
}

// DataDir returns the directory holding the record-array documents.
func (p *Project) DataDir() string {
	return filepath.Join(p.root, "data")
}

// Ledger returns the project's reload-trigger ledger.
func (p *Project) Ledger() *reload.Ledger {
	return p.ledger
}

// Collection returns the entity collection for one record kind, bound to
// this project's documents and ledger.
func (p *Project) Collection(kind models.Kind) *collection.Collection {
	path := filepath.Join(p.DataDir(), kind.File)
	return collection.New(p.store, p.ledger, path, kind.Singular, kind.New)
}

// Report is the result of validating a candidate project directory.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks root against the expected layout. It never fails: every
// missing item becomes one message and callers decide what is fatal. A
// missing data/ directory short-circuits to that single error rather than
// also enumerating every file inside a directory that is not there.
func Validate(st *store.Store, root string) Report {
	var errs []string

	if !st.Exists(filepath.Join(root, "data")) {
		return Report{Valid: false, Errors: []string{"Missing data/ directory"}}
	}

	if !hasMarker(st, root) {
		errs = append(errs, fmt.Sprintf("Missing project marker (%s)", markerNames[0]))
	}
	for _, name := range requiredFiles {
		if !st.Exists(filepath.Join(root, "data", name)) {
			errs = append(errs, fmt.Sprintf("Missing data/%s", name))
		}
	}

	return Report{Valid: len(errs) == 0, Errors: errs}
}

// Validate checks the loaded project's layout.
func (p *Project) Validate() Report {
	return Validate(p.store, p.root)
}

// Info aggregates read-only statistics about a project.
type Info struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	DataFiles  []string `json:"dataFiles"`
	MapCount   int      `json:"mapCount"`
	ActorCount int      `json:"actorCount"`
	ItemCount  int      `json:"itemCount"`
	Version    int64    `json:"version"`
}

// Info returns the project's aggregate statistics. Counts are best-effort: a
// missing or unparseable document counts as 0 rather than failing the call.
func (p *Project) Info() (Info, error) {
	files, err := p.store.ListFiles(p.DataDir(), ".json")
	if err != nil {
		return Info{}, err
	}

	mapCount := 0
	for _, name := range files {
		if mapFileRe.MatchString(name) {
			mapCount++
		}
	}

	version, err := p.ledger.Current()
	if err != nil {
		version = 0
	}

	return Info{
		Name:       filepath.Base(p.root),
		Path:       p.root,
		DataFiles:  files,
		MapCount:   mapCount,
		ActorCount: p.countRecords("Actors.json"),
		ItemCount:  p.countRecords("Items.json"),
		Version:    version,
	}, nil
}

// countRecords counts non-sentinel entries of a record-array document,
// degrading to 0 on any read failure.
func (p *Project) countRecords(name string) int {
	var doc []models.Record
	if err := p.store.ReadRaw(filepath.Join(p.DataDir(), name), &doc); err != nil {
		return 0
	}
	n := 0
	for _, rec := range doc {
		if rec != nil {
			n++
		}
	}
	return n
}

// Resources lists the files in each resource subdirectory, keyed by the
// directory's root-relative path. Empty and absent directories are omitted.
// filter, when non-empty, keeps only directories whose relative path starts
// with it (e.g. "img" or "audio/bgm").
func (p *Project) Resources(filter string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, rel := range resourceDirs {
		if filter != "" && !strings.HasPrefix(rel, filter) {
			continue
		}
		names, err := p.store.ListFiles(filepath.Join(p.root, filepath.FromSlash(rel)), "")
		if err != nil {
			return nil, err
		}
		if len(names) > 0 {
			out[rel] = names
		}
	}
	return out, nil
}
