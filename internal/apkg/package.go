// Package apkg manages the .apkg archive lifecycle: creating a fresh
// collection, opening an existing package for edits and repacking it.
//
// A package owns one scratch directory for its lifetime. The directory holds
// the not-yet-zipped collection database and media files and is removed when
// the lifecycle closure returns, whether it succeeded or not — a closure
// error surfaces to the caller, but only after the scratch state is gone and
// with no partial .apkg left behind.
package apkg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/mrlokans/ankipkg/internal/anki"
	"github.com/mrlokans/ankipkg/internal/database"
	"github.com/mrlokans/ankipkg/internal/database/colrepo"
	"github.com/mrlokans/ankipkg/internal/database/noterepo"
)

// Archive entry names fixed by the .apkg layout.
const (
	// CollectionFilename is the collection database entry.
	CollectionFilename = "collection.anki21"
	// LegacyCollectionFilename is a schema-identical duplicate kept for
	// older Anki clients. This layer writes it as a byte copy and otherwise
	// treats it as opaque.
	LegacyCollectionFilename = "collection.anki2"
	// MediaFilename is the media manifest entry: a JSON object mapping
	// archive entry indexes to media filenames.
	MediaFilename = "media"
)

// Package is an .apkg being built or edited inside a scratch directory.
type Package struct {
	scratchDir string
	db         *database.Database
	collection *anki.Collection
	media      map[string]string
}

// Collection returns the package's collection aggregate.
func (p *Package) Collection() *anki.Collection {
	return p.collection
}

// AddMedia records a media file in the manifest and copies it into the
// package under its manifest index, per the .apkg layout. The index is the
// lowest one not already in the manifest — an opened package's manifest may
// be non-dense, so counting entries could collide with an existing key.
func (p *Package) AddMedia(name, srcPath string) error {
	var index string
	for i := 0; ; i++ {
		candidate := strconv.Itoa(i)
		if _, taken := p.media[candidate]; !taken {
			index = candidate
			break
		}
	}
	if err := copyFile(srcPath, filepath.Join(p.scratchDir, index)); err != nil {
		return fmt.Errorf("failed to copy media file %s: %w", name, err)
	}
	p.media[index] = name
	return nil
}

// Create builds a new .apkg at path: it bootstraps a fresh collection
// database in a scratch directory, seeds the stock note types, runs build
// and packs the archive. When build returns an error nothing is written to
// path and the error is surfaced after scratch cleanup.
func Create(path string, build func(*Package) error) error {
	return CreateIn("", path, build)
}

// CreateIn is Create with an explicit parent directory for the scratch
// state. An empty scratchBase falls back to the system temp directory.
func CreateIn(scratchBase, path string, build func(*Package) error) error {
	scratchDir, err := os.MkdirTemp(scratchBase, "ankipkg-*")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	pkg, err := setupPackage(scratchDir)
	if err != nil {
		return err
	}
	if err := anki.SeedStockNoteTypes(pkg.collection); err != nil {
		pkg.db.Close()
		return err
	}

	if err := build(pkg); err != nil {
		pkg.db.Close()
		return fmt.Errorf("package build failed: %w", err)
	}

	return pkg.pack(path)
}

// Open unpacks an existing .apkg into a scratch directory, loads its
// collection, runs apply and repacks the archive over path. When apply
// returns an error the original archive is left untouched.
func Open(path string, apply func(*Package) error) error {
	return OpenIn("", path, apply)
}

// OpenIn is Open with an explicit parent directory for the scratch state.
func OpenIn(scratchBase, path string, apply func(*Package) error) error {
	scratchDir, err := os.MkdirTemp(scratchBase, "ankipkg-*")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	if err := extractArchive(path, scratchDir); err != nil {
		return fmt.Errorf("failed to unpack %s: %w", path, err)
	}
	if _, err := os.Stat(filepath.Join(scratchDir, CollectionFilename)); err != nil {
		return fmt.Errorf("not an .apkg: missing %s entry", CollectionFilename)
	}

	pkg, err := setupPackage(scratchDir)
	if err != nil {
		return err
	}
	if err := pkg.loadMedia(); err != nil {
		pkg.db.Close()
		return err
	}

	if err := apply(pkg); err != nil {
		pkg.db.Close()
		return fmt.Errorf("package update failed: %w", err)
	}

	return pkg.pack(path)
}

// setupPackage opens the collection database inside the scratch directory
// and loads the collection aggregate.
func setupPackage(scratchDir string) (*Package, error) {
	db, err := database.NewDatabase(filepath.Join(scratchDir, CollectionFilename))
	if err != nil {
		return nil, fmt.Errorf("failed to open collection database: %w", err)
	}
	collection, err := anki.NewCollection(colrepo.NewRepository(db.DB), noterepo.NewRepository(db.DB))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return &Package{
		scratchDir: scratchDir,
		db:         db,
		collection: collection,
		media:      map[string]string{},
	}, nil
}

// loadMedia reads an existing media manifest from the scratch directory.
func (p *Package) loadMedia() error {
	raw, err := os.ReadFile(filepath.Join(p.scratchDir, MediaFilename))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read media manifest: %w", err)
	}
	if err := json.Unmarshal(raw, &p.media); err != nil {
		return fmt.Errorf("failed to decode media manifest: %w", err)
	}
	return nil
}

// pack closes the database, refreshes the legacy duplicate and the media
// manifest, and zips the scratch contents into target.
func (p *Package) pack(target string) error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("failed to close collection database: %w", err)
	}

	dbPath := filepath.Join(p.scratchDir, CollectionFilename)
	legacyPath := filepath.Join(p.scratchDir, LegacyCollectionFilename)
	if err := copyFile(dbPath, legacyPath); err != nil {
		return fmt.Errorf("failed to write legacy collection copy: %w", err)
	}

	manifest, err := json.Marshal(p.media)
	if err != nil {
		return fmt.Errorf("failed to encode media manifest: %w", err)
	}
	mediaPath := filepath.Join(p.scratchDir, MediaFilename)
	if err := os.WriteFile(mediaPath, manifest, 0644); err != nil {
		return fmt.Errorf("failed to write media manifest: %w", err)
	}

	files := []string{dbPath, legacyPath, mediaPath}
	indexes := make([]string, 0, len(p.media))
	for index := range p.media {
		indexes = append(indexes, index)
	}
	sort.Strings(indexes)
	for _, index := range indexes {
		files = append(files, filepath.Join(p.scratchDir, index))
	}

	return writeArchive(target, files)
}
