package apkg

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Summary describes an .apkg without constructing the collection object
// graph.
type Summary struct {
	Notes      int
	Cards      int
	NoteTypes  []string
	Decks      []string
	MediaFiles int
}

// Inspect extracts only the collection database entry from the archive and
// reads a summary over plain SQL.
func Inspect(path string) (*Summary, error) {
	scratchDir, err := os.MkdirTemp("", "ankipkg-inspect-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	dbPath, err := extractArchiveEntry(path, CollectionFilename, scratchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	summary := &Summary{}
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&summary.Notes); err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&summary.Cards); err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}

	var models, decks string
	if err := db.QueryRow("SELECT models, decks FROM col WHERE id = 1").Scan(&models, &decks); err != nil {
		return nil, fmt.Errorf("failed to read col row: %w", err)
	}
	if summary.NoteTypes, err = entityNames(models); err != nil {
		return nil, fmt.Errorf("failed to decode models: %w", err)
	}
	if summary.Decks, err = entityNames(decks); err != nil {
		return nil, fmt.Errorf("failed to decode decks: %w", err)
	}

	summary.MediaFiles, err = countMediaEntries(path)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// entityNames pulls the name of every entry out of an id-keyed entity map.
func entityNames(encoded string) ([]string, error) {
	entries := map[string]struct {
		Name string `json:"name"`
	}{}
	if err := json.Unmarshal([]byte(encoded), &entries); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names, nil
}

// countMediaEntries reads the media manifest entry of the archive.
func countMediaEntries(path string) (int, error) {
	scratchDir, err := os.MkdirTemp("", "ankipkg-media-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	mediaPath, err := extractArchiveEntry(path, MediaFilename, scratchDir)
	if errors.Is(err, errNoArchiveEntry) {
		return 0, nil // no manifest, nothing to count
	}
	if err != nil {
		return 0, fmt.Errorf("failed to unpack media manifest: %w", err)
	}
	raw, err := os.ReadFile(mediaPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read media manifest: %w", err)
	}
	manifest := map[string]string{}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return 0, fmt.Errorf("failed to decode media manifest: %w", err)
	}
	return len(manifest), nil
}
