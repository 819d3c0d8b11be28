package apkg

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/ankipkg/internal/anki"
)

func TestInspect_MissingArchive(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope.apkg"))
	assert.Error(t, err)
}

// TestPackedRowEncodings checks the persisted note row the way the Anki
// application will read it: over plain SQL against the packed database.
func TestPackedRowEncodings(t *testing.T) {
	path := createTestPackage(t)

	scratchDir := t.TempDir()
	dbPath, err := extractArchiveEntry(path, CollectionFilename, scratchDir)
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var guid, flds, sfld, csum string
	var usn int
	err = db.QueryRow("SELECT guid, flds, sfld, csum, usn FROM notes").Scan(&guid, &flds, &sfld, &csum, &usn)
	require.NoError(t, err)

	assert.Equal(t, "Hello\x1fWorld", flds)
	assert.Equal(t, "Hello", sfld)
	assert.Equal(t, anki.Checksum("Hello"), csum)
	assert.Len(t, guid, 10)
	assert.Equal(t, -1, usn)

	var nid, did int64
	var ord int
	err = db.QueryRow("SELECT nid, did, ord FROM cards").Scan(&nid, &did, &ord)
	require.NoError(t, err)
	assert.NotZero(t, nid)
	assert.NotZero(t, did)
	assert.Equal(t, 0, ord)
}
