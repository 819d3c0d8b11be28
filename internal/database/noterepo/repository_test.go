package noterepo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/ankipkg/internal/anki"
	"github.com/mrlokans/ankipkg/internal/database"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "collection.anki21")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func testNoteRow(id int64) *anki.NoteRow {
	return &anki.NoteRow{
		ID:           id,
		GUID:         "abcDEF1234",
		NoteTypeID:   100,
		LastModified: 1_700_000_000,
		USN:          -1,
		Tags:         " demo ",
		Fields:       "Hello\x1fWorld",
		SortField:    "Hello",
		Checksum:     anki.Checksum("Hello"),
		Data:         "",
	}
}

func TestRepository_NoteLifecycle(t *testing.T) {
	repo := setupTestRepo(t)

	t.Run("missing note", func(t *testing.T) {
		exists, err := repo.NoteExists(1)
		require.NoError(t, err)
		assert.False(t, exists)

		row, err := repo.GetNote(1)
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("insert and read back", func(t *testing.T) {
		require.NoError(t, repo.InsertNote(testNoteRow(1)))

		exists, err := repo.NoteExists(1)
		require.NoError(t, err)
		assert.True(t, exists)

		row, err := repo.GetNote(1)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "Hello\x1fWorld", row.Fields)
		assert.Equal(t, " demo ", row.Tags)
		assert.Equal(t, -1, row.USN)
	})

	t.Run("update rewrites zero-valued columns too", func(t *testing.T) {
		updated := testNoteRow(1)
		updated.Tags = ""
		updated.Fields = "Hola\x1fMundo"
		updated.SortField = "Hola"
		updated.Checksum = anki.Checksum("Hola")
		require.NoError(t, repo.UpdateNote(updated))

		row, err := repo.GetNote(1)
		require.NoError(t, err)
		assert.Equal(t, "Hola\x1fMundo", row.Fields)
		assert.Equal(t, "", row.Tags)
	})
}

func TestRepository_GetCardsOrderedByOrdinal(t *testing.T) {
	repo := setupTestRepo(t)

	// Insert out of ordinal order on purpose
	require.NoError(t, repo.InsertCard(&anki.CardRow{ID: 11, NoteID: 1, DeckID: 5, TemplateOrdinal: 1, Data: "{}"}))
	require.NoError(t, repo.InsertCard(&anki.CardRow{ID: 10, NoteID: 1, DeckID: 5, TemplateOrdinal: 0, Data: "{}"}))
	require.NoError(t, repo.InsertCard(&anki.CardRow{ID: 12, NoteID: 2, DeckID: 5, TemplateOrdinal: 0, Data: "{}"}))

	rows, err := repo.GetCards(1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].TemplateOrdinal)
	assert.Equal(t, 1, rows[1].TemplateOrdinal)
	assert.EqualValues(t, 10, rows[0].ID)
	assert.EqualValues(t, 11, rows[1].ID)
}

func TestRepository_UpdateCard(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.InsertCard(&anki.CardRow{ID: 10, NoteID: 1, DeckID: 5, TemplateOrdinal: 0, USN: -1, Data: "{}"}))

	require.NoError(t, repo.UpdateCard(&anki.CardRow{ID: 10, NoteID: 1, DeckID: 6, TemplateOrdinal: 0, USN: 0, Data: "{}"}))

	rows, err := repo.GetCards(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 6, rows[0].DeckID)
	assert.Equal(t, 0, rows[0].USN)
}
