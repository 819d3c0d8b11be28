package anki

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollection_LoadsSeededEntities(t *testing.T) {
	collection, _, _ := setupTestCollection(t)

	require.Len(t, collection.Decks(), 1)
	assert.Equal(t, "Default", collection.Decks()[0].Name())
	assert.EqualValues(t, 1, collection.Decks()[0].ID())

	require.Len(t, collection.OptionsGroups(), 1)
	assert.Equal(t, "Default", collection.OptionsGroups()[0].Name())

	assert.Empty(t, collection.NoteTypes())
	assert.EqualValues(t, 1_700_000_000, collection.CreatedAt())
}

func TestCollection_Lookups(t *testing.T) {
	collection, _, _ := setupTestCollection(t)
	require.NoError(t, SeedStockNoteTypes(collection))

	t.Run("by name", func(t *testing.T) {
		assert.NotNil(t, collection.NoteTypeByName(StockBasicName))
		assert.NotNil(t, collection.DeckByName("Default"))
		assert.Nil(t, collection.NoteTypeByName("No Such Type"))
		assert.Nil(t, collection.DeckByName("No Such Deck"))
	})

	t.Run("by id", func(t *testing.T) {
		basic := collection.NoteTypeByName(StockBasicName)
		assert.Same(t, basic, collection.NoteTypeByID(basic.ID()))
		assert.Same(t, collection.DeckByName("Default"), collection.DeckByID(1))
		assert.Nil(t, collection.NoteTypeByID(42))
		assert.Nil(t, collection.DeckByID(42))
		assert.Nil(t, collection.OptionsGroupByID(42))
	})
}

func TestCollection_DefaultOptionsGroup(t *testing.T) {
	collection, _, _ := setupTestCollection(t)

	// The seeded group has id 1; any new group gets a millisecond id far
	// above it, so the default stays the seeded group.
	seeded := collection.DefaultOptionsGroup()
	require.NotNil(t, seeded)
	assert.EqualValues(t, 1, seeded.ID())

	_, err := NewDeckOptionsGroup(collection, "Aggressive")
	require.NoError(t, err)
	assert.Same(t, seeded, collection.DefaultOptionsGroup())
}

func TestNewDeck(t *testing.T) {
	collection, colStore, _ := setupTestCollection(t)

	deck, err := NewDeck(collection, "Spanish")
	require.NoError(t, err)
	assert.Equal(t, "Spanish", deck.Name())
	assert.Same(t, collection.DefaultOptionsGroup(), deck.OptionsGroup())

	t.Run("persisted immediately", func(t *testing.T) {
		encoded, err := colStore.ReadColumn("decks")
		require.NoError(t, err)
		var entries map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(encoded), &entries))
		assert.Contains(t, entries, strconv.FormatInt(deck.ID(), 10))
		assert.Contains(t, entries, "1") // seeded Default deck survives the merge
	})

	t.Run("registered on the collection", func(t *testing.T) {
		assert.Same(t, deck, collection.DeckByName("Spanish"))
	})
}

func TestNewDeckOptionsGroup(t *testing.T) {
	collection, colStore, _ := setupTestCollection(t)

	group, err := NewDeckOptionsGroup(collection, "Cramming")
	require.NoError(t, err)
	assert.Equal(t, "Cramming", group.Name())
	assert.NotZero(t, group.LastModified())

	encoded, err := colStore.ReadColumn("dconf")
	require.NoError(t, err)
	var entries map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(encoded), &entries))
	require.Contains(t, entries, strconv.FormatInt(group.ID(), 10))

	// Anki's default scheduling parameters come along
	var decoded struct {
		MaxTaken int `json:"maxTaken"`
		New      struct {
			Delays []float64 `json:"delays"`
			PerDay int       `json:"perDay"`
		} `json:"new"`
	}
	require.NoError(t, json.Unmarshal(entries[strconv.FormatInt(group.ID(), 10)], &decoded))
	assert.Equal(t, 60, decoded.MaxTaken)
	assert.Equal(t, []float64{1, 10}, decoded.New.Delays)
	assert.Equal(t, 20, decoded.New.PerDay)
}

func TestDeck_SetOptionsGroup(t *testing.T) {
	collection, _, _ := setupTestCollection(t)
	deck, err := NewDeck(collection, "Spanish")
	require.NoError(t, err)
	group, err := NewDeckOptionsGroup(collection, "Cramming")
	require.NoError(t, err)

	require.NoError(t, deck.SetOptionsGroup(group))
	assert.Same(t, group, deck.OptionsGroup())

	assert.ErrorIs(t, deck.SetOptionsGroup(nil), ErrNilEntity)

	other, _, _ := setupTestCollection(t)
	foreign, err := NewDeckOptionsGroup(other, "Foreign")
	require.NoError(t, err)
	assert.ErrorIs(t, deck.SetOptionsGroup(foreign), ErrDifferentCollections)
}

func TestSeedStockNoteTypes(t *testing.T) {
	collection, _, _ := setupTestCollection(t)

	require.NoError(t, SeedStockNoteTypes(collection))
	require.Len(t, collection.NoteTypes(), 5)

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, SeedStockNoteTypes(collection))
		assert.Len(t, collection.NoteTypes(), 5)
	})

	t.Run("basic shape", func(t *testing.T) {
		basic := collection.NoteTypeByName(StockBasicName)
		require.NotNil(t, basic)
		assert.Equal(t, []string{"Front", "Back"}, basic.FieldNames())
		require.Len(t, basic.Templates(), 1)
		assert.Equal(t, "{{Front}}", basic.Templates()[0].QuestionFormat())
		assert.False(t, basic.Cloze())
	})

	t.Run("reversed has two templates", func(t *testing.T) {
		reversed := collection.NoteTypeByName(StockBasicReversedName)
		require.NotNil(t, reversed)
		assert.Len(t, reversed.Templates(), 2)
	})

	t.Run("cloze shape", func(t *testing.T) {
		cloze := collection.NoteTypeByName(StockClozeName)
		require.NotNil(t, cloze)
		assert.True(t, cloze.Cloze())
		assert.Equal(t, []string{"Text", "Back Extra"}, cloze.FieldNames())
		assert.Contains(t, cloze.CSS(), ".cloze")
	})

	t.Run("persisted", func(t *testing.T) {
		models, err := collection.ModelsJSON()
		require.NoError(t, err)
		assert.Len(t, models, 5)
	})
}

func TestCollection_Reload(t *testing.T) {
	colStore := newMemColumnStore()
	noteStore := newMemNoteStore()
	collection, err := NewCollection(colStore, noteStore)
	require.NoError(t, err)

	require.NoError(t, SeedStockNoteTypes(collection))
	deck, err := NewDeck(collection, "Spanish")
	require.NoError(t, err)
	group, err := NewDeckOptionsGroup(collection, "Cramming")
	require.NoError(t, err)

	// A second collection over the same stores sees everything the first
	// one persisted.
	reloaded, err := NewCollection(colStore, noteStore)
	require.NoError(t, err)
	assert.Len(t, reloaded.NoteTypes(), 5)
	require.NotNil(t, reloaded.DeckByName("Spanish"))
	assert.Equal(t, deck.ID(), reloaded.DeckByName("Spanish").ID())
	assert.NotNil(t, reloaded.OptionsGroupByID(group.ID()))

	basic := reloaded.NoteTypeByName(StockBasicName)
	require.NotNil(t, basic)
	assert.Equal(t, []string{"front", "back"}, basic.SnakeFieldNames())
	require.Len(t, basic.Templates(), 1)
	assert.Equal(t, "Card 1", basic.Templates()[0].Name())
}

func TestCollection_AddNilEntities(t *testing.T) {
	collection, _, _ := setupTestCollection(t)

	assert.ErrorIs(t, collection.AddNoteType(nil), ErrNilEntity)
	assert.ErrorIs(t, collection.AddDeck(nil), ErrNilEntity)
	assert.ErrorIs(t, collection.AddOptionsGroup(nil), ErrNilEntity)
}
