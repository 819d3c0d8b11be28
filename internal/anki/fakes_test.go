package anki

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// In-memory store implementations backing the unit tests. The apkg package
// tests cover the real SQLite-backed stores end to end.

const (
	testConfJSON  = `{"curDeck":1,"activeDecks":[1]}`
	testTagsJSON  = `[]`
	testDconfJSON = `{"1":{"id":1,"name":"Default","maxTaken":60}}`
	testDecksJSON = `{"1":{"id":1,"name":"Default","conf":1}}`
)

type memColumnStore struct {
	row     ColRow
	columns map[string]string
}

func newMemColumnStore() *memColumnStore {
	return &memColumnStore{
		row: ColRow{
			ID:        1,
			CreatedAt: 1_700_000_000,
			Version:   11,
		},
		columns: map[string]string{
			"conf":   testConfJSON,
			"tags":   testTagsJSON,
			"models": "{}",
			"decks":  testDecksJSON,
			"dconf":  testDconfJSON,
		},
	}
}

func (s *memColumnStore) ReadCol() (*ColRow, error) {
	row := s.row
	row.Config = s.columns["conf"]
	row.Tags = s.columns["tags"]
	row.Models = s.columns["models"]
	row.Decks = s.columns["decks"]
	row.DeckConfigs = s.columns["dconf"]
	return &row, nil
}

func (s *memColumnStore) ReadColumn(name string) (string, error) {
	return s.columns[name], nil
}

func (s *memColumnStore) WriteColumn(name, value string, mod int64) error {
	s.columns[name] = value
	s.row.LastModified = mod
	return nil
}

type memNoteStore struct {
	notes map[int64]NoteRow
	cards map[int64]CardRow
}

func newMemNoteStore() *memNoteStore {
	return &memNoteStore{
		notes: map[int64]NoteRow{},
		cards: map[int64]CardRow{},
	}
}

func (s *memNoteStore) NoteExists(id int64) (bool, error) {
	_, ok := s.notes[id]
	return ok, nil
}

func (s *memNoteStore) GetNote(id int64) (*NoteRow, error) {
	row, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *memNoteStore) GetCards(noteID int64) ([]CardRow, error) {
	var rows []CardRow
	for _, row := range s.cards {
		if row.NoteID == noteID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TemplateOrdinal < rows[j].TemplateOrdinal
	})
	return rows, nil
}

func (s *memNoteStore) InsertNote(row *NoteRow) error {
	s.notes[row.ID] = *row
	return nil
}

func (s *memNoteStore) UpdateNote(row *NoteRow) error {
	s.notes[row.ID] = *row
	return nil
}

func (s *memNoteStore) InsertCard(row *CardRow) error {
	s.cards[row.ID] = *row
	return nil
}

func (s *memNoteStore) UpdateCard(row *CardRow) error {
	s.cards[row.ID] = *row
	return nil
}

var (
	_ ColumnStore = (*memColumnStore)(nil)
	_ NoteStore   = (*memNoteStore)(nil)
)

// setupTestCollection loads a collection backed by fresh in-memory stores,
// seeded with the default deck and default options group.
func setupTestCollection(t *testing.T) (*Collection, *memColumnStore, *memNoteStore) {
	t.Helper()
	colStore := newMemColumnStore()
	noteStore := newMemNoteStore()
	collection, err := NewCollection(colStore, noteStore)
	require.NoError(t, err)
	return collection, colStore, noteStore
}
