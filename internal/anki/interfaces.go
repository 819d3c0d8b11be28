// Package anki implements the Anki collection object graph: the collection
// aggregate, the JSON-blob entities stored inside the col row (note types,
// decks, deck options groups) and the row entities (notes, cards), together
// with the codecs that preserve Anki's on-disk encodings.
//
// Persistence goes through the two store interfaces below. They are
// implemented by internal/database/colrepo and internal/database/noterepo:
//
//	var _ anki.ColumnStore = (*colrepo.Repository)(nil)
//	var _ anki.NoteStore = (*noterepo.Repository)(nil)
//
// The split mirrors the two persisted representations: one logical entity
// kind lives as a JSON object inside a single col column (ColumnStore,
// read-merge-write), the other as ordinary rows (NoteStore, id-keyed
// upserts). The whole package is single-threaded by contract; no store
// implementation needs to be safe for concurrent use by one collection.
package anki

// ColumnStore reads and writes the single col row and its JSON columns.
type ColumnStore interface {
	// ReadCol returns the one col row of the database.
	ReadCol() (*ColRow, error)

	// ReadColumn returns the current persisted JSON for the named col column
	// (one of "models", "decks", "dconf"). Entity saves re-read through this
	// method rather than trusting in-memory state, so that two entity objects
	// saving in turn do not overwrite each other's merges.
	ReadColumn(name string) (string, error)

	// WriteColumn overwrites the named col column and the col mod stamp in a
	// single UPDATE.
	WriteColumn(name, value string, mod int64) error
}

// NoteStore persists notes and cards rows.
//
// GetCards must return rows ordered by ord: note rehydration pairs card rows
// to card templates positionally, so the ordering is a correctness
// requirement of this interface, not an optimization.
type NoteStore interface {
	NoteExists(id int64) (bool, error)
	GetNote(id int64) (*NoteRow, error)
	GetCards(noteID int64) ([]CardRow, error)
	InsertNote(row *NoteRow) error
	UpdateNote(row *NoteRow) error
	InsertCard(row *CardRow) error
	UpdateCard(row *CardRow) error
}
