package anki

import (
	"fmt"
	"strings"
)

// Note is one flashcard's content: a snake_case-keyed field map plus one
// derived card per card template of its note type. Notes are normalized rows
// of the notes table, unlike the JSON-blob entities.
type Note struct {
	collection *Collection
	noteType   *NoteType
	deck       *Deck

	id           int64
	guid         string
	fields       map[string]string
	tags         []string
	flags        int
	data         string
	lastModified int64
	usn          int

	cards []*Card
}

// NewNote creates a fresh note of the given type in the given deck. Both
// must belong to the same collection. The field map is initialized with an
// empty string for every snake_case field name, and one card is created per
// card template in ordinal order.
func NewNote(noteType *NoteType, deck *Deck) (*Note, error) {
	if noteType == nil || deck == nil {
		return nil, ErrNilEntity
	}
	if noteType.collection != deck.collection {
		return nil, ErrDifferentCollections
	}
	c := noteType.collection
	n := &Note{
		collection: c,
		noteType:   noteType,
		deck:       deck,
		id:         c.clock.NextMillis(),
		guid:       NewGUID(),
		fields:     map[string]string{},
		usn:        usnNew,
	}
	for _, name := range noteType.SnakeFieldNames() {
		n.fields[name] = ""
	}
	for _, tmpl := range noteType.Templates() {
		card, err := newCard(n, tmpl)
		if err != nil {
			return nil, err
		}
		n.cards = append(n.cards, card)
	}
	return n, nil
}

// NoteByID rehydrates a note and its cards from storage. Returns nil without
// error when no note with the id exists.
//
// Card rows are paired with the note type's card templates positionally, so
// the note store must return them ordered by ord (see NoteStore).
func (c *Collection) NoteByID(id int64) (*Note, error) {
	row, err := c.noteStore.GetNote(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read note %d: %w", id, err)
	}
	if row == nil {
		return nil, nil
	}
	noteType := c.NoteTypeByID(row.NoteTypeID)
	if noteType == nil {
		return nil, fmt.Errorf("note %d references unknown note type %d", id, row.NoteTypeID)
	}

	n := &Note{
		collection:   c,
		noteType:     noteType,
		id:           row.ID,
		guid:         row.GUID,
		fields:       SplitFields(row.Fields, noteType.SnakeFieldNames()),
		tags:         strings.Fields(row.Tags),
		flags:        row.Flags,
		data:         row.Data,
		lastModified: row.LastModified,
		usn:          row.USN,
	}

	cardRows, err := c.noteStore.GetCards(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read cards of note %d: %w", id, err)
	}
	if len(cardRows) == 0 {
		return nil, fmt.Errorf("note %d has no cards", id)
	}
	templates := noteType.Templates()
	if len(cardRows) > len(templates) {
		return nil, fmt.Errorf("note %d has %d cards but its note type has %d templates", id, len(cardRows), len(templates))
	}
	for i := range cardRows {
		card, err := cardFromRow(n, templates[i], &cardRows[i])
		if err != nil {
			return nil, err
		}
		n.cards = append(n.cards, card)
	}
	n.deck = n.cards[0].deck

	return n, nil
}

// ID returns the note's millisecond-timestamp id.
func (n *Note) ID() int64 {
	return n.id
}

// GUID returns the note's globally-unique 10-character guid.
func (n *Note) GUID() string {
	return n.guid
}

// NoteType returns the note's schema.
func (n *Note) NoteType() *NoteType {
	return n.noteType
}

// Deck returns the deck the note's cards belong to.
func (n *Note) Deck() *Deck {
	return n.deck
}

// Cards returns the note's cards in template ordinal order.
func (n *Note) Cards() []*Card {
	return n.cards
}

// Tags returns the note's tags.
func (n *Note) Tags() []string {
	return n.tags
}

// SetTags replaces the note's tags.
func (n *Note) SetTags(tags []string) {
	n.tags = tags
}

// Field returns the content of the named field. The name must be one of the
// note type's snake_case field names.
func (n *Note) Field(name string) (string, error) {
	value, ok := n.fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoSuchField, name)
	}
	return value, nil
}

// SetField assigns the content of the named field. The name must be one of
// the note type's snake_case field names; the key set never grows.
func (n *Note) SetField(name, value string) error {
	if _, ok := n.fields[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchField, name)
	}
	n.fields[name] = value
	return nil
}

// SortFieldValue returns the content of the note type's configured sort
// field.
func (n *Note) SortFieldValue() string {
	return n.fields[snakeCase(n.noteType.SortFieldName())]
}

// Save upserts the note row and cascades to every owned card. Existence is
// decided once, by the note's own id: when the note already exists every
// card takes the update path, otherwise every card takes the insert path.
func (n *Note) Save() error {
	exists, err := n.collection.noteStore.NoteExists(n.id)
	if err != nil {
		return fmt.Errorf("failed to check note %d existence: %w", n.id, err)
	}
	n.lastModified = n.collection.clock.NowSeconds()
	row := n.toRow()
	if exists {
		if err := n.collection.noteStore.UpdateNote(row); err != nil {
			return fmt.Errorf("failed to update note %d: %w", n.id, err)
		}
	} else {
		if err := n.collection.noteStore.InsertNote(row); err != nil {
			return fmt.Errorf("failed to insert note %d: %w", n.id, err)
		}
	}
	for _, card := range n.cards {
		if err := card.save(exists); err != nil {
			return err
		}
	}
	return nil
}

// toRow recomputes the persisted field encodings (flds, sfld, csum) from the
// current field map.
func (n *Note) toRow() *NoteRow {
	values := make([]string, 0, len(n.fields))
	for _, name := range n.noteType.SnakeFieldNames() {
		values = append(values, n.fields[name])
	}
	sortValue := n.SortFieldValue()
	return &NoteRow{
		ID:           n.id,
		GUID:         n.guid,
		NoteTypeID:   n.noteType.ID(),
		LastModified: n.lastModified,
		USN:          n.usn,
		Tags:         encodeTags(n.tags),
		Fields:       JoinFields(values),
		SortField:    sortValue,
		Checksum:     Checksum(sortValue),
		Flags:        n.flags,
		Data:         n.data,
	}
}

// encodeTags renders tags the way Anki stores them: space-joined with a
// leading and trailing space, or empty when there are none.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}
