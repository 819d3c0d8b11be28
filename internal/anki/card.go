package anki

import "fmt"

// Card is one review-unit row derived from a note + card template pairing.
// All scheduling fields are opaque to this layer: zero for fresh cards,
// copied verbatim on rehydration.
type Card struct {
	note     *Note
	deck     *Deck
	template *CardTemplate

	id           int64
	lastModified int64
	usn          int

	typ            int
	queue          int
	due            int
	interval       int
	factor         int
	reps           int
	lapses         int
	left           int
	originalDue    int
	originalDeckID int64

	flags int
	data  string
}

// newCard creates a fresh card for the template. The template must belong to
// the note's note type. The deck is derived from the note.
func newCard(n *Note, template *CardTemplate) (*Card, error) {
	if template.noteType != n.noteType {
		return nil, fmt.Errorf("%w: template %q", ErrTemplateMismatch, template.Name())
	}
	return &Card{
		note:     n,
		deck:     n.deck,
		template: template,
		id:       n.collection.clock.NextMillis(),
		usn:      usnNew,
		data:     "{}",
	}, nil
}

// cardFromRow rehydrates a card from a stored row, pairing it with the given
// template. The deck is resolved by the row's deck id.
func cardFromRow(n *Note, template *CardTemplate, row *CardRow) (*Card, error) {
	if template.noteType != n.noteType {
		return nil, fmt.Errorf("%w: template %q", ErrTemplateMismatch, template.Name())
	}
	deck := n.collection.DeckByID(row.DeckID)
	if deck == nil {
		return nil, fmt.Errorf("card %d references unknown deck %d", row.ID, row.DeckID)
	}
	return &Card{
		note:           n,
		deck:           deck,
		template:       template,
		id:             row.ID,
		lastModified:   row.LastModified,
		usn:            row.USN,
		typ:            row.Type,
		queue:          row.Queue,
		due:            row.Due,
		interval:       row.Interval,
		factor:         row.Factor,
		reps:           row.Reps,
		lapses:         row.Lapses,
		left:           row.Left,
		originalDue:    row.OriginalDue,
		originalDeckID: row.OriginalDeckID,
		flags:          row.Flags,
		data:           row.Data,
	}, nil
}

// ID returns the card's millisecond-timestamp id.
func (c *Card) ID() int64 {
	return c.id
}

// Note returns the owning note.
func (c *Card) Note() *Note {
	return c.note
}

// Deck returns the deck the card belongs to.
func (c *Card) Deck() *Deck {
	return c.deck
}

// Template returns the card template this card was generated from.
func (c *Card) Template() *CardTemplate {
	return c.template
}

// save persists the card row. The caller (the note) decides the path: update
// when the note already existed, insert otherwise. The card does not query
// its own existence.
func (c *Card) save(noteExists bool) error {
	c.lastModified = c.note.collection.clock.NowSeconds()
	row := c.toRow()
	if noteExists {
		if err := c.note.collection.noteStore.UpdateCard(row); err != nil {
			return fmt.Errorf("failed to update card %d: %w", c.id, err)
		}
		return nil
	}
	if err := c.note.collection.noteStore.InsertCard(row); err != nil {
		return fmt.Errorf("failed to insert card %d: %w", c.id, err)
	}
	return nil
}

func (c *Card) toRow() *CardRow {
	return &CardRow{
		ID:              c.id,
		NoteID:          c.note.ID(),
		DeckID:          c.deck.ID(),
		TemplateOrdinal: c.template.Ordinal(),
		LastModified:    c.lastModified,
		USN:             c.usn,
		Type:            c.typ,
		Queue:           c.queue,
		Due:             c.due,
		Interval:        c.interval,
		Factor:          c.factor,
		Reps:            c.reps,
		Lapses:          c.lapses,
		Left:            c.left,
		OriginalDue:     c.originalDue,
		OriginalDeckID:  c.originalDeckID,
		Flags:           c.flags,
		Data:            c.data,
	}
}
