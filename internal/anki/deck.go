package anki

import (
	"encoding/json"
	"fmt"
)

// deckJSON is the exact decks entry shape the Anki application expects.
// Nesting via "::" in the name is a naming convention only; there is no
// structural parent/child field.
type deckJSON struct {
	ID               int64  `json:"id"`
	Mod              int64  `json:"mod"`
	Name             string `json:"name"`
	USN              int    `json:"usn"`
	LearnToday       [2]int `json:"lrnToday"`
	RevToday         [2]int `json:"revToday"`
	NewToday         [2]int `json:"newToday"`
	TimeToday        [2]int `json:"timeToday"`
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	Description      string `json:"desc"`
	Dyn              int    `json:"dyn"`
	OptionsGroupID   int64  `json:"conf"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
}

// Deck is a named container of cards. Its canonical state is one entry of
// the decks JSON map inside the col row, keyed by its stringified id.
type Deck struct {
	collection *Collection
	data       deckJSON
}

// NewDeck creates a fresh deck, registers it on the collection and persists
// it immediately. The deck defaults to the collection's options group with
// the lowest id.
func NewDeck(c *Collection, name string) (*Deck, error) {
	group := c.DefaultOptionsGroup()
	if group == nil {
		return nil, fmt.Errorf("collection has no deck options groups")
	}
	d := &Deck{collection: c}
	d.data.ID = c.clock.NextMillis()
	d.data.Name = name
	d.data.USN = usnNew
	d.data.Collapsed = true
	d.data.BrowserCollapsed = true
	d.data.OptionsGroupID = group.ID()
	if err := c.AddDeck(d); err != nil {
		return nil, err
	}
	if err := d.Save(); err != nil {
		return nil, err
	}
	return d, nil
}

// deckFromJSON rehydrates a deck from one decoded decks map entry and
// registers it on the collection. The referenced options group must already
// be loaded.
func deckFromJSON(c *Collection, raw json.RawMessage) (*Deck, error) {
	d := &Deck{collection: c}
	if err := json.Unmarshal(raw, &d.data); err != nil {
		return nil, fmt.Errorf("failed to decode deck: %w", err)
	}
	if c.OptionsGroupByID(d.data.OptionsGroupID) == nil {
		return nil, fmt.Errorf("deck %q references unknown options group %d", d.data.Name, d.data.OptionsGroupID)
	}
	if err := c.AddDeck(d); err != nil {
		return nil, err
	}
	return d, nil
}

// ID returns the deck's millisecond-timestamp id.
func (d *Deck) ID() int64 {
	return d.data.ID
}

// Name returns the deck's name.
func (d *Deck) Name() string {
	return d.data.Name
}

// Description returns the deck's description.
func (d *Deck) Description() string {
	return d.data.Description
}

// SetDescription updates the deck's description. The change is persisted on
// the next Save.
func (d *Deck) SetDescription(desc string) {
	d.data.Description = desc
}

// OptionsGroup resolves the deck's options group reference against the
// collection.
func (d *Deck) OptionsGroup() *DeckOptionsGroup {
	return d.collection.OptionsGroupByID(d.data.OptionsGroupID)
}

// SetOptionsGroup points the deck at a different options group of the same
// collection.
func (d *Deck) SetOptionsGroup(g *DeckOptionsGroup) error {
	if g == nil {
		return ErrNilEntity
	}
	if g.collection != d.collection {
		return ErrDifferentCollections
	}
	d.data.OptionsGroupID = g.ID()
	return nil
}

// Save merges the deck into the persisted decks JSON map and rewrites the
// col row.
func (d *Deck) Save() error {
	d.data.Mod = d.collection.clock.NowSeconds()
	return d.collection.mergeIntoColumn(columnDecks, d.data.ID, &d.data)
}
