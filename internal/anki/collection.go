package anki

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// usnNew is Anki's sentinel update-sequence-number for objects that have
// never been synced.
const usnNew = -1

// Names of the col columns holding the denormalized JSON entity maps.
const (
	columnModels      = "models"
	columnDecks       = "decks"
	columnDeckConfigs = "dconf"
)

// Collection is the root aggregate backed by the single col row. It loads
// every JSON-blob entity at construction and owns the in-memory registries
// entity lookups and registrations go through.
type Collection struct {
	colStore  ColumnStore
	noteStore NoteStore
	clock     *Clock

	createdAt      int64
	lastModified   int64
	schemaModified int64
	version        int

	config map[string]any
	tags   []string

	noteTypes     []*NoteType
	decks         []*Deck
	optionsGroups []*DeckOptionsGroup
}

// NewCollection loads the collection from the col row: conf and tags are
// decoded directly, then dconf, decks and models in that order — decks
// resolve their options-group reference by id during construction, so the
// groups must be loaded first.
func NewCollection(colStore ColumnStore, noteStore NoteStore) (*Collection, error) {
	c := &Collection{
		colStore:  colStore,
		noteStore: noteStore,
		clock:     NewClock(),
	}

	row, err := colStore.ReadCol()
	if err != nil {
		return nil, fmt.Errorf("failed to read col row: %w", err)
	}
	c.createdAt = row.CreatedAt
	c.lastModified = row.LastModified
	c.schemaModified = row.SchemaModified
	c.version = row.Version

	if err := json.Unmarshal([]byte(row.Config), &c.config); err != nil {
		return nil, fmt.Errorf("failed to decode col conf: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Tags), &c.tags); err != nil {
		return nil, fmt.Errorf("failed to decode col tags: %w", err)
	}

	if err := decodeEntityMap(row.DeckConfigs, func(raw json.RawMessage) error {
		_, err := deckOptionsGroupFromJSON(c, raw)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to load deck options groups: %w", err)
	}
	if err := decodeEntityMap(row.Decks, func(raw json.RawMessage) error {
		_, err := deckFromJSON(c, raw)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to load decks: %w", err)
	}
	if err := decodeEntityMap(row.Models, func(raw json.RawMessage) error {
		_, err := noteTypeFromJSON(c, raw)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to load note types: %w", err)
	}

	return c, nil
}

// decodeEntityMap decodes an id-keyed JSON entity map and feeds each entry
// to load.
func decodeEntityMap(encoded string, load func(json.RawMessage) error) error {
	entries := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(encoded), &entries); err != nil {
		return err
	}
	for _, raw := range entries {
		if err := load(raw); err != nil {
			return err
		}
	}
	return nil
}

// CreatedAt returns the collection's creation stamp in epoch seconds.
func (c *Collection) CreatedAt() int64 {
	return c.createdAt
}

// Config returns the collection's free-form configuration map, decoded from
// the col conf column.
func (c *Collection) Config() map[string]any {
	return c.config
}

// Tags returns the collection's registered tags.
func (c *Collection) Tags() []string {
	return c.tags
}

// NoteTypes returns the loaded note types.
func (c *Collection) NoteTypes() []*NoteType {
	return c.noteTypes
}

// Decks returns the loaded decks.
func (c *Collection) Decks() []*Deck {
	return c.decks
}

// OptionsGroups returns the loaded deck options groups.
func (c *Collection) OptionsGroups() []*DeckOptionsGroup {
	return c.optionsGroups
}

// NoteTypeByName returns the note type with the given name, or nil when the
// collection has none.
func (c *Collection) NoteTypeByName(name string) *NoteType {
	for _, nt := range c.noteTypes {
		if nt.Name() == name {
			return nt
		}
	}
	return nil
}

// NoteTypeByID returns the note type with the given id, or nil.
func (c *Collection) NoteTypeByID(id int64) *NoteType {
	for _, nt := range c.noteTypes {
		if nt.ID() == id {
			return nt
		}
	}
	return nil
}

// DeckByName returns the deck with the given name, or nil.
func (c *Collection) DeckByName(name string) *Deck {
	for _, d := range c.decks {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// DeckByID returns the deck with the given id, or nil.
func (c *Collection) DeckByID(id int64) *Deck {
	for _, d := range c.decks {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

// OptionsGroupByID returns the deck options group with the given id, or nil.
func (c *Collection) OptionsGroupByID(id int64) *DeckOptionsGroup {
	for _, g := range c.optionsGroups {
		if g.ID() == id {
			return g
		}
	}
	return nil
}

// DefaultOptionsGroup returns the options group with the lowest id — the
// group fresh decks are pointed at.
func (c *Collection) DefaultOptionsGroup() *DeckOptionsGroup {
	var min *DeckOptionsGroup
	for _, g := range c.optionsGroups {
		if min == nil || g.ID() < min.ID() {
			min = g
		}
	}
	return min
}

// AddNoteType registers a note type, replacing any prior entry with the same
// id. This models the JSON map's upsert-by-key semantics.
func (c *Collection) AddNoteType(nt *NoteType) error {
	if nt == nil {
		return ErrNilEntity
	}
	for i, existing := range c.noteTypes {
		if existing.ID() == nt.ID() {
			c.noteTypes[i] = nt
			return nil
		}
	}
	c.noteTypes = append(c.noteTypes, nt)
	return nil
}

// AddDeck registers a deck.
func (c *Collection) AddDeck(d *Deck) error {
	if d == nil {
		return ErrNilEntity
	}
	c.decks = append(c.decks, d)
	return nil
}

// AddOptionsGroup registers a deck options group.
func (c *Collection) AddOptionsGroup(g *DeckOptionsGroup) error {
	if g == nil {
		return ErrNilEntity
	}
	c.optionsGroups = append(c.optionsGroups, g)
	return nil
}

// ModelsJSON re-reads the persisted models JSON map from storage, bypassing
// the in-memory registries.
func (c *Collection) ModelsJSON() (map[string]json.RawMessage, error) {
	return c.readEntityMap(columnModels)
}

// DecksJSON re-reads the persisted decks JSON map from storage.
func (c *Collection) DecksJSON() (map[string]json.RawMessage, error) {
	return c.readEntityMap(columnDecks)
}

func (c *Collection) readEntityMap(column string) (map[string]json.RawMessage, error) {
	encoded, err := c.colStore.ReadColumn(column)
	if err != nil {
		return nil, fmt.Errorf("failed to read col %s: %w", column, err)
	}
	entries := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(encoded), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode col %s: %w", column, err)
	}
	return entries, nil
}

// mergeIntoColumn implements the read-merge-write an entity save performs
// against its owning JSON column: the current persisted map is re-read from
// storage (not from memory, so sibling entity objects cannot lose each
// other's saves), the entity is upserted under its stringified id, and the
// column is rewritten together with the col mod stamp.
func (c *Collection) mergeIntoColumn(column string, id int64, entity any) error {
	entries, err := c.readEntityMap(column)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s entry %d: %w", column, id, err)
	}
	entries[strconv.FormatInt(id, 10)] = raw
	merged, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode col %s: %w", column, err)
	}
	mod := c.clock.NowSeconds()
	if err := c.colStore.WriteColumn(column, string(merged), mod); err != nil {
		return fmt.Errorf("failed to write col %s: %w", column, err)
	}
	c.lastModified = mod
	return nil
}
