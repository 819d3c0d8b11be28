package anki

import (
	"encoding/json"
	"fmt"
)

// deckOptionsJSON is the exact dconf entry shape the Anki application
// expects. Key names must be reproduced verbatim.
type deckOptionsJSON struct {
	ID       int64            `json:"id"`
	Mod      int64            `json:"mod"`
	Name     string           `json:"name"`
	USN      int              `json:"usn"`
	MaxTaken int              `json:"maxTaken"`
	Autoplay bool             `json:"autoplay"`
	Timer    int              `json:"timer"`
	ReplayQ  bool             `json:"replayq"`
	New      newOptionsJSON   `json:"new"`
	Rev      revOptionsJSON   `json:"rev"`
	Lapse    lapseOptionsJSON `json:"lapse"`
	Dyn      int              `json:"dyn"`
}

type newOptionsJSON struct {
	Bury          bool      `json:"bury"`
	Delays        []float64 `json:"delays"`
	InitialFactor int       `json:"initialFactor"`
	Ints          []int     `json:"ints"`
	Order         int       `json:"order"`
	PerDay        int       `json:"perDay"`
	Separate      bool      `json:"separate"`
}

type revOptionsJSON struct {
	Bury       bool    `json:"bury"`
	Ease4      float64 `json:"ease4"`
	Fuzz       float64 `json:"fuzz"`
	IvlFct     float64 `json:"ivlFct"`
	MaxIvl     int     `json:"maxIvl"`
	MinSpace   int     `json:"minSpace"`
	PerDay     int     `json:"perDay"`
	HardFactor float64 `json:"hardFactor"`
}

type lapseOptionsJSON struct {
	Delays      []float64 `json:"delays"`
	LeechAction int       `json:"leechAction"`
	LeechFails  int       `json:"leechFails"`
	MinInt      int       `json:"minInt"`
	Mult        float64   `json:"mult"`
}

// defaultDeckOptions returns Anki's default review-scheduling parameters.
func defaultDeckOptions() deckOptionsJSON {
	return deckOptionsJSON{
		MaxTaken: 60,
		Autoplay: true,
		ReplayQ:  true,
		New: newOptionsJSON{
			Bury:          true,
			Delays:        []float64{1, 10},
			InitialFactor: 2500,
			Ints:          []int{1, 4, 7},
			Order:         1,
			PerDay:        20,
			Separate:      true,
		},
		Rev: revOptionsJSON{
			Bury:       true,
			Ease4:      1.3,
			Fuzz:       0.05,
			IvlFct:     1,
			MaxIvl:     36500,
			MinSpace:   1,
			PerDay:     100,
			HardFactor: 1.2,
		},
		Lapse: lapseOptionsJSON{
			Delays:      []float64{10},
			LeechAction: 0,
			LeechFails:  8,
			MinInt:      1,
			Mult:        0,
		},
	}
}

// DeckOptionsGroup is a named bundle of review-scheduling parameters. Its
// canonical state is one entry of the dconf JSON map inside the col row,
// keyed by its stringified id. Decks reference a group by id.
type DeckOptionsGroup struct {
	collection *Collection
	data       deckOptionsJSON
}

// NewDeckOptionsGroup creates a fresh options group with Anki's default
// parameters, registers it on the collection and persists it immediately.
func NewDeckOptionsGroup(c *Collection, name string) (*DeckOptionsGroup, error) {
	g := &DeckOptionsGroup{collection: c, data: defaultDeckOptions()}
	g.data.ID = c.clock.NextMillis()
	g.data.Name = name
	g.data.USN = usnNew
	if err := c.AddOptionsGroup(g); err != nil {
		return nil, err
	}
	if err := g.Save(); err != nil {
		return nil, err
	}
	return g, nil
}

// deckOptionsGroupFromJSON rehydrates an options group from one decoded
// dconf map entry and registers it on the collection.
func deckOptionsGroupFromJSON(c *Collection, raw json.RawMessage) (*DeckOptionsGroup, error) {
	g := &DeckOptionsGroup{collection: c}
	if err := json.Unmarshal(raw, &g.data); err != nil {
		return nil, fmt.Errorf("failed to decode deck options group: %w", err)
	}
	if err := c.AddOptionsGroup(g); err != nil {
		return nil, err
	}
	return g, nil
}

// ID returns the group's millisecond-timestamp id.
func (g *DeckOptionsGroup) ID() int64 {
	return g.data.ID
}

// Name returns the group's name.
func (g *DeckOptionsGroup) Name() string {
	return g.data.Name
}

// LastModified returns the group's modification stamp in epoch seconds.
func (g *DeckOptionsGroup) LastModified() int64 {
	return g.data.Mod
}

// Save merges the group into the persisted dconf JSON map and rewrites the
// col row.
func (g *DeckOptionsGroup) Save() error {
	g.data.Mod = g.collection.clock.NowSeconds()
	return g.collection.mergeIntoColumn(columnDeckConfigs, g.data.ID, &g.data)
}
