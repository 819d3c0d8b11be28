package database

// The fixed Anki collection schema. The core consumes this verbatim: table
// shapes, column affinities and indexes must match what the Anki application
// produces, or the packaged database will not import. revlog and graves are
// created but never written by this layer.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS col (
		id integer PRIMARY KEY,
		crt integer NOT NULL,
		mod integer NOT NULL,
		scm integer NOT NULL,
		ver integer NOT NULL,
		dty integer NOT NULL,
		usn integer NOT NULL,
		ls integer NOT NULL,
		conf text NOT NULL,
		models text NOT NULL,
		decks text NOT NULL,
		dconf text NOT NULL,
		tags text NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS notes (
		id integer PRIMARY KEY,
		guid text NOT NULL,
		mid integer NOT NULL,
		mod integer NOT NULL,
		usn integer NOT NULL,
		tags text NOT NULL,
		flds text NOT NULL,
		sfld integer NOT NULL,
		csum integer NOT NULL,
		flags integer NOT NULL,
		data text NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS cards (
		id integer PRIMARY KEY,
		nid integer NOT NULL,
		did integer NOT NULL,
		ord integer NOT NULL,
		mod integer NOT NULL,
		usn integer NOT NULL,
		type integer NOT NULL,
		queue integer NOT NULL,
		due integer NOT NULL,
		ivl integer NOT NULL,
		factor integer NOT NULL,
		reps integer NOT NULL,
		lapses integer NOT NULL,
		left integer NOT NULL,
		odue integer NOT NULL,
		odid integer NOT NULL,
		flags integer NOT NULL,
		data text NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS revlog (
		id integer PRIMARY KEY,
		cid integer NOT NULL,
		usn integer NOT NULL,
		ease integer NOT NULL,
		ivl integer NOT NULL,
		lastIvl integer NOT NULL,
		factor integer NOT NULL,
		time integer NOT NULL,
		type integer NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS graves (
		usn integer NOT NULL,
		oid integer NOT NULL,
		type integer NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS ix_notes_usn ON notes (usn);`,
	`CREATE INDEX IF NOT EXISTS ix_cards_usn ON cards (usn);`,
	`CREATE INDEX IF NOT EXISTS ix_revlog_usn ON revlog (usn);`,
	`CREATE INDEX IF NOT EXISTS ix_cards_nid ON cards (nid);`,
	`CREATE INDEX IF NOT EXISTS ix_cards_sched ON cards (did, queue, due);`,
	`CREATE INDEX IF NOT EXISTS ix_notes_csum ON notes (csum);`,
	`CREATE INDEX IF NOT EXISTS ix_revlog_cid ON revlog (cid);`,
}

// collectionVersion is the col.ver value of the schema above.
const collectionVersion = 11

// Seed JSON for a fresh col row. Key names are fixed by the Anki
// application. Stock note types are not part of this seed — they are created
// through the domain layer (anki.SeedStockNoteTypes) so that their
// serialization goes through the same code path as user-created note types.
const (
	defaultConfJSON = `{"activeDecks":[1],"addToCur":true,"collapseTime":1200,"curDeck":1,"curModel":null,"dueCounts":true,"estTimes":true,"newBury":true,"newSpread":0,"nextPos":1,"sortBackwards":false,"sortType":"noteFld","timeLim":0}`

	defaultDecksJSON = `{"1":{"id":1,"mod":0,"name":"Default","usn":0,"lrnToday":[0,0],"revToday":[0,0],"newToday":[0,0],"timeToday":[0,0],"collapsed":true,"browserCollapsed":true,"desc":"","dyn":0,"conf":1,"extendNew":0,"extendRev":0}}`

	defaultDeckConfigsJSON = `{"1":{"id":1,"mod":0,"name":"Default","usn":0,"maxTaken":60,"autoplay":true,"timer":0,"replayq":true,"new":{"bury":true,"delays":[1,10],"initialFactor":2500,"ints":[1,4,7],"order":1,"perDay":20,"separate":true},"rev":{"bury":true,"ease4":1.3,"fuzz":0.05,"ivlFct":1,"maxIvl":36500,"minSpace":1,"perDay":100,"hardFactor":1.2},"lapse":{"delays":[10],"leechAction":0,"leechFails":8,"minInt":1,"mult":0},"dyn":0}}`

	emptyModelsJSON = `{}`
	emptyTagsJSON   = `[]`
)
