package anki

// Row structs mapping one-to-one onto the Anki SQLite schema. Column names
// and table names must match the fixed schema exactly for the produced
// database to be importable by the Anki application.

// ColRow is the single row of the col table. The three JSON columns hold the
// denormalized entity maps (id-keyed) for note types, decks and deck options
// groups.
type ColRow struct {
	ID             int64  `gorm:"column:id;primaryKey"`
	CreatedAt      int64  `gorm:"column:crt"`
	LastModified   int64  `gorm:"column:mod"`
	SchemaModified int64  `gorm:"column:scm"`
	Version        int    `gorm:"column:ver"`
	Dirty          int    `gorm:"column:dty"`
	USN            int    `gorm:"column:usn"`
	LastSync       int64  `gorm:"column:ls"`
	Config         string `gorm:"column:conf"`
	Models         string `gorm:"column:models"`
	Decks          string `gorm:"column:decks"`
	DeckConfigs    string `gorm:"column:dconf"`
	Tags           string `gorm:"column:tags"`
}

// TableName maps ColRow onto the col table.
func (ColRow) TableName() string {
	return "col"
}

// NoteRow is one row of the notes table.
type NoteRow struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	GUID         string `gorm:"column:guid"`
	NoteTypeID   int64  `gorm:"column:mid"`
	LastModified int64  `gorm:"column:mod"`
	USN          int    `gorm:"column:usn"`
	Tags         string `gorm:"column:tags"`
	Fields       string `gorm:"column:flds"`
	SortField    string `gorm:"column:sfld"`
	Checksum     string `gorm:"column:csum"`
	Flags        int    `gorm:"column:flags"`
	Data         string `gorm:"column:data"`
}

// TableName maps NoteRow onto the notes table.
func (NoteRow) TableName() string {
	return "notes"
}

// CardRow is one row of the cards table. The scheduling fields are opaque to
// this layer and zero-initialized for new cards.
type CardRow struct {
	ID              int64  `gorm:"column:id;primaryKey"`
	NoteID          int64  `gorm:"column:nid"`
	DeckID          int64  `gorm:"column:did"`
	TemplateOrdinal int    `gorm:"column:ord"`
	LastModified    int64  `gorm:"column:mod"`
	USN             int    `gorm:"column:usn"`
	Type            int    `gorm:"column:type"`
	Queue           int    `gorm:"column:queue"`
	Due             int    `gorm:"column:due"`
	Interval        int    `gorm:"column:ivl"`
	Factor          int    `gorm:"column:factor"`
	Reps            int    `gorm:"column:reps"`
	Lapses          int    `gorm:"column:lapses"`
	Left            int    `gorm:"column:left"`
	OriginalDue     int    `gorm:"column:odue"`
	OriginalDeckID  int64  `gorm:"column:odid"`
	Flags           int    `gorm:"column:flags"`
	Data            string `gorm:"column:data"`
}

// TableName maps CardRow onto the cards table.
func (CardRow) TableName() string {
	return "cards"
}
