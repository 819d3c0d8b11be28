package config

// Defaults for produced packages
const (
	// DefaultOutputDir is where .apkg files land unless overridden
	DefaultOutputDir = "."

	// DefaultDeckName is the deck notes are filed under when no deck is named
	DefaultDeckName = "Default"
)
