package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Package
		Output
	}

	Package struct {
		ScratchDir string // Parent directory for not-yet-zipped package state
	}

	Output struct {
		Dir      string // Directory .apkg files are written to
		DeckName string // Deck name used when none is given
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ankipkg_scratch_dir", "") // empty = system temp directory
	v.SetDefault("ankipkg_output_dir", DefaultOutputDir)
	v.SetDefault("ankipkg_deck_name", DefaultDeckName)

	return &Config{
		Package: Package{
			ScratchDir: v.GetString("ANKIPKG_SCRATCH_DIR"),
		},
		Output: Output{
			Dir:      v.GetString("ANKIPKG_OUTPUT_DIR"),
			DeckName: v.GetString("ANKIPKG_DECK_NAME"),
		},
	}
}
