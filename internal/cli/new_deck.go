package cli

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/ankipkg/internal/anki"
	"github.com/mrlokans/ankipkg/internal/apkg"
	"github.com/mrlokans/ankipkg/internal/config"
	"github.com/mrlokans/ankipkg/internal/utils"
)

// NewDeckCommand builds an .apkg from a CSV of note rows.
type NewDeckCommand struct {
	DeckName     string
	NoteTypeName string
	CSVPath      string
	Output       string
	Verbose      bool
}

// NewNewDeckCommand creates a new NewDeckCommand
func NewNewDeckCommand() *NewDeckCommand {
	return &NewDeckCommand{}
}

// ParseFlags parses command line flags
func (cmd *NewDeckCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("new-deck", flag.ExitOnError)

	fs.StringVar(&cmd.DeckName, "name", "", "Deck name (defaults to the CSV filename)")
	fs.StringVar(&cmd.NoteTypeName, "notetype", anki.StockBasicName, "Note type for the notes")
	fs.StringVar(&cmd.CSVPath, "csv", "", "CSV file with one note per row")
	fs.StringVar(&cmd.Output, "output", "", "Output .apkg path (defaults to the deck name)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s new-deck -csv notes.csv [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Build an Anki .apkg from a CSV file.\n\n")
		fmt.Fprintf(os.Stderr, "CSV columns map positionally onto the note type's fields\n")
		fmt.Fprintf(os.Stderr, "(Front, Back for the default Basic type). One extra trailing\n")
		fmt.Fprintf(os.Stderr, "column is read as space-separated tags.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s new-deck -csv spanish.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s new-deck -csv capitals.csv -name Geography -output geo.apkg\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.CSVPath == "" {
		fs.Usage()
		return fmt.Errorf("-csv is required")
	}
	return nil
}

// Run executes the new-deck command
func (cmd *NewDeckCommand) Run() error {
	cfg := config.NewConfig()

	deckName := cmd.DeckName
	if deckName == "" {
		base := filepath.Base(cmd.CSVPath)
		deckName = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if deckName == "" {
		deckName = cfg.Output.DeckName
	}

	output := cmd.Output
	if output == "" {
		output = filepath.Join(cfg.Output.Dir, utils.SanitizeFilename(deckName)+".apkg")
	}

	rows, err := readNoteRows(cmd.CSVPath)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no note rows in %s", cmd.CSVPath)
	}

	notes := 0
	err = apkg.CreateIn(cfg.Package.ScratchDir, output, func(pkg *apkg.Package) error {
		collection := pkg.Collection()

		noteType := collection.NoteTypeByName(cmd.NoteTypeName)
		if noteType == nil {
			return fmt.Errorf("unknown note type %q", cmd.NoteTypeName)
		}
		deck, err := anki.NewDeck(collection, deckName)
		if err != nil {
			return err
		}

		fieldNames := noteType.SnakeFieldNames()
		for i, row := range rows {
			note, err := buildNote(noteType, deck, fieldNames, row)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			if err := note.Save(); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			notes++
			if cmd.Verbose {
				fmt.Printf("  + note %d (%d cards)\n", note.ID(), len(note.Cards()))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d notes, deck %q)\n", output, notes, deckName)
	return nil
}

// buildNote maps one CSV row positionally onto the note type's fields. A
// single trailing extra column is read as space-separated tags.
func buildNote(noteType *anki.NoteType, deck *anki.Deck, fieldNames []string, row []string) (*anki.Note, error) {
	if len(row) > len(fieldNames)+1 {
		return nil, fmt.Errorf("%d columns but note type %q has %d fields", len(row), noteType.Name(), len(fieldNames))
	}
	note, err := anki.NewNote(noteType, deck)
	if err != nil {
		return nil, err
	}
	for i, value := range row {
		if i == len(fieldNames) {
			note.SetTags(strings.Fields(value))
			break
		}
		if err := note.SetField(fieldNames[i], value); err != nil {
			return nil, err
		}
	}
	return note, nil
}

// readNoteRows reads the CSV, tolerating rows of varying width.
func readNoteRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}
