package cli

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/mrlokans/ankipkg/internal/apkg"
)

// InspectCommand summarizes an existing .apkg without loading the full
// object graph.
type InspectCommand struct {
	File string
}

// NewInspectCommand creates a new InspectCommand
func NewInspectCommand() *InspectCommand {
	return &InspectCommand{}
}

// ParseFlags parses command line flags
func (cmd *InspectCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)

	fs.StringVar(&cmd.File, "file", "", "Path to the .apkg to inspect")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s inspect -file deck.apkg\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a summary of an Anki package.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" && fs.NArg() > 0 {
		cmd.File = fs.Arg(0)
	}
	if cmd.File == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}
	return nil
}

// Run executes the inspect command
func (cmd *InspectCommand) Run() error {
	summary, err := apkg.Inspect(cmd.File)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", cmd.File)
	fmt.Printf("  notes: %d\n", summary.Notes)
	fmt.Printf("  cards: %d\n", summary.Cards)
	fmt.Printf("  media: %d\n", summary.MediaFiles)

	sort.Strings(summary.Decks)
	fmt.Printf("  decks:\n")
	for _, name := range summary.Decks {
		fmt.Printf("    - %s\n", name)
	}

	sort.Strings(summary.NoteTypes)
	fmt.Printf("  note types:\n")
	for _, name := range summary.NoteTypes {
		fmt.Printf("    - %s\n", name)
	}
	return nil
}
