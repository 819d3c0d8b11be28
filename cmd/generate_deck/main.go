// Command generate_deck creates a demo .apkg with sample vocabulary and
// literature cards from public domain sources.
// Usage: go run cmd/generate_deck/main.go [-out path/to/demo.apkg]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mrlokans/ankipkg/internal/anki"
	"github.com/mrlokans/ankipkg/internal/apkg"
)

const defaultOutputPath = "./demo.apkg"

func main() {
	outPath := flag.String("out", defaultOutputPath, "path to the generated .apkg file")
	flag.Parse()

	log.Printf("Generating demo package at %s...", *outPath)

	// Delete an existing package to start fresh
	if err := os.Remove(*outPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing package: %v", err)
	}

	err := apkg.Create(*outPath, func(pkg *apkg.Package) error {
		collection := pkg.Collection()

		if err := addVocabularyNotes(collection); err != nil {
			return err
		}
		if err := addQuoteNotes(collection); err != nil {
			return err
		}
		if err := addClozeNotes(collection); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to generate package: %v", err)
	}

	log.Println("Demo package generated successfully!")
}

// addVocabularyNotes builds a custom three-field note type and a deck of
// vocabulary cards on top of it.
func addVocabularyNotes(collection *anki.Collection) error {
	noteType, err := anki.NewNoteType(collection, "Vocabulary Word")
	if err != nil {
		return err
	}
	for _, fieldName := range []string{"Word", "Definition", "Example"} {
		if _, err := noteType.NewField(fieldName); err != nil {
			return err
		}
	}
	template := noteType.NewTemplate("Word -> Definition")
	if err := template.SetQuestionFormat("{{Word}}"); err != nil {
		return err
	}
	if err := template.SetAnswerFormat("{{FrontSide}}<hr id=answer>{{Definition}}<br><i>{{Example}}</i>"); err != nil {
		return err
	}
	if err := noteType.Save(); err != nil {
		return err
	}

	deck, err := anki.NewDeck(collection, "Demo::Vocabulary")
	if err != nil {
		return err
	}

	words := []struct {
		word       string
		definition string
		example    string
	}{
		{
			word:       "stoicism",
			definition: "The endurance of pain or hardship without the display of feelings and without complaint",
			example:    "He accepted his fate with remarkable stoicism.",
		},
		{
			word:       "ephemeral",
			definition: "Lasting for a very short time",
			example:    "Fame in the modern world is ephemeral.",
		},
		{
			word:       "perspicacious",
			definition: "Having a ready insight into and understanding of things",
			example:    "A perspicacious observer of human nature.",
		},
		{
			word:       "sagacity",
			definition: "The quality of being sagacious; wisdom or discernment",
			example:    "A man of great political sagacity.",
		},
		{
			word:       "equanimity",
			definition: "Mental calmness, composure, and evenness of temper, especially in a difficult situation",
			example:    "She accepted both success and failure with equanimity.",
		},
	}

	for _, w := range words {
		note, err := anki.NewNote(noteType, deck)
		if err != nil {
			return err
		}
		if err := note.SetField("word", w.word); err != nil {
			return err
		}
		if err := note.SetField("definition", w.definition); err != nil {
			return err
		}
		if err := note.SetField("example", w.example); err != nil {
			return err
		}
		note.SetTags([]string{"vocabulary", "demo"})
		if err := note.Save(); err != nil {
			return err
		}
		log.Printf("Added vocabulary word: %s", w.word)
	}
	return nil
}

// addQuoteNotes files quote cards under the stock Basic note type.
func addQuoteNotes(collection *anki.Collection) error {
	noteType := collection.NoteTypeByName(anki.StockBasicName)
	deck, err := anki.NewDeck(collection, "Demo::Quotes")
	if err != nil {
		return err
	}

	quotes := []struct {
		author string
		text   string
	}{
		{
			author: "Marcus Aurelius, Meditations",
			text:   "The happiness of your life depends upon the quality of your thoughts.",
		},
		{
			author: "Seneca, Letters from a Stoic",
			text:   "We suffer more often in imagination than in reality.",
		},
		{
			author: "Sun Tzu, The Art of War",
			text:   "In the midst of chaos, there is also opportunity.",
		},
		{
			author: "Oscar Wilde, The Picture of Dorian Gray",
			text:   "Experience is merely the name men gave to their mistakes.",
		},
		{
			author: "Leo Tolstoy, War and Peace",
			text:   "The two most powerful warriors are patience and time.",
		},
	}

	for _, q := range quotes {
		note, err := anki.NewNote(noteType, deck)
		if err != nil {
			return err
		}
		if err := note.SetField("front", "Who wrote: \""+q.text+"\""); err != nil {
			return err
		}
		if err := note.SetField("back", q.author); err != nil {
			return err
		}
		note.SetTags([]string{"quotes", "demo"})
		if err := note.Save(); err != nil {
			return err
		}
		log.Printf("Added quote by %s", q.author)
	}
	return nil
}

// addClozeNotes exercises the stock Cloze note type.
func addClozeNotes(collection *anki.Collection) error {
	noteType := collection.NoteTypeByName(anki.StockClozeName)
	deck, err := anki.NewDeck(collection, "Demo::Cloze")
	if err != nil {
		return err
	}

	texts := []string{
		"{{c1::Frankenstein}} was written by {{c2::Mary Shelley}} in {{c3::1818}}.",
		"{{c1::Pride and Prejudice}} opens with: \"It is a truth universally acknowledged...\"",
		"The Republic was written by {{c1::Plato}} around {{c2::375 BC}}.",
	}

	for _, text := range texts {
		note, err := anki.NewNote(noteType, deck)
		if err != nil {
			return err
		}
		if err := note.SetField("text", text); err != nil {
			return err
		}
		note.SetTags([]string{"literature", "demo"})
		if err := note.Save(); err != nil {
			return err
		}
	}
	log.Printf("Added %d cloze notes", len(texts))
	return nil
}
