package anki

import (
	"encoding/json"
	"fmt"
)

// Stock note type names seeded into every fresh collection.
const (
	StockBasicName            = "Basic"
	StockBasicReversedName    = "Basic (and reversed card)"
	StockBasicOptReversedName = "Basic (optional reversed card)"
	StockBasicTypeAnswerName  = "Basic (type in the answer)"
	StockClozeName            = "Cloze"
)

const clozeCSS = defaultCSS + "\n.cloze {\n  font-weight: bold;\n  color: blue;\n}\n.nightMode .cloze {\n  color: lightblue;\n}\n"

// stockTemplate describes one card template of a stock note type. The
// formats are Anki's own and use constructs this layer does not validate
// ({{type:...}}, {{#Field}} sections), so they are assigned directly rather
// than through the validating setters.
type stockTemplate struct {
	name string
	qfmt string
	afmt string
}

type stockNoteType struct {
	name      string
	cloze     bool
	css       string
	fields    []string
	templates []stockTemplate
	req       string
}

var stockNoteTypes = []stockNoteType{
	{
		name:   StockBasicName,
		fields: []string{"Front", "Back"},
		templates: []stockTemplate{
			{"Card 1", "{{Front}}", "{{FrontSide}}\n\n<hr id=answer>\n\n{{Back}}"},
		},
		req: `[[0,"any",[0]]]`,
	},
	{
		name:   StockBasicReversedName,
		fields: []string{"Front", "Back"},
		templates: []stockTemplate{
			{"Card 1", "{{Front}}", "{{FrontSide}}\n\n<hr id=answer>\n\n{{Back}}"},
			{"Card 2", "{{Back}}", "{{FrontSide}}\n\n<hr id=answer>\n\n{{Front}}"},
		},
		req: `[[0,"any",[0]],[1,"any",[1]]]`,
	},
	{
		name:   StockBasicOptReversedName,
		fields: []string{"Front", "Back", "Add Reverse"},
		templates: []stockTemplate{
			{"Card 1", "{{Front}}", "{{FrontSide}}\n\n<hr id=answer>\n\n{{Back}}"},
			{"Card 2", "{{#Add Reverse}}{{Back}}{{/Add Reverse}}", "{{FrontSide}}\n\n<hr id=answer>\n\n{{Front}}"},
		},
		req: `[[0,"any",[0]],[1,"all",[1,2]]]`,
	},
	{
		name:   StockBasicTypeAnswerName,
		fields: []string{"Front", "Back"},
		templates: []stockTemplate{
			{"Card 1", "{{Front}}\n\n{{type:Back}}", "{{Front}}\n\n<hr id=answer>\n\n{{type:Back}}"},
		},
		req: `[[0,"any",[0]]]`,
	},
	{
		name:   StockClozeName,
		cloze:  true,
		css:    clozeCSS,
		fields: []string{"Text", "Back Extra"},
		templates: []stockTemplate{
			{"Cloze", "{{cloze:Text}}", "{{cloze:Text}}<br>\n{{Back Extra}}"},
		},
	},
}

// SeedStockNoteTypes creates and saves the five stock note types on a fresh
// collection. It is a no-op when the collection already has note types, so
// re-opening a package never duplicates them.
func SeedStockNoteTypes(c *Collection) error {
	if len(c.NoteTypes()) > 0 {
		return nil
	}
	for _, stock := range stockNoteTypes {
		nt, err := NewNoteType(c, stock.name)
		if err != nil {
			return fmt.Errorf("failed to create stock note type %q: %w", stock.name, err)
		}
		nt.SetCloze(stock.cloze)
		if stock.css != "" {
			nt.SetCSS(stock.css)
		}
		for _, fieldName := range stock.fields {
			if _, err := nt.NewField(fieldName); err != nil {
				return fmt.Errorf("failed to add field %q to %q: %w", fieldName, stock.name, err)
			}
		}
		for _, tmpl := range stock.templates {
			t := nt.NewTemplate(tmpl.name)
			t.data.QuestionFormat = tmpl.qfmt
			t.data.AnswerFormat = tmpl.afmt
		}
		if stock.req != "" {
			nt.data.Req = json.RawMessage(stock.req)
		}
		if err := nt.Save(); err != nil {
			return fmt.Errorf("failed to save stock note type %q: %w", stock.name, err)
		}
	}
	return nil
}
