package anki

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	// noteTypeStandard and noteTypeCloze are the values of the model "type"
	// key distinguishing standard from cloze-deletion note types.
	noteTypeStandard = 0
	noteTypeCloze    = 1

	defaultFieldFont = "Arial"
	defaultFieldSize = 20

	// frontSidePlaceholder may appear in answer formats only.
	frontSidePlaceholder = "FrontSide"
	clozePrefix          = "cloze:"
)

// defaultCSS is the stylesheet Anki assigns to new note types.
const defaultCSS = ".card {\n  font-family: arial;\n  font-size: 20px;\n  text-align: center;\n  color: black;\n  background-color: white;\n}\n"

const defaultLatexPreamble = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"

const defaultLatexPostamble = "\\end{document}"

// legacyNoteTypeNames are the stock note types that Anki serializes without
// the tags and vers keys. Every other note type, the stock Cloze type
// included, carries both keys.
var legacyNoteTypeNames = map[string]bool{
	"Basic":                          true,
	"Basic (and reversed card)":      true,
	"Basic (optional reversed card)": true,
	"Basic (type in the answer)":     true,
}

// placeholderPattern matches {{...}} placeholders in card template formats.
var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

type noteFieldJSON struct {
	Name        string `json:"name"`
	Ordinal     int    `json:"ord"`
	Sticky      bool   `json:"sticky"`
	RTL         bool   `json:"rtl"`
	Font        string `json:"font"`
	Size        int    `json:"size"`
	Description string `json:"description"`
}

type cardTemplateJSON struct {
	Name                  string `json:"name"`
	Ordinal               int    `json:"ord"`
	QuestionFormat        string `json:"qfmt"`
	AnswerFormat          string `json:"afmt"`
	BrowserQuestionFormat string `json:"bqfmt"`
	BrowserAnswerFormat   string `json:"bafmt"`
	DeckOverrideID        *int64 `json:"did"`
	BrowserFont           string `json:"bfont,omitempty"`
	BrowserFontSize       int    `json:"bsize,omitempty"`
}

// noteTypeJSON is the exact models entry shape the Anki application expects.
// req, tags and vers are carried opaquely: their structure is Anki's
// business, this layer only preserves them for write-compatibility.
type noteTypeJSON struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Type           int                 `json:"type"`
	Mod            int64               `json:"mod"`
	USN            int                 `json:"usn"`
	SortFieldIndex int                 `json:"sortf"`
	DeckID         *int64              `json:"did"`
	Templates      []*cardTemplateJSON `json:"tmpls"`
	Fields         []*noteFieldJSON    `json:"flds"`
	CSS            string              `json:"css"`
	LatexPreamble  string              `json:"latexPre"`
	LatexPostamble string              `json:"latexPost"`
	LatexSVG       bool                `json:"latexsvg"`
	Req            json.RawMessage     `json:"req,omitempty"`
	Tags           json.RawMessage     `json:"tags,omitempty"`
	Vers           json.RawMessage     `json:"vers,omitempty"`
}

// NoteType is a note schema: ordered fields, ordered card templates and the
// styling shared by all notes of the type. Its canonical state is one entry
// of the models JSON map inside the col row.
type NoteType struct {
	collection *Collection
	data       noteTypeJSON
	fields     []*NoteField
	templates  []*CardTemplate
}

// NoteField is one field slot of a note type. Appending via
// NoteType.NewField is the only mutation path; ordinals are assigned
// positionally and never change.
type NoteField struct {
	noteType *NoteType
	data     noteFieldJSON
}

// CardTemplate is one card-generation rule of a note type.
type CardTemplate struct {
	noteType *NoteType
	data     cardTemplateJSON
}

// NewNoteType creates a fresh note type with Anki's default styling and
// registers it on the collection. Unlike decks, a fresh note type is not
// persisted until Save is called, so that fields and templates can be added
// first.
func NewNoteType(c *Collection, name string) (*NoteType, error) {
	nt := &NoteType{collection: c}
	nt.data.ID = c.clock.NextMillis()
	nt.data.Name = name
	nt.data.USN = usnNew
	nt.data.CSS = defaultCSS
	nt.data.LatexPreamble = defaultLatexPreamble
	nt.data.LatexPostamble = defaultLatexPostamble
	if err := c.AddNoteType(nt); err != nil {
		return nil, err
	}
	return nt, nil
}

// noteTypeFromJSON rehydrates a note type from one decoded models map entry
// and registers it on the collection.
func noteTypeFromJSON(c *Collection, raw json.RawMessage) (*NoteType, error) {
	nt := &NoteType{collection: c}
	if err := json.Unmarshal(raw, &nt.data); err != nil {
		return nil, fmt.Errorf("failed to decode note type: %w", err)
	}
	for _, fd := range nt.data.Fields {
		nt.fields = append(nt.fields, &NoteField{noteType: nt, data: *fd})
	}
	for _, td := range nt.data.Templates {
		nt.templates = append(nt.templates, &CardTemplate{noteType: nt, data: *td})
	}
	if err := c.AddNoteType(nt); err != nil {
		return nil, err
	}
	return nt, nil
}

// ID returns the note type's millisecond-timestamp id.
func (nt *NoteType) ID() int64 {
	return nt.data.ID
}

// Name returns the note type's name.
func (nt *NoteType) Name() string {
	return nt.data.Name
}

// Cloze reports whether this is a cloze-deletion note type.
func (nt *NoteType) Cloze() bool {
	return nt.data.Type == noteTypeCloze
}

// SetCloze switches the note type between standard and cloze-deletion
// behaviour.
func (nt *NoteType) SetCloze(cloze bool) {
	if cloze {
		nt.data.Type = noteTypeCloze
	} else {
		nt.data.Type = noteTypeStandard
	}
}

// CSS returns the note type's stylesheet.
func (nt *NoteType) CSS() string {
	return nt.data.CSS
}

// SetCSS replaces the note type's stylesheet.
func (nt *NoteType) SetCSS(css string) {
	nt.data.CSS = css
}

// Fields returns the note fields in ordinal order.
func (nt *NoteType) Fields() []*NoteField {
	return nt.fields
}

// Templates returns the card templates in ordinal order.
func (nt *NoteType) Templates() []*CardTemplate {
	return nt.templates
}

// NewField appends a field slot to the note type. The ordinal is the length
// of the field list before the append. Two fields whose names collapse to
// the same snake_case key would make note field access ambiguous, so such an
// addition fails with ErrFieldNameCollision.
func (nt *NoteType) NewField(name string) (*NoteField, error) {
	snake := snakeCase(name)
	for _, f := range nt.fields {
		if snakeCase(f.data.Name) == snake {
			return nil, fmt.Errorf("%w: %q vs %q", ErrFieldNameCollision, name, f.data.Name)
		}
	}
	f := &NoteField{noteType: nt}
	f.data.Name = name
	f.data.Ordinal = len(nt.fields)
	f.data.Font = defaultFieldFont
	f.data.Size = defaultFieldSize
	nt.fields = append(nt.fields, f)
	return f, nil
}

// NewTemplate appends a card template to the note type. The ordinal is the
// length of the template list before the append.
func (nt *NoteType) NewTemplate(name string) *CardTemplate {
	t := &CardTemplate{noteType: nt}
	t.data.Name = name
	t.data.Ordinal = len(nt.templates)
	nt.templates = append(nt.templates, t)
	return t
}

// FieldNames returns the field names sorted by ordinal.
func (nt *NoteType) FieldNames() []string {
	fields := make([]*NoteField, len(nt.fields))
	copy(fields, nt.fields)
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].data.Ordinal < fields[j].data.Ordinal
	})
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.data.Name
	}
	return names
}

// SnakeFieldNames returns the ordinal-ordered field names lowercased with
// spaces replaced by underscores. These are the keys of a note's
// field-content map.
func (nt *NoteType) SnakeFieldNames() []string {
	names := nt.FieldNames()
	for i, name := range names {
		names[i] = snakeCase(name)
	}
	return names
}

// SortFieldName returns the name of the field used for duplicate detection
// and browser sorting.
func (nt *NoteType) SortFieldName() string {
	names := nt.FieldNames()
	if nt.data.SortFieldIndex < 0 || nt.data.SortFieldIndex >= len(names) {
		return ""
	}
	return names[nt.data.SortFieldIndex]
}

// SetSortField points the sort field at an existing field ordinal.
func (nt *NoteType) SetSortField(ordinal int) error {
	if ordinal < 0 || ordinal >= len(nt.fields) {
		return fmt.Errorf("sort field ordinal %d does not reference an existing field", ordinal)
	}
	nt.data.SortFieldIndex = ordinal
	return nil
}

// AllowedQuestionFormatFieldNames returns the placeholder names a question
// format may reference: every field name, plus cloze:-prefixed field names
// when the note type is a cloze type.
func (nt *NoteType) AllowedQuestionFormatFieldNames() []string {
	names := nt.FieldNames()
	if nt.Cloze() {
		for _, name := range nt.FieldNames() {
			names = append(names, clozePrefix+name)
		}
	}
	return names
}

// AllowedAnswerFormatFieldNames returns the placeholder names an answer
// format may reference: the question set plus the literal FrontSide.
func (nt *NoteType) AllowedAnswerFormatFieldNames() []string {
	return append(nt.AllowedQuestionFormatFieldNames(), frontSidePlaceholder)
}

// toJSON collects the note type and its children into the serialized models
// entry shape.
func (nt *NoteType) toJSON() *noteTypeJSON {
	out := nt.data
	out.Fields = make([]*noteFieldJSON, len(nt.fields))
	for i, f := range nt.fields {
		fd := f.data
		out.Fields[i] = &fd
	}
	out.Templates = make([]*cardTemplateJSON, len(nt.templates))
	for i, t := range nt.templates {
		td := t.data
		out.Templates[i] = &td
	}
	if legacyNoteTypeNames[out.Name] {
		out.Tags = nil
		out.Vers = nil
	} else {
		if out.Tags == nil {
			out.Tags = json.RawMessage("[]")
		}
		if out.Vers == nil {
			out.Vers = json.RawMessage("[]")
		}
	}
	return &out
}

// Save merges the note type into the persisted models JSON map and rewrites
// the col row.
func (nt *NoteType) Save() error {
	nt.data.Mod = nt.collection.clock.NowSeconds()
	return nt.collection.mergeIntoColumn(columnModels, nt.data.ID, nt.toJSON())
}

// Name returns the field's name.
func (f *NoteField) Name() string {
	return f.data.Name
}

// Ordinal returns the field's position within its note type.
func (f *NoteField) Ordinal() int {
	return f.data.Ordinal
}

// SetSticky marks the field as sticky in the Anki editor.
func (f *NoteField) SetSticky(sticky bool) {
	f.data.Sticky = sticky
}

// SetDescription sets the hint text shown for the empty field.
func (f *NoteField) SetDescription(desc string) {
	f.data.Description = desc
}

// Name returns the template's name.
func (t *CardTemplate) Name() string {
	return t.data.Name
}

// Ordinal returns the template's position within its note type.
func (t *CardTemplate) Ordinal() int {
	return t.data.Ordinal
}

// NoteType returns the owning note type.
func (t *CardTemplate) NoteType() *NoteType {
	return t.noteType
}

// QuestionFormat returns the template's question format string.
func (t *CardTemplate) QuestionFormat() string {
	return t.data.QuestionFormat
}

// AnswerFormat returns the template's answer format string.
func (t *CardTemplate) AnswerFormat() string {
	return t.data.AnswerFormat
}

// SetQuestionFormat validates and assigns the question format. Every {{...}}
// placeholder must name an allowed question field; a violation fails the
// assignment and leaves the prior format unchanged.
func (t *CardTemplate) SetQuestionFormat(format string) error {
	if err := validateFormat(format, t.noteType.AllowedQuestionFormatFieldNames()); err != nil {
		return err
	}
	t.data.QuestionFormat = format
	return nil
}

// SetAnswerFormat validates and assigns the answer format. The allowed set
// additionally contains the literal FrontSide placeholder.
func (t *CardTemplate) SetAnswerFormat(format string) error {
	if err := validateFormat(format, t.noteType.AllowedAnswerFormatFieldNames()); err != nil {
		return err
	}
	t.data.AnswerFormat = format
	return nil
}

// validateFormat checks every {{...}} placeholder in format against the
// allowed names.
func validateFormat(format string, allowed []string) error {
	allowedSet := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = true
	}
	for _, match := range placeholderPattern.FindAllStringSubmatch(format, -1) {
		if !allowedSet[match[1]] {
			return fmt.Errorf("%w: {{%s}}", ErrInvalidFormat, match[1])
		}
	}
	return nil
}

// snakeCase lowercases a field name and replaces spaces with underscores.
// The transform is not injective; NewField rejects additions that would
// collide.
func snakeCase(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
