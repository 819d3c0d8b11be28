package anki

import "errors"

// Usage-contract errors. These are programmer errors raised synchronously at
// the violating call; none of them is retried or recovered internally.
var (
	// ErrNoSuchField is returned by Note.Field/Note.SetField for a name not
	// present in the note type's snake_case field name set.
	ErrNoSuchField = errors.New("no such field on note type")

	// ErrInvalidFormat is returned when a question or answer format
	// references a placeholder that is not allowed for the note type.
	ErrInvalidFormat = errors.New("format references a disallowed field placeholder")

	// ErrTemplateMismatch is returned when a card is paired with a template
	// belonging to a different note type than its note's.
	ErrTemplateMismatch = errors.New("card template belongs to a different note type")

	// ErrDifferentCollections is returned when a note's note type and deck do
	// not belong to the same collection.
	ErrDifferentCollections = errors.New("note type and deck belong to different collections")

	// ErrFieldNameCollision is returned when adding a note field whose
	// snake_case name collides with an existing field's.
	ErrFieldNameCollision = errors.New("field name collides with an existing field after snake_casing")

	// ErrNilEntity is returned when registering a nil entity on a collection.
	ErrNilEntity = errors.New("cannot register a nil entity")
)
