// Package noterepo provides row-level persistence for notes and cards.
//
// This package implements the NoteStore interface defined in
// internal/anki/interfaces.go:
//
//	var _ anki.NoteStore = (*Repository)(nil)
package noterepo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/ankipkg/internal/anki"
)

// Repository handles all notes and cards table operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notes/cards repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ anki.NoteStore = (*Repository)(nil)

// NoteExists reports whether a note row with the given id exists.
func (r *Repository) NoteExists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&anki.NoteRow{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count notes: %w", err)
	}
	return count > 0, nil
}

// GetNote retrieves a note row by id. Returns nil without error when the row
// does not exist.
func (r *Repository) GetNote(id int64) (*anki.NoteRow, error) {
	var row anki.NoteRow
	err := r.db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &row, nil
}

// GetCards retrieves the card rows of a note ordered by template ordinal.
// The ordering is load-bearing: note rehydration pairs these rows with card
// templates positionally.
func (r *Repository) GetCards(noteID int64) ([]anki.CardRow, error) {
	var rows []anki.CardRow
	err := r.db.Where("nid = ?", noteID).Order("ord ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	return rows, nil
}

// InsertNote inserts a new note row.
func (r *Repository) InsertNote(row *anki.NoteRow) error {
	return r.db.Create(row).Error
}

// UpdateNote rewrites every column of an existing note row.
func (r *Repository) UpdateNote(row *anki.NoteRow) error {
	return r.db.Model(&anki.NoteRow{}).Where("id = ?", row.ID).Select("*").Updates(row).Error
}

// InsertCard inserts a new card row.
func (r *Repository) InsertCard(row *anki.CardRow) error {
	return r.db.Create(row).Error
}

// UpdateCard rewrites every column of an existing card row.
func (r *Repository) UpdateCard(row *anki.CardRow) error {
	return r.db.Model(&anki.CardRow{}).Where("id = ?", row.ID).Select("*").Updates(row).Error
}
