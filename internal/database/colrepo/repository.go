// Package colrepo provides access to the single col row and its JSON
// columns.
//
// This package implements the ColumnStore interface defined in
// internal/anki/interfaces.go:
//
//	var _ anki.ColumnStore = (*Repository)(nil)
package colrepo

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/ankipkg/internal/anki"
)

// Repository handles col row reads and JSON-column writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new col repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ anki.ColumnStore = (*Repository)(nil)

// jsonColumns are the col columns WriteColumn/ReadColumn may touch. Column
// names are interpolated into SQL, so anything else is rejected.
var jsonColumns = map[string]bool{
	"conf":   true,
	"models": true,
	"decks":  true,
	"dconf":  true,
	"tags":   true,
}

// ReadCol returns the single col row.
func (r *Repository) ReadCol() (*anki.ColRow, error) {
	var row anki.ColRow
	if err := r.db.First(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to read col row: %w", err)
	}
	return &row, nil
}

// ReadColumn returns the current persisted value of one JSON column,
// straight from storage.
func (r *Repository) ReadColumn(name string) (string, error) {
	if !jsonColumns[name] {
		return "", fmt.Errorf("not a col JSON column: %q", name)
	}
	var value string
	err := r.db.Raw("SELECT " + name + " FROM col WHERE id = 1").Scan(&value).Error
	if err != nil {
		return "", fmt.Errorf("failed to read col %s: %w", name, err)
	}
	return value, nil
}

// WriteColumn overwrites one JSON column together with the col mod stamp in
// a single UPDATE.
func (r *Repository) WriteColumn(name, value string, mod int64) error {
	if !jsonColumns[name] {
		return fmt.Errorf("not a col JSON column: %q", name)
	}
	result := r.db.Exec("UPDATE col SET "+name+" = ?, mod = ? WHERE id = 1", value, mod)
	if result.Error != nil {
		return fmt.Errorf("failed to update col %s: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("col row missing while updating %s", name)
	}
	return nil
}
