// Package database opens and bootstraps the collection SQLite database. It
// applies the fixed Anki schema and seeds the single col row; row-level and
// col-column access lives in the colrepo and noterepo sub-packages.
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/ankipkg/internal/anki"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (creating if necessary) the collection database at
// dbPath, applies the schema and seeds the col row when absent.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.ensureSchema(); err != nil {
		return nil, err
	}
	if err := database.seedCol(); err != nil {
		return nil, fmt.Errorf("failed to seed col row: %w", err)
	}

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureSchema creates the required tables and indexes if they don't exist.
func (d *Database) ensureSchema() error {
	for _, stmt := range schemaStatements {
		if err := d.DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// seedCol inserts the single col row when the table is empty. Exactly one
// col row exists per database.
func (d *Database) seedCol() error {
	var count int64
	if err := d.DB.Model(&anki.ColRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	row := anki.ColRow{
		ID:             1,
		CreatedAt:      now.Unix(),
		LastModified:   now.Unix(),
		SchemaModified: now.UnixMilli(),
		Version:        collectionVersion,
		Config:         defaultConfJSON,
		Models:         emptyModelsJSON,
		Decks:          defaultDecksJSON,
		DeckConfigs:    defaultDeckConfigsJSON,
		Tags:           emptyTagsJSON,
	}
	return d.DB.Create(&row).Error
}
