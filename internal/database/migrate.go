package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// Entry is one persisted key, the server-side equivalent of a browser
// local storage slot. Value holds the JSON document.
type Entry struct {
	Key       string `gorm:"column:storage_key;primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name across drivers.
func (Entry) TableName() string {
	return "storage_entries"
}

// RunMigrations creates or updates the schema.
func RunMigrations(db *gorm.DB, log *slog.Logger) error {
	log.Info("running auto-migration", "driver", db.Dialector.Name())
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate storage entries: %w", err)
	}
	return nil
}
