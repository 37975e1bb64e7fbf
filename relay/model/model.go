package model

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PinRecord is the audit row written for every successful pin.
type PinRecord struct {
	ID          uint   `gorm:"primarykey"`
	RequestID   string `gorm:"size:64;index"`
	FileName    string `gorm:"size:256"`
	FileSize    int64
	FileCID     string `gorm:"size:128"`
	MetadataCID string `gorm:"size:128"`
	CreatedAt   time.Time
}

// NewDB opens the embedded audit database and migrates the schema.
// An empty path keeps the database in memory, which the tests rely on.
func NewDB(path string) (*gorm.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed on open audit db")
	}
	if err := db.AutoMigrate(&PinRecord{}); err != nil {
		return nil, errors.Wrap(err, "failed on migrate audit db")
	}
	return db, nil
}
