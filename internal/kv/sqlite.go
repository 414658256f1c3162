package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const nameQueryPattern = "name = ?"

// Entry is one row of the kv_entries table
type Entry struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName implements gorm's tabler
func (Entry) TableName() string { return "kv_entries" }

// SQL stores blobs in a relational table through gorm
type SQL struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at path and
// migrates the kv_entries table. Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQL, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, pkgerrors.Wrap(err, "create database directory")
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open sqlite %s", path)
	}
	return NewSQL(db)
}

// NewSQL wraps an existing gorm connection and migrates the schema
func NewSQL(db *gorm.DB) (*SQL, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, pkgerrors.Wrap(err, "migrate kv_entries")
	}
	return &SQL{db: db}, nil
}

// Get implements Store
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	result := s.db.WithContext(ctx).Where(nameQueryPattern, key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, pkgerrors.Wrapf(result.Error, "get %q", key)
	}
	return entry.Value, true, nil
}

// Set implements Store
func (s *SQL) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}
	entry := Entry{Name: key, Value: value}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry)
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "set %q", key)
	}
	return nil
}

// Close releases the underlying connection
func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
