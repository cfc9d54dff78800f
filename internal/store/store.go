// Package store provides the persistent key-value layer backing the fleet
// repository. Each collection is stored whole, as a single JSON value under a
// fixed key; there is no row-level access. A separate session key holds the
// single optional login record.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/seaward/fleetdash/internal/config"
	"github.com/seaward/fleetdash/internal/models"
)

// Collection keys. These match the original persisted layout so existing
// seeded data stays readable.
const (
	KeyUsers      = "fleet_users"
	KeyShips      = "fleet_ships"
	KeyComponents = "fleet_components"
	KeyJobs       = "fleet_jobs"
	KeySession    = "fleet_session"
)

// entry is a single key-value row.
type entry struct {
	Key   string         `gorm:"primaryKey;size:64"`
	Value datatypes.JSON `gorm:"type:json"`
}

func (entry) TableName() string { return "kv_entries" }

// StorageError wraps a failed read or write against the backing database.
// Callers keep their in-memory state unchanged when one is returned.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store owns the four record collections and the session slot.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the database at cfg.DBPath, migrates the
// key-value table and seeds any missing collections.
func Open(cfg *config.Config) (*Store, error) {
	logLevel := logger.Silent
	if cfg.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return New(db, cfg.Seed)
}

// New wraps an existing gorm connection. Used by Open and by tests running
// against an in-memory database.
func New(db *gorm.DB, seed bool) (*Store, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Store{db: db}
	if seed {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn against a store bound to a single database
// transaction, so multi-collection replaces commit or roll back together.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(txdb *gorm.DB) error {
		return fn(&Store{db: txdb})
	})
}

func (s *Store) getCollection(key string, out any) error {
	var e entry
	if err := s.db.First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return &StorageError{Op: "get", Key: key, Err: err}
	}
	if err := json.Unmarshal(e.Value, out); err != nil {
		return &StorageError{Op: "decode", Key: key, Err: err}
	}
	return nil
}

func (s *Store) setCollection(key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry{Key: key, Value: datatypes.JSON(value)}).Error
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Users returns the seeded user list. There is no SaveUsers; users are
// read-only after seeding.
func (s *Store) Users() ([]models.User, error) {
	var users []models.User
	if err := s.getCollection(KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) Ships() ([]models.Ship, error) {
	var ships []models.Ship
	if err := s.getCollection(KeyShips, &ships); err != nil {
		return nil, err
	}
	return ships, nil
}

func (s *Store) SaveShips(ships []models.Ship) error {
	return s.setCollection(KeyShips, ships)
}

func (s *Store) Components() ([]models.Component, error) {
	var components []models.Component
	if err := s.getCollection(KeyComponents, &components); err != nil {
		return nil, err
	}
	return components, nil
}

func (s *Store) SaveComponents(components []models.Component) error {
	return s.setCollection(KeyComponents, components)
}

func (s *Store) Jobs() ([]models.Job, error) {
	var jobs []models.Job
	if err := s.getCollection(KeyJobs, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Store) SaveJobs(jobs []models.Job) error {
	return s.setCollection(KeyJobs, jobs)
}

// Session returns the persisted login record, or nil when nobody is logged
// in.
func (s *Store) Session() (*models.Session, error) {
	var e entry
	if err := s.db.First(&e, "key = ?", KeySession).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &StorageError{Op: "get", Key: KeySession, Err: err}
	}
	var session models.Session
	if err := json.Unmarshal(e.Value, &session); err != nil {
		return nil, &StorageError{Op: "decode", Key: KeySession, Err: err}
	}
	return &session, nil
}

func (s *Store) SaveSession(session models.Session) error {
	return s.setCollection(KeySession, session)
}

func (s *Store) ClearSession() error {
	if err := s.db.Delete(&entry{}, "key = ?", KeySession).Error; err != nil {
		return &StorageError{Op: "clear", Key: KeySession, Err: err}
	}
	return nil
}
