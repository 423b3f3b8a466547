// Package storage persists the wallpaper collection in a BoltDB database.
// The whole collection is one JSON blob under a single key: the collection is
// small and whole-document rewrite keeps the port trivial.
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"mugen/internal/gallery"
)

const (
	dbFileName       = "mugen_gallery.db"
	collectionBucket = "Collection" // Bucket holding the serialized collection.
	collectionKey    = "wallpapers" // Single key for the whole collection blob.
)

// BoltStore implements gallery.Persistence on a BoltDB file.
type BoltStore struct {
	db     *bolt.DB
	logger gallery.LoggerFunc
}

var _ gallery.Persistence = (*BoltStore)(nil)

// Open creates or opens the gallery database file. dbDir selects the
// directory for the db file; when empty, the user config directory is used
// with the current directory as a last resort.
func Open(dbDir string, logger gallery.LoggerFunc) (*BoltStore, error) {
	if dbDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			log.Printf("Warning: Could not get user config dir: %v. Using current dir.", err)
			dbDir = "."
		} else {
			appConfigDir := filepath.Join(configDir, "mugen")
			if err := os.MkdirAll(appConfigDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create config directory %s: %w", appConfigDir, err)
			}
			dbDir = appConfigDir
		}
	}

	dbPath := filepath.Join(dbDir, dbFileName)
	if logger != nil {
		logger(fmt.Sprintf("Using gallery database at: %s", dbPath))
	}

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open gallery database %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(collectionBucket))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", collectionBucket, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (bs *BoltStore) Close() error {
	if bs.db != nil {
		return bs.db.Close()
	}
	return nil
}

// Load reads the whole collection. Returns gallery.ErrNotFound when nothing
// has been stored yet or the stored blob cannot be decoded, so the store
// falls back to its seed collection instead of failing.
func (bs *BoltStore) Load() ([]gallery.Wallpaper, error) {
	var raw []byte
	err := bs.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(collectionBucket))
		if bucket == nil {
			return nil
		}
		if data := bucket.Get([]byte(collectionKey)); data != nil {
			raw = append([]byte(nil), data...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}
	if raw == nil {
		return nil, gallery.ErrNotFound
	}

	var records []gallery.Wallpaper
	if err := json.Unmarshal(raw, &records); err != nil {
		bs.logMessage(fmt.Sprintf("Stored collection is corrupt, treating as absent: %v", err))
		return nil, fmt.Errorf("%w: %v", gallery.ErrNotFound, err)
	}
	return records, nil
}

// Save replaces the stored collection with the given one.
func (bs *BoltStore) Save(records []gallery.Wallpaper) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	return bs.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(collectionBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", collectionBucket)
		}
		if err := bucket.Put([]byte(collectionKey), data); err != nil {
			return fmt.Errorf("failed to put collection: %w", err)
		}
		return nil
	})
}

func (bs *BoltStore) logMessage(msg string) {
	if bs.logger != nil {
		bs.logger(msg)
	}
}
