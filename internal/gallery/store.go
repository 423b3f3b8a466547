package gallery

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// initialViewsCeiling bounds the random view counter seeded onto uploads.
const initialViewsCeiling = 100

// ErrNotFound is reported by a Persistence implementation when nothing has
// been stored yet. The store treats it (and any decode failure) as a cue to
// fall back to the seed collection; it is never surfaced further.
var ErrNotFound = errors.New("gallery: no persisted collection")

// Persistence is the port the store writes the whole collection through.
// Load returns ErrNotFound (possibly wrapped) when the backing key is absent.
type Persistence interface {
	Load() ([]Wallpaper, error)
	Save([]Wallpaper) error
}

// LoggerFunc receives store log messages. It follows the signature the rest
// of the application uses so the GUI can route messages to its status area.
type LoggerFunc func(message string)

// Store owns the wallpaper collection. All mutations re-save the entire
// collection through the persistence port; save failures are logged and the
// in-memory state stays authoritative. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records []Wallpaper // newest first
	port    Persistence
	logger  LoggerFunc
}

// NewStore builds a store over the given persistence port. The persisted
// collection is loaded eagerly; if it is absent or unreadable the built-in
// seed collection is used (and written back on the first mutation).
func NewStore(port Persistence, logger LoggerFunc) *Store {
	s := &Store{port: port, logger: logger}
	records, err := port.Load()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logMessage(fmt.Sprintf("Persisted collection unreadable, using seed data: %v", err))
		}
		records = SeedCollection()
	}
	s.records = records
	return s
}

func (s *Store) logMessage(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// persist writes the whole collection through the port. Called with s.mu held.
func (s *Store) persist() {
	if err := s.port.Save(s.records); err != nil {
		s.logMessage(fmt.Sprintf("Failed to persist collection: %v", err))
	}
}

// Len returns the number of records in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (Wallpaper, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].ID == id {
			return s.records[i], true
		}
	}
	return Wallpaper{}, false
}

// All returns a copy of the full collection, newest first.
func (s *Store) All() []Wallpaper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Wallpaper, len(s.records))
	copy(out, s.records)
	return out
}

// UpsertBatch creates one record per upload item and prepends them to the
// collection, newest first. Each record gets a fresh unique id, starts as a
// favorite with no rotation and a centered focal point, and is seeded with a
// small random view count. Items without tags get the DefaultTag sentinel.
// Returns the created records in collection order.
func (s *Store) UpsertBatch(items []UploadItem) []Wallpaper {
	if len(items) == 0 {
		return nil
	}
	created := make([]Wallpaper, 0, len(items))
	for _, item := range items {
		tags := item.Tags
		if len(tags) == 0 {
			tags = []string{DefaultTag}
		}
		created = append(created, Wallpaper{
			ID:         uuid.NewString(),
			URL:        item.URL,
			Title:      item.Title,
			Author:     item.Author,
			Tags:       tags,
			IsFavorite: true,
			Rotation:   0,
			FocalPoint: DefaultFocalPoint(),
			Views:      rand.Intn(initialViewsCeiling),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(created, s.records...)
	s.persist()
	s.logMessage(fmt.Sprintf("Added %d wallpaper(s), collection now holds %d", len(created), len(s.records)))

	out := make([]Wallpaper, len(created))
	copy(out, created)
	return out
}

// ToggleFavorite flips the favorite flag on the matching record. A missing
// id is a silent no-op, tolerating races with a concurrent delete.
func (s *Store) ToggleFavorite(id string) {
	s.mutate(id, func(w *Wallpaper) {
		w.IsFavorite = !w.IsFavorite
	})
}

// SetRotation stores the given rotation. The +90 stepping policy belongs to
// the caller (see Wallpaper.NextRotation); degrees outside {0,90,180,270}
// violate the record invariant and are rejected here as a no-op.
func (s *Store) SetRotation(id string, degrees int) {
	if !ValidRotation(degrees) {
		s.logMessage(fmt.Sprintf("Ignoring invalid rotation %d for %s", degrees, id))
		return
	}
	s.mutate(id, func(w *Wallpaper) {
		w.Rotation = degrees
	})
}

// SetFocalPoint stores the crop anchor, clamped into [0,100] on both axes.
func (s *Store) SetFocalPoint(id string, fp FocalPoint) {
	s.mutate(id, func(w *Wallpaper) {
		w.FocalPoint = fp.Clamp()
	})
}

// RecordView increments the view counter by one. Callers invoke it once per
// detail-open action, not once per render.
func (s *Store) RecordView(id string) {
	s.mutate(id, func(w *Wallpaper) {
		w.Views++
	})
}

// DeleteRecord removes the record with the given id. Missing ids are silent
// no-ops. Reactive consumers (detail view, history) observe the removal
// through their own links to the store.
func (s *Store) DeleteRecord(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persist()
			return
		}
	}
}

// mutate applies fn to the matching record and persists. Missing ids no-op.
func (s *Store) mutate(id string, fn func(*Wallpaper)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			fn(&s.records[i])
			s.persist()
			return
		}
	}
}
