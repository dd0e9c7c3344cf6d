// Package prefs persists the shell's boolean UI preferences.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Preference keys.
const (
	NoPopup  = "noPopup"
	DarkMode = "darkMode"
)

const bucketPrefs = "prefs"

// ErrClosed is returned by a store that has been closed.
var ErrClosed = errors.New("prefs: store closed")

// Store is a key-value store of boolean flags.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (value bool, ok bool, err error)
	Set(key string, value bool) error
	Close() error
}

// Toggle flips key, treating a missing key as def, and returns the new value.
func Toggle(s Store, key string, def bool) (bool, error) {
	v, ok, err := s.Get(key)
	if err != nil {
		return def, err
	}
	if !ok {
		v = def
	}
	v = !v
	return v, s.Set(key, v)
}

// GetOr returns the value of key, or def when it is missing or unreadable.
func GetOr(s Store, key string, def bool) bool {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return def
	}
	return v
}

type boltStore struct {
	db *bolt.DB
}

// Open opens or creates a bolt-backed store at path.
func Open(path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("prefs: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPrefs))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prefs: %w", err)
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Get(key string) (bool, bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketPrefs)).Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return false, false, err
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		return false, false, fmt.Errorf("prefs: %s: %w", key, err)
	}
	return v, true, nil
}

func (s *boltStore) Set(key string, value bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPrefs)).Put([]byte(key), []byte(strconv.FormatBool(value)))
	})
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

// NewMemStore returns a Store that keeps values in memory.
func NewMemStore() Store {
	return &memStore{values: map[string]bool{}}
}

type memStore struct {
	mu     sync.Mutex
	values map[string]bool
	closed bool
}

func (s *memStore) Get(key string) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, false, ErrClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Set(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.values[key] = value
	return nil
}

func (s *memStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
