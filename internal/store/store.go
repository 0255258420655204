package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/mmcdole/retrofolio/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPrefs  = []byte("prefs")
	bucketVisits = []byte("visits")
)

const dbName = "retrofolio.db"

// PrefStore implements domain.PreferenceStore using BoltDB.
type PrefStore struct {
	db     *bolt.DB
	mu     sync.RWMutex // Protects memory cache
	logger *slog.Logger

	visitMu sync.Mutex // Serializes counter increments

	// Reads are served from memory; bolt is write-through
	cache map[string][]byte
}

var _ domain.PreferenceStore = (*PrefStore)(nil)

// Open opens the store under dir. An empty dir gives a memory-only store.
func Open(dir string) (*PrefStore, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &PrefStore{cache: make(map[string][]byte), logger: slog.Default()}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, dbName), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPrefs, bucketVisits} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PrefStore{db: db, cache: make(map[string][]byte), logger: slog.Default()}, nil
}

func (s *PrefStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Persistent reports whether values survive Close
func (s *PrefStore) Persistent() bool { return s.db != nil }

// === Generic helpers ===

func (s *PrefStore) get(bucket []byte, key string) ([]byte, bool) {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("store read failed", "bucket", string(bucket), "key", key, "error", err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()
	return data, true
}

// set commits to bolt first; the cache only ever holds committed values
func (s *PrefStore) set(bucket []byte, key string, data []byte) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()
	return nil
}

// === Preferences ===

func (s *PrefStore) GetBool(key string) (bool, bool) {
	data, ok := s.get(bucketPrefs, key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(string(data))
	if err != nil {
		return false, false
	}
	return v, true
}

func (s *PrefStore) SetBool(key string, value bool) error {
	if err := s.set(bucketPrefs, key, []byte(strconv.FormatBool(value))); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// === Visits ===

// RecordVisit increments the reveal counter for a section
func (s *PrefStore) RecordVisit(id string) error {
	s.visitMu.Lock()
	defer s.visitMu.Unlock()

	n := s.Visits(id) + 1
	if err := s.set(bucketVisits, id, []byte(strconv.Itoa(n))); err != nil {
		return fmt.Errorf("failed to record visit %s: %w", id, err)
	}
	return nil
}

// Visits returns how many times a section was revealed across runs
func (s *PrefStore) Visits(id string) int {
	data, ok := s.get(bucketVisits, id)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return 0
	}
	return n
}
