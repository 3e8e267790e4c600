package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSelection = []byte("selection")
	bucketSnapshot  = []byte("snapshot")
	bucketGenres    = []byte("genres")
)

// Keys
const (
	keySelection = "favMovies"
	keySnapshot  = "popular"
	keyGenres    = "list"
)

// Store implements domain.Store using BoltDB.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// New opens the store under baseDir, namespaced by the cache service URL so
// two services never share favorites or snapshots. An empty baseDir gives a
// memory-only store.
func New(baseDir, serviceURL string) (*Store, error) {
	if baseDir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if serviceURL != "" {
		dir = filepath.Join(baseDir, hashServiceURL(serviceURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSelection, bucketSnapshot, bucketGenres} {
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

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func hashServiceURL(serviceURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serviceURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Undecodable values are never promoted
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return true
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Selection ===

func (s *Store) GetSelection() ([]domain.ID, bool) {
	var ids []domain.ID
	ok := s.get(bucketSelection, keySelection, &ids)
	return ids, ok
}

func (s *Store) SaveSelection(ids []domain.ID) error {
	if ids == nil {
		ids = []domain.ID{}
	}
	return s.set(bucketSelection, keySelection, ids)
}

// === Collection snapshot ===

func (s *Store) GetSnapshot() (domain.Snapshot, bool) {
	var snap domain.Snapshot
	ok := s.get(bucketSnapshot, keySnapshot, &snap)
	return snap, ok
}

func (s *Store) SaveSnapshot(snap domain.Snapshot) error {
	return s.set(bucketSnapshot, keySnapshot, snap)
}

// === Genres ===

func (s *Store) GetGenres() ([]domain.Genre, bool) {
	var genres []domain.Genre
	ok := s.get(bucketGenres, keyGenres, &genres)
	return genres, ok
}

func (s *Store) SaveGenres(genres []domain.Genre) error {
	return s.set(bucketGenres, keyGenres, genres)
}
