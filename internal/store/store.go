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

	"github.com/mmcdole/readtrack/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPrefs    = []byte("prefs")
	bucketMetadata = []byte("metadata")
)

const keyLastProject = "last_project"

// metadataEntry stores a lookup result with the time it was fetched
type metadataEntry struct {
	Meta      *domain.BookMetadata `json:"meta"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// LocalStore implements domain.Store using BoltDB.
// Item lists are never stored here.
type LocalStore struct {
	db  *bolt.DB
	mu  sync.RWMutex // Protects memory cache
	ttl time.Duration

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte

	now func() time.Time
}

// NewLocalStore opens the store under baseCacheDir, one database per server.
// An empty baseCacheDir keeps everything in memory.
func NewLocalStore(baseCacheDir, serverURL string, metadataTTL time.Duration) (*LocalStore, error) {
	s := &LocalStore{cache: make(map[string][]byte), ttl: metadataTTL, now: time.Now}
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return s, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "readtrack.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPrefs, bucketMetadata} {
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

	s.db = db
	return s, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *LocalStore) get(bucket []byte, key string, dest interface{}) bool {
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

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *LocalStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *LocalStore) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// clearBucket drops every key in bucket from memory and disk
func (s *LocalStore) clearBucket(bucket []byte) {
	s.mu.Lock()
	prefix := string(bucket) + ":"
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Preferences ===

// GetLastProject returns the last picked project scope ("" means all items)
func (s *LocalStore) GetLastProject() (string, bool) {
	var scope string
	ok := s.get(bucketPrefs, keyLastProject, &scope)
	return scope, ok
}

func (s *LocalStore) SaveLastProject(scope string) error {
	return s.set(bucketPrefs, keyLastProject, scope)
}

// === Metadata cache ===

// metadataKey normalizes lookups so "Dune" and " dune " share an entry
func metadataKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// GetMetadata returns a cached lookup. Entries older than the TTL are treated
// as missing; a zero TTL never expires.
func (s *LocalStore) GetMetadata(query string) (*domain.BookMetadata, bool) {
	var entry metadataEntry
	if !s.get(bucketMetadata, metadataKey(query), &entry) || entry.Meta == nil {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(entry.FetchedAt) > s.ttl {
		return nil, false
	}
	return entry.Meta, true
}

func (s *LocalStore) SaveMetadata(query string, meta *domain.BookMetadata) error {
	if meta == nil {
		return nil
	}
	return s.set(bucketMetadata, metadataKey(query), metadataEntry{Meta: meta, FetchedAt: s.now()})
}

// InvalidateMetadata wipes every cached lookup
func (s *LocalStore) InvalidateMetadata() {
	s.clearBucket(bucketMetadata)
}

// ForgetLastProject clears the saved project preference
func (s *LocalStore) ForgetLastProject() {
	s.delete(bucketPrefs, keyLastProject)
}

var _ domain.Store = (*LocalStore)(nil)
