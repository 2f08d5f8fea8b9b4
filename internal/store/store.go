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
	bucketDatasets = []byte("datasets")
	bucketDetails  = []byte("details")
)

var allBuckets = [][]byte{bucketDatasets, bucketDetails}

// CatalogStore implements domain.Store using BoltDB.
type CatalogStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewCatalogStore opens the cache database under baseCacheDir. scope
// separates caches for different API roots or languages. An empty
// baseCacheDir keeps everything in memory.
func NewCatalogStore(baseCacheDir, scope string) (*CatalogStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &CatalogStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if scope != "" {
		dir = filepath.Join(baseCacheDir, hashScope(scope))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
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

	return &CatalogStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashScope(scope string) string {
	normalized := strings.TrimRight(strings.ToLower(scope), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Clear removes every cache database below baseCacheDir
func Clear(baseCacheDir string) error {
	if baseCacheDir == "" {
		return nil
	}
	return os.RemoveAll(baseCacheDir)
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

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

func (s *CatalogStore) set(bucket []byte, key string, value any) error {
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

func (s *CatalogStore) delete(bucket []byte, key string) {
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

// clearBucket deletes every key in bucket
func clearBucket(tx *bolt.Tx, bucket []byte) error {
	b := tx.Bucket(bucket)
	if b == nil {
		return nil
	}
	// Collect first: deleting while iterating a cursor skips keys
	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func datasetKey(cat domain.Category) string {
	return "cat:" + string(cat)
}

func detailKey(kind domain.MediaKind, id int) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// === Datasets ===

func (s *CatalogStore) GetDataset(cat domain.Category) (*domain.Dataset, bool) {
	var ds domain.Dataset
	if !s.get(bucketDatasets, datasetKey(cat), &ds) {
		return nil, false
	}
	return &ds, true
}

func (s *CatalogStore) SaveDataset(ds *domain.Dataset) error {
	if ds == nil {
		return nil
	}
	return s.set(bucketDatasets, datasetKey(ds.Category), ds)
}

// === Details ===

func (s *CatalogStore) GetDetail(kind domain.MediaKind, id int) (*domain.Detail, bool) {
	var d domain.Detail
	if !s.get(bucketDetails, detailKey(kind, id), &d) {
		return nil, false
	}
	return &d, true
}

func (s *CatalogStore) SaveDetail(d *domain.Detail) error {
	if d == nil {
		return nil
	}
	return s.set(bucketDetails, detailKey(d.Kind, d.ID), d)
}

// === Freshness ===

// IsFresh reports whether the cached dataset for cat was fetched less than
// ttl before now. A non-positive ttl means cached data never expires.
func (s *CatalogStore) IsFresh(cat domain.Category, ttl time.Duration, now time.Time) bool {
	ds, ok := s.GetDataset(cat)
	if !ok {
		return false
	}
	if ttl <= 0 {
		return true
	}
	return now.Sub(ds.FetchedAt) < ttl
}

// === Invalidation ===

func (s *CatalogStore) InvalidateCategory(cat domain.Category) {
	s.delete(bucketDatasets, datasetKey(cat))
}

func (s *CatalogStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if err := clearBucket(tx, bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

var _ domain.Store = (*CatalogStore)(nil)
