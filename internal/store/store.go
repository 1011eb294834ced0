package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/marquee/internal/domain"
)

// Bucket names
var (
	bucketPages   = []byte("pages")
	bucketDetails = []byte("details")
	bucketHistory = []byte("history")

	allBuckets = [][]byte{bucketPages, bucketDetails, bucketHistory}
)

const (
	historyKey   = "queries"
	historyLimit = 50
)

// listItemWrapper wraps ListItem for JSON serialization
type listItemWrapper struct {
	Type   string         `json:"type"`
	Title  *domain.Title  `json:"title,omitempty"`
	Person *domain.Person `json:"person,omitempty"`
}

// storedPage is the serialized form of a domain.Page[domain.ListItem]
type storedPage struct {
	Items        []listItemWrapper `json:"items"`
	Page         int               `json:"page"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
}

// entry wraps every cached value with the time it was written
type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Value     json.RawMessage `json:"value"`
}

// CacheStore implements domain.Store using BoltDB.
type CacheStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte

	now func() time.Time
}

// NewCacheStore opens (or creates) marquee.db in dir. An empty dir keeps
// everything in memory.
func NewCacheStore(dir string) (*CacheStore, error) {
	s := &CacheStore{cache: make(map[string][]byte), now: time.Now}
	if dir == "" {
		// Memory-only mode (no persistence)
		return s, nil
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

	s.db = db
	return s, nil
}

func (s *CacheStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

// get loads key into dest. A maxAge of zero disables the age check.
func (s *CacheStore) get(bucket []byte, key string, maxAge time.Duration, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	data, ok := s.cache[cacheKey]
	s.mu.RUnlock()

	if !ok {
		if s.db == nil {
			return false
		}

		// Read from BoltDB
		s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(key)); v != nil {
				data = slices.Clone(v)
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
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return false
	}
	if maxAge > 0 && s.now().Sub(e.FetchedAt) > maxAge {
		return false
	}
	return json.Unmarshal(e.Value, dest) == nil
}

func (s *CacheStore) set(bucket []byte, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	data, err := json.Marshal(entry{FetchedAt: s.now(), Value: raw})
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

func (s *CacheStore) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	// Clear from memory cache
	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete from BoltDB
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

func (s *CacheStore) deletePrefix(bucket []byte, prefix string) {
	// Clear from memory cache
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete from BoltDB using prefix scan
	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Pages ===

func (s *CacheStore) GetPage(key string, maxAge time.Duration) (domain.Page[domain.ListItem], bool) {
	var sp storedPage
	if !s.get(bucketPages, key, maxAge, &sp) {
		return domain.Page[domain.ListItem]{}, false
	}
	return domain.Page[domain.ListItem]{
		Items:        unwrapListItems(sp.Items),
		Page:         sp.Page,
		TotalPages:   sp.TotalPages,
		TotalResults: sp.TotalResults,
	}, true
}

func (s *CacheStore) SavePage(key string, page domain.Page[domain.ListItem]) error {
	return s.set(bucketPages, key, storedPage{
		Items:        wrapListItems(page.Items),
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
	})
}

// === Details ===

func (s *CacheStore) GetDetails(key string, maxAge time.Duration) (*domain.DetailBundle, bool) {
	var bundle domain.DetailBundle
	if !s.get(bucketDetails, key, maxAge, &bundle) {
		return nil, false
	}
	return &bundle, true
}

func (s *CacheStore) SaveDetails(key string, bundle *domain.DetailBundle) error {
	return s.set(bucketDetails, key, bundle)
}

// === Search history ===

// History returns past queries, most recent first.
func (s *CacheStore) History() []string {
	var queries []string
	s.get(bucketHistory, historyKey, 0, &queries)
	return queries
}

// AddHistory moves query to the front of the history, dropping duplicates
// (case-insensitive) and the oldest entries past the limit.
func (s *CacheStore) AddHistory(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	queries := slices.DeleteFunc(s.History(), func(q string) bool {
		return strings.EqualFold(q, query)
	})
	queries = append([]string{query}, queries...)
	if len(queries) > historyLimit {
		queries = queries[:historyLimit]
	}
	return s.set(bucketHistory, historyKey, queries)
}

func (s *CacheStore) ClearHistory() error {
	s.delete(bucketHistory, historyKey)
	return nil
}

// === Invalidation ===

// InvalidatePrefix drops cached pages and details whose keys start with prefix.
func (s *CacheStore) InvalidatePrefix(prefix string) {
	s.deletePrefix(bucketPages, prefix)
	s.deletePrefix(bucketDetails, prefix)
}

// InvalidateAll drops every cached page and detail. Search history is kept.
func (s *CacheStore) InvalidateAll() {
	s.mu.Lock()
	for k := range s.cache {
		if !strings.HasPrefix(k, string(bucketHistory)+":") {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete all data from the cache buckets
	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPages, bucketDetails} {
			if err := tx.DeleteBucket(bucket); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

// wrapListItems converts domain.ListItem slice to serializable wrappers
func wrapListItems(items []domain.ListItem) []listItemWrapper {
	wrappers := make([]listItemWrapper, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case *domain.Title:
			wrappers = append(wrappers, listItemWrapper{Type: "title", Title: v})
		case *domain.Person:
			wrappers = append(wrappers, listItemWrapper{Type: "person", Person: v})
		}
	}
	return wrappers
}

// unwrapListItems converts wrappers back to domain.ListItem slice
func unwrapListItems(wrappers []listItemWrapper) []domain.ListItem {
	items := make([]domain.ListItem, 0, len(wrappers))
	for _, w := range wrappers {
		switch w.Type {
		case "title":
			if w.Title != nil {
				items = append(items, w.Title)
			}
		case "person":
			if w.Person != nil {
				items = append(items, w.Person)
			}
		}
	}
	return items
}
