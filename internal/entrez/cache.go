package entrez

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// cachedEntry is one stored efetch response.
type cachedEntry struct {
	Body        string `json:"body"`
	RetrievedAt int64  `json:"retrieved_at"`
}

// Cache is a JSON-file backed response cache with a TTL. It keeps fetched
// records across runs so repeated lessons do not hammer NCBI.
type Cache struct {
	mu      sync.RWMutex
	path    string
	ttl     int64 // seconds; 0 disables expiry
	entries map[string]cachedEntry
	loaded  bool
}

// DefaultCachePath places the cache under the user cache dir, falling back
// to the temp dir.
func DefaultCachePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		p := filepath.Join(dir, "bioworkshop")
		_ = os.MkdirAll(p, 0o755)
		return filepath.Join(p, "entrez_cache.json")
	}
	return filepath.Join(os.TempDir(), "bioworkshop_entrez_cache.json")
}

// NewCache opens (or lazily creates) a cache at path. ttlSeconds <= 0
// keeps entries forever.
func NewCache(path string, ttlSeconds int64) *Cache {
	if path == "" {
		path = DefaultCachePath()
	}
	return &Cache{path: path, ttl: ttlSeconds}
}

func (c *Cache) load() {
	if c.loaded {
		return
	}
	c.entries = make(map[string]cachedEntry)
	c.loaded = true
	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, &c.entries)
}

// Get returns the cached body for key if present and fresh.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	c.load()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return "", false
	}
	if c.ttl > 0 && time.Now().Unix()-e.RetrievedAt > c.ttl {
		return "", false
	}
	return e.Body, true
}

// Put stores body under key and flushes the cache file.
func (c *Cache) Put(key, body string) {
	if key == "" || body == "" {
		return
	}
	c.mu.Lock()
	c.load()
	c.entries[key] = cachedEntry{Body: body, RetrievedAt: time.Now().Unix()}
	c.mu.Unlock()
	c.Flush()
}

// Flush writes the cache file. Failures are ignored; the cache is an
// optimization, not a durability guarantee.
func (c *Cache) Flush() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return
	}
	b, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(c.path, b, 0o644)
}
