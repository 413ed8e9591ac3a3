// Package hashcache persists archive content hashes across runs so that
// unchanged assets are never downloaded and hashed twice. The key space
// is the archive download URL; entries grow monotonically and are never
// evicted.
package hashcache

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Cache maps asset download URLs to hex SHA-256 digests. Safe for
// concurrent use by the pipeline's fetch tasks.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New creates an empty cache
func New() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Load parses a previously serialized cache. The cache is advisory: a
// corrupt payload degrades to an empty cache instead of failing the run.
func Load(data []byte) *Cache {
	entries := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			logrus.Warnf("Hash cache is corrupt, starting empty: %v", err)
			entries = make(map[string]string)
		}
	}
	return &Cache{entries: entries}
}

// LoadFile reads the cache file at path. A missing file yields an empty
// cache; this is not an error condition.
func LoadFile(path string) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("Failed to read hash cache %s, starting empty: %v", path, err)
		}
		return New()
	}
	return Load(data)
}

// Get returns the cached digest for an asset URL
func (c *Cache) Get(url string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	digest, ok := c.entries[url]
	return digest, ok
}

// Put records the digest for an asset URL
func (c *Cache) Put(url, digest string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = digest
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Serialize renders the cache as a flat JSON object with keys in
// ascending order, so successive runs produce diff-friendly output.
func (c *Cache) Serialize() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	// encoding/json emits map keys in sorted order.
	return json.Marshal(c.entries)
}
