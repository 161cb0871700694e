package assets

import (
	"sync"
)

// Manager loads datasets from disk and keeps them cached by path.
type Manager struct {
	cache *Cache
	load  func(path string) (*Dataset, error)
	mu    sync.Mutex
}

// NewManager creates a new dataset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
		load:  Load,
	}
}

// Load returns the dataset at path, reading it on first use.
// Failed loads are not cached.
func (m *Manager) Load(path string) (*Dataset, error) {
	// Check cache first
	if d, ok := m.cache.Get(path); ok {
		return d, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, err := m.load(path)
	if err != nil {
		return nil, err
	}
	m.cache.Set(path, d)
	return d, nil
}

// Reload drops any cached copy of path and reads it again.
func (m *Manager) Reload(path string) (*Dataset, error) {
	m.cache.Delete(path)
	return m.Load(path)
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close releases all cached datasets.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded datasets.
type Cache struct {
	data map[string]*Dataset
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*Dataset),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*Dataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return d, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, d *Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = d
}

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*Dataset)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
