package client

import "sync"

// SessionCache is the keyed response cache an API client session carries.
// Entries live for the lifetime of the cache instance; there is no TTL and
// no cross-session sharing, so two clients never observe each other's data.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewSessionCache() *SessionCache {
	return &SessionCache{entries: make(map[string][]byte)}
}

func (c *SessionCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.entries[key]
	return raw, ok
}

func (c *SessionCache) Set(key string, raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
}

// Invalidate drops one entry. Used when a stored payload fails to decode,
// which is treated as a miss rather than an error.
func (c *SessionCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Reset drops every entry, e.g. on logout.
func (c *SessionCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
}

func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
