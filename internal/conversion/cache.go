package conversion

import (
	"sync"
	"time"
)

// recordCache keeps recently produced conversion records in memory so the
// retrieval endpoints do not hit storage for results that were just
// produced. Entries expire after the configured TTL.
type recordCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	record    *Record
	expiresAt time.Time
}

func newRecordCache(ttl time.Duration) *recordCache {
	return &recordCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// get returns the cached record for id, or nil when absent or expired
func (c *recordCache) get(id string) *Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}
	return entry.record
}

// put stores a record and prunes any expired entries while holding the lock
func (c *recordCache) put(record *Record) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, id)
		}
	}

	c.entries[record.ID] = cacheEntry{
		record:    record,
		expiresAt: now.Add(c.ttl),
	}
}
