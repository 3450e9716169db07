package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Codes is an in-process store for short-lived email verification codes.
// It is never authoritative for any domain state; everything else lives in
// the database.
type Codes struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewCodes() *Codes {
	return &Codes{entries: make(map[string]entry)}
}

// Set stores value under key for ttl, replacing any previous value.
func (c *Codes) Set(key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Get returns the value for key if it exists and has not expired.
func (c *Codes) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

// Delete removes key, used once a code has been consumed.
func (c *Codes) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Sweep drops expired entries. Run periodically from the cron scheduler.
func (c *Codes) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Len reports how many entries are currently held, expired or not.
func (c *Codes) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
