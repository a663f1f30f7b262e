package authcache

import (
	"sync"
	"time"

	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/jwt"
)

// Cache is a short-TTL, process-local cache of verified token claims,
// keyed by the raw bearer token. Best effort only: entries are never
// shared across instances and revocation still goes through the
// blacklist check on every request.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

type entry struct {
	claims    *jwt.Claims
	expiresAt time.Time
}

// New creates a cache with the given TTL. A nil clock uses time.Now.
func New(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

// Get returns the cached claims for a token, if still fresh.
func (c *Cache) Get(token string) (*jwt.Claims, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[token]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, token)
		return nil, false
	}
	return e.claims, true
}

// Put stores claims for a token. Expired entries are swept lazily so the
// map stays bounded by recent traffic.
func (c *Cache) Put(token string, claims *jwt.Claims) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.entries) > 0 && len(c.entries)%512 == 0 {
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
	}
	c.entries[token] = entry{claims: claims, expiresAt: now.Add(c.ttl)}
}

// Invalidate drops a token's entry, used on logout.
func (c *Cache) Invalidate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
}

// Len reports the number of live entries (expired ones included until swept).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
