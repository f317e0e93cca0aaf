package dynamics

import (
	"sync"
	"time"
)

// ExpiryBuffer is how long before expiry a cached token stops being served.
const ExpiryBuffer = 60 * time.Second

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// TokenCache holds access tokens keyed by tenant and client id. It is safe
// for concurrent use.
type TokenCache struct {
	mu      sync.Mutex
	entries map[string]cachedToken
	now     func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{
		entries: make(map[string]cachedToken),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (c *TokenCache) WithClock(now func() time.Time) *TokenCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

func tokenKey(tenantID, clientID string) string {
	return tenantID + ":" + clientID
}

// Get returns the token only while it is more than ExpiryBuffer away from
// expiring. Stale entries read as a miss.
func (c *TokenCache) Get(tenantID, clientID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[tokenKey(tenantID, clientID)]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.After(c.now().Add(ExpiryBuffer)) {
		return "", false
	}
	return entry.token, true
}

// Put overwrites any previous entry for the key.
func (c *TokenCache) Put(tenantID, clientID, token string, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tokenKey(tenantID, clientID)] = cachedToken{token: token, expiresAt: expiresAt}
}

func (c *TokenCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cachedToken)
}

// Len returns the number of entries, including stale ones.
func (c *TokenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
