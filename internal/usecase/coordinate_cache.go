package usecase

import (
	"strings"
	"sync"
	"time"

	"github.com/partner-crm/internal/domain"
)

// cachedCoordinate is one resolved city/state entry.
type cachedCoordinate struct {
	coordinate  domain.Coordinate
	displayName string
	fetchedAt   time.Time
}

// coordinateCache is the in-memory cache in front of the geocoding provider.
// The TTL and clock are injected so expiry is deterministic in tests, and
// the cache is an explicit object constructed once per process rather than
// package-level state.
type coordinateCache struct {
	mu      sync.RWMutex
	entries map[string]cachedCoordinate
	ttl     time.Duration
	now     func() time.Time
}

func newCoordinateCache(ttl time.Duration, now func() time.Time) *coordinateCache {
	if now == nil {
		now = time.Now
	}
	return &coordinateCache{
		entries: make(map[string]cachedCoordinate),
		ttl:     ttl,
		now:     now,
	}
}

// cacheKey normalizes a city/state pair into the cache key.
func cacheKey(city, state string) string {
	return strings.ToLower(strings.TrimSpace(city)) + "," + strings.ToLower(strings.TrimSpace(state))
}

// get returns a fresh entry, or false when missing or expired.
func (c *coordinateCache) get(key string) (cachedCoordinate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return cachedCoordinate{}, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return cachedCoordinate{}, false
	}
	return entry, true
}

// put stores or replaces an entry stamped with the current time.
func (c *coordinateCache) put(key string, coord domain.Coordinate, displayName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cachedCoordinate{
		coordinate:  coord,
		displayName: displayName,
		fetchedAt:   c.now(),
	}
}
