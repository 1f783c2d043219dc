package pipeline

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

// ResultCache holds a single CombinedResult for a fixed time-to-live.
type ResultCache struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu      sync.Mutex
	created time.Time
	result  domain.CombinedResult
	filled  bool
}

// NewResultCache creates an empty cache.
func NewResultCache(ttl time.Duration, clock clockwork.Clock) *ResultCache {
	return &ResultCache{clock: clock, ttl: ttl}
}

// Get returns the cached result while its age does not exceed the TTL.
// An expired entry is dropped.
func (c *ResultCache) Get() (domain.CombinedResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.filled {
		return domain.CombinedResult{}, false
	}
	if c.clock.Since(c.created) > c.ttl {
		c.filled = false
		c.result = domain.CombinedResult{}
		return domain.CombinedResult{}, false
	}
	return c.result, true
}

// Put stores result when eligible is true and reports whether it did.
// An ineligible result leaves the current entry untouched.
func (c *ResultCache) Put(result domain.CombinedResult, eligible bool) bool {
	if !eligible {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result = result
	c.created = c.clock.Now()
	c.filled = true
	return true
}
