package rivm

import (
	"context"
	"slices"
	"sync"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

// CachedDirectory wraps a StationDirectory and keeps the first non-empty
// answer for the life of the process. Station metadata does not change
// while the service runs.
type CachedDirectory struct {
	inner domain.StationDirectory

	mu       sync.Mutex
	stations []domain.StationInfo
}

// NewCachedDirectory creates a cache decorator around a station directory.
func NewCachedDirectory(inner domain.StationDirectory) *CachedDirectory {
	return &CachedDirectory{inner: inner}
}

func (c *CachedDirectory) FetchStations(ctx context.Context) ([]domain.StationInfo, error) {
	c.mu.Lock()
	cached := c.stations
	c.mu.Unlock()
	if cached != nil {
		return slices.Clone(cached), nil
	}

	stations, err := c.inner.FetchStations(ctx)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty results so a transient empty answer can be retried.
	if len(stations) > 0 {
		c.mu.Lock()
		if c.stations == nil {
			c.stations = slices.Clone(stations)
		}
		c.mu.Unlock()
	}
	return stations, nil
}

// Len returns the number of cached stations.
func (c *CachedDirectory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stations)
}
