package rivm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
)

// --- mock for cache tests ---

type countingDirectory struct {
	calls    int
	stations []domain.StationInfo
	err      error
}

func (m *countingDirectory) FetchStations(_ context.Context) ([]domain.StationInfo, error) {
	m.calls++
	return m.stations, m.err
}

func TestCachedDirectory_CacheHit(t *testing.T) {
	inner := &countingDirectory{stations: []domain.StationInfo{{ID: "260", Name: "De Bilt"}}}
	cached := NewCachedDirectory(inner)

	s1, err := cached.FetchStations(context.Background())
	require.NoError(t, err)
	s2, err := cached.FetchStations(context.Background())
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 1, cached.Len())
}

func TestCachedDirectory_EmptyNotCached(t *testing.T) {
	inner := &countingDirectory{}
	cached := NewCachedDirectory(inner)

	_, _ = cached.FetchStations(context.Background())
	_, _ = cached.FetchStations(context.Background())

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, cached.Len())
}

func TestCachedDirectory_ErrorNotCached(t *testing.T) {
	inner := &countingDirectory{err: errors.New("boom")}
	cached := NewCachedDirectory(inner)

	_, err := cached.FetchStations(context.Background())
	require.Error(t, err)

	inner.err = nil
	inner.stations = []domain.StationInfo{{ID: "280"}}
	stations, err := cached.FetchStations(context.Background())
	require.NoError(t, err)
	assert.Len(t, stations, 1)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedDirectory_ReturnsCopies(t *testing.T) {
	inner := &countingDirectory{stations: []domain.StationInfo{{ID: "260", Name: "De Bilt"}}}
	cached := NewCachedDirectory(inner)

	first, err := cached.FetchStations(context.Background())
	require.NoError(t, err)
	first[0].Name = "mutated"

	again, err := cached.FetchStations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "De Bilt", again[0].Name)
}
