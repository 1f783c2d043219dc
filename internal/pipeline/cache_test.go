package pipeline_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/uv-index-etl/internal/domain"
	"github.com/couchcryptid/uv-index-etl/internal/pipeline"
)

func TestResultCache_TTL(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	cache := pipeline.NewResultCache(15*time.Minute, clock)

	_, ok := cache.Get()
	assert.False(t, ok, "empty cache")

	res := domain.NewCombinedResult(nil, nil, "cached")
	require.True(t, cache.Put(res, true))

	clock.Advance(14 * time.Minute)
	got, ok := cache.Get()
	require.True(t, ok, "hit at T+14m")
	assert.Equal(t, "cached", got.Message)

	clock.Advance(time.Minute)
	_, ok = cache.Get()
	assert.True(t, ok, "hit at exactly the TTL")

	clock.Advance(time.Minute)
	_, ok = cache.Get()
	assert.False(t, ok, "miss at T+16m")
}

func TestResultCache_IneligibleNotStored(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := pipeline.NewResultCache(15*time.Minute, clock)

	bad := domain.GenerateMock(clock.Now(), "parse failure", assert.AnError)
	assert.False(t, cache.Put(bad, bad.Cacheable()))
	_, ok := cache.Get()
	assert.False(t, ok)

	good := domain.NewCombinedResult(nil, nil, "good")
	require.True(t, cache.Put(good, true))
	assert.False(t, cache.Put(bad, false))

	got, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, "good", got.Message, "ineligible put keeps the existing entry")
}

func TestResultCache_PutRestartsAge(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := pipeline.NewResultCache(time.Minute, clock)

	cache.Put(domain.NewCombinedResult(nil, nil, "first"), true)
	clock.Advance(50 * time.Second)
	cache.Put(domain.NewCombinedResult(nil, nil, "second"), true)
	clock.Advance(50 * time.Second)

	got, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, "second", got.Message)
}
