package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func newTestMemory(t *testing.T, maxSize int) (*MemoryCache, *time.Time) {
	t.Helper()
	mc := NewMemoryCache(maxSize, time.Hour)
	t.Cleanup(func() { _ = mc.Close() })
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }
	return mc, &now
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestMemory(t, 0)

	in := []point{{"2024-01-01", 1.5}, {"2024-02-01", 2}}
	require.NoError(t, mc.Set(ctx, "series:SOFR", in, time.Hour))

	var out []point
	require.NoError(t, mc.Get(ctx, "series:SOFR", &out))
	assert.Equal(t, in, out)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	mc, now := newTestMemory(t, 0)

	require.NoError(t, mc.Set(ctx, "k", 1, time.Minute))
	*now = now.Add(2 * time.Minute)

	var v int
	assert.ErrorIs(t, mc.Get(ctx, "k", &v), ErrCacheMiss)
	assert.Zero(t, mc.Len())
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc, now := newTestMemory(t, 2)

	require.NoError(t, mc.Set(ctx, "a", 1, time.Hour))
	*now = now.Add(time.Second)
	require.NoError(t, mc.Set(ctx, "b", 2, time.Hour))
	*now = now.Add(time.Second)

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v))
	*now = now.Add(time.Second)
	require.NoError(t, mc.Set(ctx, "c", 3, time.Hour))

	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "a", &v))
	assert.NoError(t, mc.Get(ctx, "c", &v))
}

func TestMemoryTryLock(t *testing.T) {
	ctx := context.Background()
	mc, now := newTestMemory(t, 0)

	ok, err := mc.TryLock(ctx, "briefing", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = mc.TryLock(ctx, "briefing", time.Minute)
	assert.False(t, ok)

	*now = now.Add(2 * time.Minute)
	ok, _ = mc.TryLock(ctx, "briefing", time.Minute)
	assert.True(t, ok)

	require.NoError(t, mc.Unlock(ctx, "briefing"))
	ok, _ = mc.TryLock(ctx, "briefing", time.Minute)
	assert.True(t, ok)
}

func TestLayeredReadsThroughToL2(t *testing.T) {
	ctx := context.Background()
	l2, _ := newTestMemory(t, 0)
	lc := NewLayeredCache(l2, 10)
	t.Cleanup(func() { _ = lc.l1.Close() })

	require.NoError(t, l2.Set(ctx, "k", point{"2024-01-01", 3}, time.Hour))

	var out point
	require.NoError(t, lc.Get(ctx, "k", &out))
	assert.Equal(t, 3.0, out.Value)
	assert.Equal(t, 1, lc.l1.Len())

	require.NoError(t, lc.Delete(ctx, "k"))
	assert.ErrorIs(t, lc.Get(ctx, "k", &out), ErrCacheMiss)
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestMemory(t, 0)

	calls := 0
	load := func(context.Context) ([]point, error) {
		calls++
		return []point{{"2024-01-01", 1}}, nil
	}

	v, hit, err := GetOrLoad(ctx, mc, "k", time.Hour, load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, v, 1)

	v, hit, err = GetOrLoad(ctx, mc, "k", time.Hour, load)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Len(t, v, 1)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestMemory(t, 0)

	boom := errors.New("upstream down")
	_, _, err := GetOrLoad(ctx, mc, "k", time.Hour, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, mc.Len())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "fred:SOFR:2000-01-01", Key("fred", "SOFR", "2000-01-01"))
	assert.Equal(t, "briefing:schedule", Key("", "briefing:schedule"))
	assert.Equal(t, "macropulse:n:5", Key("macropulse", "n", 5))
}

func TestNewSelectsMemory(t *testing.T) {
	svc, err := New(Config{Type: "memory", MaxSize: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	assert.IsType(t, &MemoryCache{}, svc)

	_, err = New(Config{Type: "memcached"})
	assert.Error(t, err)
}
