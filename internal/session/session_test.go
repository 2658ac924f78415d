package session

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-memory stand-in for the redis commands the store
// uses. Expiry is simulated eagerly on Get.
type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	expiry  map[string]time.Time
	lastTTL time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string), expiry: make(map[string]time.Time)}
}

func (f *fakeCache) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value.(string)
	f.expiry[key] = time.Now().Add(expiration)
	f.lastTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCache) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok || time.Now().After(f.expiry[key]) {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			delete(f.expiry, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func newTestStore(ttl time.Duration) (*Store, *fakeCache) {
	cache := newFakeCache()
	return &Store{cache: cache, ttl: ttl}, cache
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, cache := newTestStore(24 * time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, "5f1e7cda04a394508232559d")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 24*time.Hour, cache.lastTTL)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "5f1e7cda04a394508232559d", userID)
}

func TestStore_TokensAreOpaqueAndUnique(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(time.Hour)
	ctx := context.Background()

	t1, err := store.Create(ctx, "u")
	require.NoError(t, err)
	t2, err := store.Create(ctx, "u")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	assert.False(t, strings.Contains(t1, "u"))
}

func TestStore_ResolveUnknownToken(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(time.Hour)
	_, err := store.Resolve(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ResolveExpired(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(-time.Second)
	token, err := store.Create(context.Background(), "u")
	require.NoError(t, err)

	_, err = store.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DestroyIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, "u")
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, token))
	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Destroying again is a no-op, not an error.
	require.NoError(t, store.Destroy(ctx, token))
}
