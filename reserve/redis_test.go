package reserve

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestManager creates a miniredis instance and returns a connected
// RedisManager.
func setupTestManager(t *testing.T, ttl time.Duration) (*RedisManager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	m, err := NewRedisManager(RedisOptions{
		URL: fmt.Sprintf("redis://%s", mr.Addr()),
		TTL: ttl,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = m.Close()
		mr.Close()
	})

	return m, mr
}

func TestNewRedisManager(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		mr := miniredis.RunT(t)
		defer mr.Close()

		m, err := NewRedisManager(RedisOptions{
			URL: fmt.Sprintf("redis://%s", mr.Addr()),
		})
		require.NoError(t, err)
		require.NotNil(t, m)
		defer m.Close()
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisManager(RedisOptions{URL: "not-a-url"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})
}

func TestRedisManagerClaims(t *testing.T) {
	ctx := context.Background()

	t.Run("first claim wins", func(t *testing.T) {
		m, _ := setupTestManager(t, 0)

		got, err := m.TryReserve(ctx, "tree-7", "alice")
		require.NoError(t, err)
		assert.True(t, got)

		got, err = m.TryReserve(ctx, "tree-7", "bob")
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("re-entrant for holder", func(t *testing.T) {
		m, _ := setupTestManager(t, 0)

		got, err := m.TryReserve(ctx, "tree-7", "alice")
		require.NoError(t, err)
		require.True(t, got)

		got, err = m.TryReserve(ctx, "tree-7", "alice")
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("release then reclaim", func(t *testing.T) {
		m, _ := setupTestManager(t, 0)

		_, err := m.TryReserve(ctx, "tree-7", "alice")
		require.NoError(t, err)

		require.NoError(t, m.Release(ctx, "tree-7", "alice"))

		got, err := m.TryReserve(ctx, "tree-7", "bob")
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("release by non-holder is a no-op", func(t *testing.T) {
		m, _ := setupTestManager(t, 0)

		_, err := m.TryReserve(ctx, "tree-7", "alice")
		require.NoError(t, err)

		require.NoError(t, m.Release(ctx, "tree-7", "bob"))

		ok, err := m.IsAvailableFor(ctx, "tree-7", "alice")
		require.NoError(t, err)
		assert.True(t, ok, "alice's claim should survive bob's release")
	})

	t.Run("release of unclaimed resource", func(t *testing.T) {
		m, _ := setupTestManager(t, 0)
		require.NoError(t, m.Release(ctx, "ghost", "alice"))
	})

	t.Run("availability tracks holder", func(t *testing.T) {
		m, _ := setupTestManager(t, 0)

		ok, err := m.IsAvailableFor(ctx, "tree-7", "bob")
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = m.TryReserve(ctx, "tree-7", "alice")
		require.NoError(t, err)

		ok, err = m.IsAvailableFor(ctx, "tree-7", "alice")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = m.IsAvailableFor(ctx, "tree-7", "bob")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRedisManagerTTL(t *testing.T) {
	ctx := context.Background()
	m, mr := setupTestManager(t, 10*time.Second)

	got, err := m.TryReserve(ctx, "tree-7", "alice")
	require.NoError(t, err)
	require.True(t, got)

	got, err = m.TryReserve(ctx, "tree-7", "bob")
	require.NoError(t, err)
	assert.False(t, got)

	// Expire the claim; the resource becomes claimable again.
	mr.FastForward(11 * time.Second)

	got, err = m.TryReserve(ctx, "tree-7", "bob")
	require.NoError(t, err)
	assert.True(t, got)
}
