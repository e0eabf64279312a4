// internal/store/cache_test.go
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"pathway-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, NewCache(rdb, 10*time.Minute, 5*time.Minute)
}

func TestCache_ProfileRoundTrip(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	got, err := c.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	profile := models.NewUserProfile("user-1", []string{"IT"}, nil, nil, []string{"Sydney"}, 70)
	require.NoError(t, c.SetProfile(ctx, profile))

	assert.True(t, mr.Exists("user:profile:user-1"))
	assert.Equal(t, 10*time.Minute, mr.TTL("user:profile:user-1"))

	got, err = c.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, profile.Skills, got.Skills)
	assert.Equal(t, 70, got.PRPoints)

	require.NoError(t, c.InvalidateProfile(ctx, "user-1"))
	assert.False(t, mr.Exists("user:profile:user-1"))
}

func TestCache_WeightsRoundTrip(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	w := models.DefaultWeights()
	w.Skill = 0.9
	require.NoError(t, c.SetWeights(ctx, w))
	assert.Equal(t, 5*time.Minute, mr.TTL("algorithm:weights:default"))

	got, err := c.GetWeights(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, w, *got)

	mr.FastForward(6 * time.Minute)
	got, err = c.GetWeights(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	mr, c := setupMiniredis(t)
	require.NoError(t, mr.Set("user:profile:user-1", "{not json"))

	got, err := c.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_TransportError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewCache(db, time.Minute, time.Minute)

	mock.ExpectGet("algorithm:weights:default").SetErr(errors.New("connection refused"))

	_, err := c.GetWeights(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_MissWithRedismock(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewCache(db, time.Minute, time.Minute)

	mock.ExpectGet(ProfileKey("user-2")).RedisNil()

	got, err := c.GetProfile(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
