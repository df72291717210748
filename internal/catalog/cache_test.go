// internal/catalog/cache_test.go
package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-match-backend/internal/common/database"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/models"
)

func newMockedCache(t *testing.T, ttl time.Duration) (*SnapshotCache, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	cache := NewSnapshotCache(&database.RedisClient{Client: db}, ttl, logger.NewTestLogger(t))
	return cache, mock
}

func TestSnapshotCacheStore(t *testing.T) {
	cache, mock := newMockedCache(t, 10*time.Minute)
	properties := []models.Property{{ID: "p1", Title: "Lakeside Cabin"}}

	data, err := json.Marshal(properties)
	require.NoError(t, err)
	mock.ExpectSet(snapshotCacheKey, data, 10*time.Minute).SetVal("OK")

	cache.Store(context.Background(), properties)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotCacheLoad(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		cache, mock := newMockedCache(t, 10*time.Minute)
		stored := []models.Property{{ID: "p1", Title: "Lakeside Cabin"}}
		data, err := json.Marshal(stored)
		require.NoError(t, err)
		mock.ExpectGet(snapshotCacheKey).SetVal(string(data))

		properties, err := cache.Load(context.Background())

		require.NoError(t, err)
		require.Len(t, properties, 1)
		assert.Equal(t, "p1", properties[0].ID)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		cache, mock := newMockedCache(t, 10*time.Minute)
		mock.ExpectGet(snapshotCacheKey).RedisNil()

		properties, err := cache.Load(context.Background())

		require.NoError(t, err)
		assert.Nil(t, properties)
	})

	t.Run("corrupt payload is an error", func(t *testing.T) {
		cache, mock := newMockedCache(t, 10*time.Minute)
		mock.ExpectGet(snapshotCacheKey).SetVal("{not json")

		_, err := cache.Load(context.Background())

		assert.Error(t, err)
	})
}

func TestSnapshotCacheInvalidate(t *testing.T) {
	cache, mock := newMockedCache(t, 10*time.Minute)
	mock.ExpectDel(snapshotCacheKey).SetVal(1)

	cache.Invalidate(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}
