package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/config"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		DefaultTTL: 10 * time.Minute,
		Namespace:  "nuts",
	}

	return cache.NewRedisCache(client, cfg), mock, cfg
}

func testProduct() models.Product {
	discounted := decimal.RequireFromString("89.50")

	return models.Product{
		ID:              uuid.MustParse("6f1c2a4e-8d6b-4f0a-9a57-3c2f8b1d7e10"),
		Name:            "Cashew roasted",
		SKU:             "CSH-500",
		Weight:          "500g",
		Price:           decimal.RequireFromString("99.90"),
		DiscountedPrice: &discounted,
		IsNew:           true,
	}
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	product := testProduct()
	key := cache.ProductKey(product.ID)
	stored := "nuts:" + key

	jsonData, err := json.Marshal(product)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet(stored).SetVal(string(jsonData))

		// Act
		var result models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, product.ID, result.ID)
		assert.True(t, product.Price.Equal(result.Price))
		require.NotNil(t, result.DiscountedPrice)
		assert.True(t, product.DiscountedPrice.Equal(*result.DiscountedPrice))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet(stored).SetErr(redis.Nil)

		// Act
		var result models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, uuid.Nil, result.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis connection error")
		mock.ExpectGet(stored).SetErr(expectedErr)

		// Act
		var result models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupted Entry", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet(stored).SetVal(`{"id": 42}`)

		// Act
		var result models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "failed to unmarshal cache data for key "+key)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	product := testProduct()
	key := cache.ProductKey(product.ID)

	jsonData, err := json.Marshal(product)
	require.NoError(t, err)

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectSet("nuts:"+key, jsonData, time.Minute).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, key, product, time.Minute)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Default TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, cfg := setup(t)
		mock.ExpectSet("nuts:"+key, jsonData, cfg.DefaultTTL).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, key, product, 0)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Without Namespace", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		redisCache := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Minute})
		mock.ExpectSet(key, jsonData, time.Minute).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, key, product, 0)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		// Act
		err := redisCache.Set(ctx, key, make(chan int), time.Minute)

		// Assert
		var jsonErr *json.UnsupportedTypeError
		require.ErrorAs(t, err, &jsonErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis SET failed")
		mock.ExpectSet("nuts:"+key, jsonData, time.Minute).SetErr(expectedErr)

		// Act
		err := redisCache.Set(ctx, key, product, time.Minute)

		// Assert
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		redisCache, mock, _ := setup(t)
		mock.ExpectDel("nuts:product:abc").SetVal(1)

		require.NoError(t, redisCache.Delete(ctx, "product:abc"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis DEL failed")
		mock.ExpectDel("nuts:product:abc").SetErr(expectedErr)

		assert.ErrorIs(t, redisCache.Delete(ctx, "product:abc"), expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetOrLoad(t *testing.T) {
	ctx := t.Context()
	product := testProduct()
	key := cache.ProductKey(product.ID)

	jsonData, err := json.Marshal(product)
	require.NoError(t, err)

	t.Run("Success - Served From Cache", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet("nuts:" + key).SetVal(string(jsonData))

		loader := func(ctx context.Context) (models.Product, error) {
			t.Fatal("loader must not run on a cache hit")
			return models.Product{}, nil
		}

		// Act
		result, err := cache.GetOrLoad(ctx, redisCache, key, time.Minute, loader)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, product.ID, result.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Loaded And Stored", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet("nuts:" + key).SetErr(redis.Nil)
		mock.ExpectSet("nuts:"+key, jsonData, time.Minute).SetVal("OK")

		calls := 0
		loader := func(ctx context.Context) (models.Product, error) {
			calls++
			return product, nil
		}

		// Act
		result, err := cache.GetOrLoad(ctx, redisCache, key, time.Minute, loader)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, product.SKU, result.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Redis Down Falls Back To Loader", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet("nuts:" + key).SetErr(errors.New("connection refused"))
		mock.ExpectSet("nuts:"+key, jsonData, time.Minute).SetErr(errors.New("connection refused"))

		// Act
		result, err := cache.GetOrLoad(ctx, redisCache, key, time.Minute, func(ctx context.Context) (models.Product, error) {
			return product, nil
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, product.ID, result.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Loader Error Is Not Cached", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet("nuts:" + key).SetErr(redis.Nil)
		loadErr := errors.New("not found")

		// Act
		_, err := cache.GetOrLoad(ctx, redisCache, key, time.Minute, func(ctx context.Context) (models.Product, error) {
			return models.Product{}, loadErr
		})

		// Assert
		assert.ErrorIs(t, err, loadErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("6f1c1d7e-3b55-4c57-9a43-5c1f3e0f7a10")

	assert.Equal(t, "product:6f1c1d7e-3b55-4c57-9a43-5c1f3e0f7a10", cache.ProductKey(id))
	assert.Equal(t, "regions:7", cache.RegionsKey(7))
	assert.Equal(t, "countries", cache.CountriesKey)
}
