package health

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCheck(t *testing.T) {

	t.Run("Success - Ping", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		mock.ExpectPing().SetVal("PONG")

		// Act
		err := redisCheck(client)(context.Background())

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Ping Error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(errors.New("connection refused"))

		// Act
		err := redisCheck(client)(context.Background())

		// Assert
		assert.ErrorContains(t, err, "redis ping failed")
	})

	t.Run("Failure - No Client", func(t *testing.T) {
		// Act
		err := redisCheck(nil)(context.Background())

		// Assert
		assert.EqualError(t, err, "redis client is not initialized")
	})
}
