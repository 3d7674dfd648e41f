package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryAdvisoryLock(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Lock Acquired Inside Transaction", func(t *testing.T) {
		// Arrange
		db, mock := setupDB(t)
		repo := repository.NewLockRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(q("SELECT pg_try_advisory_xact_lock($1)")).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_xact_lock"}).AddRow(true))
		mock.ExpectCommit()

		// Act
		var acquired bool
		err := repository.NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			acquired, err = repo.TryAdvisoryLock(ctx, 42)
			return err
		})

		// Assert
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("Success - Lock Held Elsewhere", func(t *testing.T) {
		// Arrange
		db, mock := setupDB(t)
		repo := repository.NewLockRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(q("pg_try_advisory_xact_lock")).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_xact_lock"}).AddRow(false))
		mock.ExpectCommit()

		// Act
		var acquired bool
		err := repository.NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			acquired, err = repo.TryAdvisoryLock(ctx, 42)
			return err
		})

		// Assert
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("Failure - Outside Transaction", func(t *testing.T) {
		// Arrange
		db, _ := setupDB(t)

		// Act
		acquired, err := repository.NewLockRepo(db).TryAdvisoryLock(ctx, 42)

		// Assert
		assert.False(t, acquired)
		assert.ErrorIs(t, err, repository.ErrLockOutsideTransaction)
	})
}
