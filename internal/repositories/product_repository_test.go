package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{"id", "name", "sku", "weight", "price", "discounted_price", "is_new", "created_at", "updated_at"}

func setupProductRepoTest(t *testing.T) (repository.ProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := setupDB(t)

	return repository.NewProductRepo(db), mock
}

func TestCreateProduct(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	t.Run("Success - ID Assigned", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)
		product := &models.Product{Name: "Hazelnuts", SKU: "HAZ-500", Weight: "500g", Price: decimal.RequireFromString("75.00"), IsNew: true}

		mock.ExpectQuery(q("INSERT INTO products (id, name, sku, weight, price, discounted_price, is_new)")).
			WithArgs(sqlmock.AnyArg(), "Hazelnuts", "HAZ-500", "500g", product.Price, nil, true).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.CreateProduct(ctx, product)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, now, product.UpdatedAt)
	})
}

func TestGetProductByIDRepo(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	id := uuid.New()

	t.Run("Success - Discounted Product", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)
		mock.ExpectQuery(q("FROM products WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productRowColumns).AddRow(id, "Cashews", "CSH-1", "1kg", "199.00", "179.00", false, now, now))

		// Act
		product, err := repo.GetProductByID(ctx, id)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, product.DiscountedPrice)
		assert.True(t, decimal.RequireFromString("179").Equal(product.EffectivePrice()))
	})

	t.Run("Success - No Discount", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)
		mock.ExpectQuery(q("FROM products")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(productRowColumns).AddRow(id, "Cashews", "CSH-1", "1kg", "199.00", nil, false, now, now))

		// Act
		product, err := repo.GetProductByID(ctx, id)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, product.DiscountedPrice)
		assert.True(t, decimal.RequireFromString("199").Equal(product.EffectivePrice()))
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)
		mock.ExpectQuery(q("FROM products")).WithArgs(id).WillReturnError(sql.ErrNoRows)

		// Act
		_, err := repo.GetProductByID(ctx, id)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUpdateProductPrice(t *testing.T) {
	ctx := t.Context()
	id := uuid.New()
	price := decimal.RequireFromString("210.00")

	t.Run("Success - Discount Cleared", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)
		mock.ExpectExec(q("UPDATE products SET price = $1, discounted_price = $2")).
			WithArgs(price, nil, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdatePrice(ctx, id, price, nil)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)
		discounted := decimal.RequireFromString("190.00")
		mock.ExpectExec(q("UPDATE products")).
			WithArgs(price, discounted, id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdatePrice(ctx, id, price, &discounted)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestListProductsRepo(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	t.Run("Success - New Products First", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)
		mock.ExpectQuery(q("SELECT COUNT(*) FROM products")).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(q("ORDER BY is_new DESC, name LIMIT $1 OFFSET $2")).
			WithArgs(5, 5).
			WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow(uuid.New(), "Pecans", "PEC-1", "250g", "90.00", nil, true, now, now).
				AddRow(uuid.New(), "Almonds", "ALM-1", "250g", "54.00", "49.00", false, now, now))

		// Act
		products, total, err := repo.ListProducts(ctx, 2, 5)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, products, 2)
		assert.True(t, products[0].IsNew)
		assert.NotNil(t, products[1].DiscountedPrice)
	})

	t.Run("Failure - Count Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)
		mock.ExpectQuery(q("SELECT COUNT(*) FROM products")).WillReturnError(errors.New("db down"))

		// Act
		_, _, err := repo.ListProducts(ctx, 1, 10)

		// Assert
		assert.ErrorContains(t, err, "failed to count products")
	})
}
