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

var orderRowColumns = []string{
	"id", "customer_id", "company_name", "contact_person", "full_name", "email", "phone", "status",
	"payment_method", "delivery_method", "delivery_country_id", "delivery_region_id", "delivery_address",
	"created_at", "updated_at",
}

var orderItemColumns = []string{"id", "order_id", "product_id", "quantity", "price"}

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := setupDB(t)

	return repository.NewOrderRepository(db), mock
}

func TestCreateOrder(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	customerID := uuid.New()
	country, region := int64(1), int64(10)

	newOrder := func() *models.Order {
		return &models.Order{
			ID:                uuid.New(),
			CustomerID:        &customerID,
			FullName:          "Olena Koval",
			Email:             "olena@example.com",
			Phone:             "+380501234567",
			Status:            models.OrderStatusNew,
			PaymentMethod:     models.PaymentLiqpay,
			DeliveryMethod:    models.DeliveryNovaPoshta,
			DeliveryCountryID: &country,
			DeliveryRegionID:  &region,
			Items: []models.OrderItem{
				{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2, Price: decimal.RequireFromString("120.50")},
				{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1, Price: decimal.RequireFromString("80.00")},
			},
		}
	}

	t.Run("Success - Order And Lines Inserted", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := newOrder()

		mock.ExpectQuery(q("INSERT INTO orders")).
			WithArgs(order.ID, customerID, "", "", "Olena Koval", "olena@example.com", "+380501234567",
				models.OrderStatusNew, models.PaymentLiqpay, models.DeliveryNovaPoshta, int64(1), int64(10), "").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		for _, item := range order.Items {
			mock.ExpectExec(q("INSERT INTO order_items")).
				WithArgs(item.ID, order.ID, item.ProductID, item.Quantity, item.Price).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, now, order.CreatedAt)
	})

	t.Run("Success - Pickup Without Delivery Region", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := newOrder()
		order.DeliveryMethod = models.DeliveryPickup
		order.DeliveryCountryID, order.DeliveryRegionID = nil, nil
		order.Items = nil

		mock.ExpectQuery(q("INSERT INTO orders")).
			WithArgs(order.ID, customerID, "", "", "Olena Koval", "olena@example.com", "+380501234567",
				models.OrderStatusNew, models.PaymentLiqpay, models.DeliveryPickup, nil, nil, "").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Line Insert Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := newOrder()

		mock.ExpectQuery(q("INSERT INTO orders")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(q("INSERT INTO order_items")).WillReturnError(errors.New("fk violation"))

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		assert.ErrorContains(t, err, "failed to insert an order item")
	})
}

func TestGetOrderByID(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	orderID, customerID := uuid.New(), uuid.New()

	t.Run("Success - Order With Lines And Total", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)

		mock.ExpectQuery(q("FROM orders WHERE id = $1")).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows(orderRowColumns).AddRow(orderID, customerID, "", "", "Olena Koval",
				"olena@example.com", "+380501234567", "PAID", "LIQPAY", "COURIER", 1, 10, "Khreshchatyk 22", now, now))
		mock.ExpectQuery(q("WHERE order_id = ANY($1::uuid[])")).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(orderItemColumns).
				AddRow(uuid.New(), orderID, uuid.New(), 2, "120.50").
				AddRow(uuid.New(), orderID, uuid.New(), 1, "80.00"))

		// Act
		order, err := repo.GetOrderByID(ctx, orderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPaid, order.Status)
		assert.Equal(t, customerID, *order.CustomerID)
		assert.Equal(t, int64(10), *order.DeliveryRegionID)
		assert.Len(t, order.Items, 2)
		assert.True(t, decimal.RequireFromString("321").Equal(order.Total))
	})

	t.Run("Failure - Order Not Found", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(q("FROM orders WHERE id = $1")).WithArgs(orderID).WillReturnError(sql.ErrNoRows)

		// Act
		order, err := repo.GetOrderByID(ctx, orderID)

		// Assert
		assert.Nil(t, order)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestListOrdersByCustomer(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	customerID := uuid.New()

	t.Run("Success - Page With Lines", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		first, second := uuid.New(), uuid.New()

		mock.ExpectQuery(q("SELECT COUNT(*) FROM orders WHERE customer_id = $1")).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectQuery(q("ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
			WithArgs(customerID, 2, 2).
			WillReturnRows(sqlmock.NewRows(orderRowColumns).
				AddRow(first, customerID, "", "", "Olena Koval", "o@example.com", "+380501234567", "NEW", "LIQPAY", "PICKUP", nil, nil, "", now, now).
				AddRow(second, customerID, "", "", "Olena Koval", "o@example.com", "+380501234567", "SHIPPED", "LIQPAY", "PICKUP", nil, nil, "", now, now))
		mock.ExpectQuery(q("FROM order_items")).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(orderItemColumns).AddRow(uuid.New(), second, uuid.New(), 3, "10.00"))

		// Act
		orders, total, err := repo.ListOrdersByCustomer(ctx, customerID, 2, 2)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		require.Len(t, orders, 2)
		assert.Empty(t, orders[0].Items)
		assert.Nil(t, orders[0].DeliveryRegionID)
		assert.True(t, decimal.RequireFromString("30").Equal(orders[1].Total))
	})

	t.Run("Success - Empty Page Skips Lines Query", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)

		mock.ExpectQuery(q("SELECT COUNT(*)")).WithArgs(customerID).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(q("LIMIT $2 OFFSET $3")).WithArgs(customerID, 10, 0).WillReturnRows(sqlmock.NewRows(orderRowColumns))

		// Act
		orders, total, err := repo.ListOrdersByCustomer(ctx, customerID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, orders)
	})
}

func TestOrderProgressionQueries(t *testing.T) {
	ctx := t.Context()
	orderID := uuid.New()

	t.Run("Success - IDs By Status", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		otherID := uuid.New()
		mock.ExpectQuery(q("SELECT id FROM orders WHERE status = $1")).
			WithArgs(models.OrderStatusShipped).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(orderID).AddRow(otherID))

		// Act
		ids, err := repo.ListIDsByStatus(ctx, models.OrderStatusShipped)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{orderID, otherID}, ids)
	})

	t.Run("Success - New Orders Without Transaction", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(q("LEFT JOIN payment_transactions t ON t.order_id = o.id WHERE o.status = $1 AND t.id IS NULL")).
			WithArgs(models.OrderStatusNew).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(orderID))

		// Act
		ids, err := repo.ListNewWithoutTransaction(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{orderID}, ids)
	})

	t.Run("Success - Sum Of Lines", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(q("SELECT COALESCE(SUM(quantity * price), 0) FROM order_items")).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("389.90"))

		// Act
		total, err := repo.SumItems(ctx, orderID)

		// Assert
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("389.9").Equal(total))
	})

	t.Run("Success - Conditional Status Update", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectExec(q("UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3")).
			WithArgs(models.OrderStatusShipped, orderID, models.OrderStatusPaid).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		moved, err := repo.UpdateStatus(ctx, orderID, models.OrderStatusPaid, models.OrderStatusShipped)

		// Assert
		require.NoError(t, err)
		assert.True(t, moved)
	})

	t.Run("Success - Status Already Moved", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectExec(q("UPDATE orders SET status")).
			WithArgs(models.OrderStatusShipped, orderID, models.OrderStatusPaid).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		moved, err := repo.UpdateStatus(ctx, orderID, models.OrderStatusPaid, models.OrderStatusShipped)

		// Assert
		require.NoError(t, err)
		assert.False(t, moved)
	})

	t.Run("Failure - Update Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectExec(q("UPDATE orders SET status")).WillReturnError(errors.New("deadlock detected"))

		// Act
		_, err := repo.UpdateStatus(ctx, orderID, models.OrderStatusPaid, models.OrderStatusShipped)

		// Assert
		assert.ErrorContains(t, err, "failed to update order status")
	})
}
