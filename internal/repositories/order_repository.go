package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error)
	ListIDsByStatus(ctx context.Context, status models.OrderStatus) ([]uuid.UUID, error)
	ListNewWithoutTransaction(ctx context.Context) ([]uuid.UUID, error)
	SumItems(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}

	n := v.Int64
	return &n
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}

	return uuid.NullUUID{UUID: *id, Valid: true}
}

// CreateOrder inserts the order and its lines. Callers wrap it in a transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	query := `
		INSERT INTO orders (id, customer_id, company_name, contact_person, full_name, email, phone, status,
		                    payment_method, delivery_method, delivery_country_id, delivery_region_id, delivery_address,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := db.QueryRowContext(dbCtx, query, order.ID, nullUUID(order.CustomerID), order.CompanyName, order.ContactPerson,
		order.FullName, order.Email, order.Phone, order.Status, order.PaymentMethod, order.DeliveryMethod,
		nullInt64(order.DeliveryCountryID), nullInt64(order.DeliveryRegionID), order.DeliveryAddress).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, item := range order.Items {
		if _, err := db.ExecContext(dbCtx, itemQuery, item.ID, order.ID, item.ProductID, item.Quantity, item.Price); err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, customer_id, company_name, contact_person, full_name, email, phone, status,
		       payment_method, delivery_method, delivery_country_id, delivery_region_id, delivery_address,
		       created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	order := &models.Order{}

	var customerID uuid.NullUUID
	var countryID, regionID sql.NullInt64

	err := row.Scan(&order.ID, &customerID, &order.CompanyName, &order.ContactPerson, &order.FullName, &order.Email,
		&order.Phone, &order.Status, &order.PaymentMethod, &order.DeliveryMethod, &countryID, &regionID,
		&order.DeliveryAddress, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		id := customerID.UUID
		order.CustomerID = &id
	}

	order.DeliveryCountryID = int64Ptr(countryID)
	order.DeliveryRegionID = int64Ptr(regionID)

	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	order, err := scanOrder(db.QueryRowContext(dbCtx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	items, err := r.loadItems(dbCtx, db, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}

	order.Items = items[order.ID]
	order.Total = order.ComputeTotal()

	return order, nil
}

// loadItems fetches the lines of all given orders in one query, keyed by order id.
func (r *orderRepository) loadItems(ctx context.Context, db DBTX, orderIDs []uuid.UUID) (map[uuid.UUID][]models.OrderItem, error) {

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, id
	`

	rows, err := db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	items := make(map[uuid.UUID][]models.OrderItem, len(orderIDs))
	for _, id := range orderIDs {
		items[id] = []models.OrderItem{}
	}

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items[item.OrderID] = append(items[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// List the orders of the customer, newest first, along with pagination
func (r *orderRepository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	var total int

	err := db.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE customer_id = $1`, customerID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	// Offset
	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := db.QueryContext(dbCtx, query, customerID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	orders := []models.Order{}
	ids := []uuid.UUID{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) == 0 {
		return orders, total, nil
	}

	items, err := r.loadItems(dbCtx, db, ids)
	if err != nil {
		return nil, 0, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		orders[i].Total = orders[i].ComputeTotal()
	}

	return orders, total, nil
}

func (r *orderRepository) ListIDsByStatus(ctx context.Context, status models.OrderStatus) ([]uuid.UUID, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id FROM orders WHERE status = $1 ORDER BY created_at, id`

	return queryIDs(dbCtx, conn(ctx, r.DB), query, status)
}

func (r *orderRepository) ListNewWithoutTransaction(ctx context.Context) ([]uuid.UUID, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT o.id
		FROM orders o
		LEFT JOIN payment_transactions t ON t.order_id = o.id
		WHERE o.status = $1 AND t.id IS NULL
		ORDER BY o.created_at, o.id
	`

	return queryIDs(dbCtx, conn(ctx, r.DB), query, models.OrderStatusNew)
}

func (r *orderRepository) SumItems(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total decimal.Decimal

	query := `SELECT COALESCE(SUM(quantity * price), 0) FROM order_items WHERE order_id = $1`

	if err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, orderID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum order items: %w", err)
	}

	return total, nil
}

// UpdateStatus moves the order from one status to another. It reports false when the
// order is not currently in the from status, so a record advances at most once.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get updated rows: %w", err)
	}

	return updatedRows == 1, nil
}

func queryIDs(ctx context.Context, db DBTX, query string, args ...any) ([]uuid.UUID, error) {

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ids: %w", err)
	}

	defer rows.Close()

	ids := []uuid.UUID{}

	for rows.Next() {
		var id uuid.UUID

		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
