package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartRepository interface {
	GetActiveCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	CreateCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	GetCartWithTotals(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	GetOwnedItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID) (*models.CartItem, error)
	SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	ReassignToCustomer(ctx context.Context, cartID, customerID uuid.UUID) error
	MoveItem(ctx context.Context, itemID, toCartID uuid.UUID) error
	DeleteCart(ctx context.Context, cartID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// ownerFilter returns the WHERE fragment for the active cart of owner and its argument.
func ownerFilter(owner models.CartOwner, alias string) (string, any) {
	if owner.IsCustomer() {
		return alias + ".customer_id = $1 AND " + alias + ".is_active = TRUE", owner.CustomerID
	}

	return alias + ".session_key = $1 AND " + alias + ".is_active = TRUE", owner.SessionKey
}

func scanCart(row interface{ Scan(dest ...any) error }) (*models.Cart, error) {
	cart := &models.Cart{}

	var customerID uuid.NullUUID
	var sessionKey sql.NullString

	if err := row.Scan(&cart.ID, &customerID, &sessionKey, &cart.IsActive, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return nil, err
	}

	if customerID.Valid {
		id := customerID.UUID
		cart.CustomerID = &id
	}

	if sessionKey.Valid {
		key := sessionKey.String
		cart.SessionKey = &key
	}

	cart.Items = []models.CartItem{}

	return cart, nil
}

func (r *cartRepository) GetActiveCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter, arg := ownerFilter(owner, "c")

	query := `
		SELECT c.id, c.customer_id, c.session_key, c.is_active, c.created_at, c.updated_at
		FROM carts c
		WHERE ` + filter

	cart, err := scanCart(conn(ctx, r.DB).QueryRowContext(dbCtx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return cart, nil
}

// CreateCart inserts an active cart for owner. A concurrent insert for the same owner
// is absorbed by the partial unique indexes and the existing cart is returned.
func (r *cartRepository) CreateCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var customerID uuid.NullUUID
	var sessionKey sql.NullString

	if owner.IsCustomer() {
		customerID = uuid.NullUUID{UUID: owner.CustomerID, Valid: true}
	} else {
		sessionKey = sql.NullString{String: owner.SessionKey, Valid: true}
	}

	query := `
		INSERT INTO carts (id, customer_id, session_key, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		ON CONFLICT DO NOTHING
	`

	if _, err := conn(ctx, r.DB).ExecContext(dbCtx, query, uuid.New(), customerID, sessionKey); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return r.GetActiveCart(ctx, owner)
}

// GetCartWithTotals loads the active cart with its lines and effective prices in a single
// statement, so the totals come from one consistent snapshot.
func (r *cartRepository) GetCartWithTotals(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter, arg := ownerFilter(owner, "c")

	query := `
		SELECT c.id, c.customer_id, c.session_key, c.is_active, c.created_at, c.updated_at,
		       ci.id, ci.product_id, ci.quantity,
		       p.name, p.sku, p.weight, COALESCE(p.discounted_price, p.price)
		FROM carts c
		LEFT JOIN cart_items ci ON ci.cart_id = c.id
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ` + filter + `
		ORDER BY ci.created_at, ci.id
	`

	rows, err := conn(ctx, r.DB).QueryContext(dbCtx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	defer rows.Close()

	var cart *models.Cart

	for rows.Next() {
		var (
			c          models.Cart
			customerID uuid.NullUUID
			sessionKey sql.NullString
			itemID     uuid.NullUUID
			productID  uuid.NullUUID
			quantity   sql.NullInt64
			name       sql.NullString
			sku        sql.NullString
			weight     sql.NullString
			unitPrice  decimal.NullDecimal
		)

		err := rows.Scan(&c.ID, &customerID, &sessionKey, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
			&itemID, &productID, &quantity, &name, &sku, &weight, &unitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart row: %w", err)
		}

		if cart == nil {
			cart = &c
			cart.Items = []models.CartItem{}

			if customerID.Valid {
				id := customerID.UUID
				cart.CustomerID = &id
			}

			if sessionKey.Valid {
				key := sessionKey.String
				cart.SessionKey = &key
			}
		}

		// cart without items yields a single row of NULL item columns
		if !itemID.Valid {
			continue
		}

		cart.Items = append(cart.Items, models.CartItem{
			ID:        itemID.UUID,
			CartID:    cart.ID,
			ProductID: productID.UUID,
			Quantity:  int(quantity.Int64),
			UnitPrice: unitPrice.Decimal,
			Product: &models.ProductSummary{
				ID:     productID.UUID,
				Name:   name.String,
				SKU:    sku.String,
				Weight: weight.String,
			},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if cart == nil {
		return nil, sql.ErrNoRows
	}

	cart.ComputeTotals()

	return cart, nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity
	`

	item := &models.CartItem{CartID: cartID, ProductID: productID}

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, uuid.New(), cartID, productID, quantity).Scan(&item.ID, &item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return item, nil
}

// GetOwnedItem returns the item only when it belongs to owner's active cart.
func (r *cartRepository) GetOwnedItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter, arg := ownerFilter(owner, "c")

	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE ` + filter + ` AND ci.id = $2
		FOR UPDATE OF ci
	`

	item := &models.CartItem{}

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, arg, itemID).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return item, nil
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, itemID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	return expectAffected(result)
}

func (r *cartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	return expectAffected(result)
}

func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, cart_id, product_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, id
	`

	rows, err := conn(ctx, r.DB).QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	defer rows.Close()

	items := []models.CartItem{}

	for rows.Next() {
		var item models.CartItem

		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepository) ReassignToCustomer(ctx context.Context, cartID, customerID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE carts SET customer_id = $1, session_key = NULL, updated_at = NOW()
		WHERE id = $2
	`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, customerID, cartID)
	if err != nil {
		return fmt.Errorf("failed to reassign cart: %w", err)
	}

	return expectAffected(result)
}

func (r *cartRepository) MoveItem(ctx context.Context, itemID, toCartID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `UPDATE cart_items SET cart_id = $1 WHERE id = $2`, toCartID, itemID)
	if err != nil {
		return fmt.Errorf("failed to move cart item: %w", err)
	}

	return expectAffected(result)
}

func (r *cartRepository) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return expectAffected(result)
}

// expectAffected maps a no-op write to sql.ErrNoRows.
func expectAffected(result sql.Result) error {
	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
