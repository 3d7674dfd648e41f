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

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, discounted *decimal.Decimal) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}

	v := d.Decimal
	return &v
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	query := `INSERT INTO products (id, name, sku, weight, price, discounted_price, is_new)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING created_at, updated_at
	`

	return conn(ctx, r.DB).QueryRowContext(dbCtx, query, product.ID, product.Name, product.SKU, product.Weight, product.Price, nullDecimal(product.DiscountedPrice), product.IsNew).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
        SELECT id, name, sku, weight, price, discounted_price, is_new, created_at, updated_at
        FROM products
        WHERE id = $1`

	var discounted decimal.NullDecimal

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name, &product.SKU, &product.Weight, &product.Price, &discounted, &product.IsNew, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	product.DiscountedPrice = decimalPtr(discounted)

	return product, nil
}

func (r *productRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, discounted *decimal.Decimal) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET price = $1, discounted_price = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, price, nullDecimal(discounted), id)
	if err != nil {
		return fmt.Errorf("failed to update product price: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	var total int

	err := db.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Offset
	offset := (page - 1) * size

	query := `
		SELECT id, name, sku, weight, price, discounted_price, is_new, created_at, updated_at
		FROM products
		ORDER BY is_new DESC, name
		LIMIT $1 OFFSET $2
	`

	rows, err := db.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	products := make([]*models.Product, 0, size)

	for rows.Next() {
		product := &models.Product{}

		var discounted decimal.NullDecimal

		err := rows.Scan(&product.ID, &product.Name, &product.SKU, &product.Weight, &product.Price, &discounted, &product.IsNew, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		product.DiscountedPrice = decimalPtr(discounted)
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
