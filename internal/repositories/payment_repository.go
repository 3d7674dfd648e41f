package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/google/uuid"
)

type PaymentRepository interface {
	// CreateTransaction reports false when the order already has a transaction.
	CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) (bool, error)
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error)
	ListByStatus(ctx context.Context, status models.TransactionStatus) ([]models.PaymentTransaction, error)
	ListTransactionsByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.PaymentTransaction, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.TransactionStatus, gatewayRef string) (bool, error)
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

const transactionColumns = `t.id, t.order_id, t.amount, t.status, t.gateway_ref, t.created_at, t.updated_at`

func scanTransaction(row interface{ Scan(dest ...any) error }) (*models.PaymentTransaction, error) {
	tx := &models.PaymentTransaction{}

	if err := row.Scan(&tx.ID, &tx.OrderID, &tx.Amount, &tx.Status, &tx.GatewayRef, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
		return nil, err
	}

	return tx, nil
}

func (r *paymentRepository) CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payment_transactions (id, order_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (order_id) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, tx.ID, tx.OrderID, tx.Amount, tx.Status).Scan(&tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to create payment transaction: %w", err)
	}

	return true, nil
}

func (r *paymentRepository) GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM payment_transactions t WHERE t.id = $1`

	tx, err := scanTransaction(conn(ctx, r.DB).QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get payment transaction: %w", err)
	}

	return tx, nil
}

func (r *paymentRepository) ListByStatus(ctx context.Context, status models.TransactionStatus) ([]models.PaymentTransaction, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + `
		FROM payment_transactions t
		WHERE t.status = $1
		ORDER BY t.created_at, t.id
	`

	rows, err := conn(ctx, r.DB).QueryContext(dbCtx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment transactions: %w", err)
	}

	defer rows.Close()

	return collectTransactions(rows)
}

func (r *paymentRepository) ListTransactionsByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.PaymentTransaction, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	var total int

	countQuery := `
		SELECT COUNT(*)
		FROM payment_transactions t
		JOIN orders o ON o.id = t.order_id
		WHERE o.customer_id = $1
	`

	if err := db.QueryRowContext(dbCtx, countQuery, customerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payment transactions: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + transactionColumns + `
		FROM payment_transactions t
		JOIN orders o ON o.id = t.order_id
		WHERE o.customer_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := db.QueryContext(dbCtx, query, customerID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payment transactions: %w", err)
	}

	defer rows.Close()

	txs, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

// UpdateStatus is conditional on the current status; gatewayRef is kept when empty.
func (r *paymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.TransactionStatus, gatewayRef string) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payment_transactions
		SET status = $1, gateway_ref = COALESCE(NULLIF($2::text, ''), gateway_ref), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, to, gatewayRef, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get updated rows: %w", err)
	}

	return updatedRows == 1, nil
}

func collectTransactions(rows *sql.Rows) ([]models.PaymentTransaction, error) {
	txs := []models.PaymentTransaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment transaction: %w", err)
		}

		txs = append(txs, *tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return txs, nil
}
