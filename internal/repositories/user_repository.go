package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `
		INSERT INTO users(id, email, password, is_active, created_at, updated_at)
		VALUES($1, $2, $3, TRUE, NOW(), NOW())
		RETURNING is_active, created_at, updated_at`

	return conn(ctx, r.DB).QueryRowContext(dbCtx, query, user.ID, user.Email, user.Password).Scan(&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `SELECT id, email, password, is_active, is_staff, created_at, updated_at
			  FROM users
			  WHERE LOWER(email) = LOWER($1)`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, email).Scan(&user.ID, &user.Email, &user.Password, &user.IsActive, &user.IsStaff, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `
	SELECT id, email, password, is_active, is_staff, created_at, updated_at
	FROM users
	WHERE id = $1
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, id).Scan(&user.ID, &user.Email, &user.Password, &user.IsActive, &user.IsStaff, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// EmailTaken checks for another user with the same email, ignoring exclude.
func (r *userRepository) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND id <> $2)`

	if err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, email, exclude).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

func (r *userRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `UPDATE users SET email = $1, updated_at = NOW() WHERE id = $2`, email, id)
	if err != nil {
		return fmt.Errorf("failed to update email: %w", err)
	}

	return expectAffected(result)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return expectAffected(result)
}
