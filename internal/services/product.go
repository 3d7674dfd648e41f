package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, discounted *decimal.Decimal) (*models.Product, error)
}

type productService struct {
	repo     repository.ProductRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewProductService(repo repository.ProductRepository, c cache.Cache, cacheTTL time.Duration) ProductService {
	return &productService{repo: repo, cache: c, cacheTTL: cacheTTL}
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := cache.GetOrLoad(ctx, s.cache, cache.ProductKey(id), s.cacheTTL, func(ctx context.Context) (*models.Product, error) {
		return s.repo.GetProductByID(ctx, id)
	})
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	page, pageSize = models.NormalizePage(page, pageSize)

	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

// UpdatePrice changes the catalogue price. Placed orders keep the prices they were created with.
func (s *productService) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, discounted *decimal.Decimal) (*models.Product, error) {

	if !price.IsPositive() {
		return nil, errors.AddValidationError("price", "must be greater than zero")
	}

	// a set discounted price always wins, even above the list price
	if discounted != nil && !discounted.IsPositive() {
		return nil, errors.AddValidationError("discounted_price", "must be greater than zero")
	}

	if err := s.repo.UpdatePrice(ctx, id, price, discounted); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.ProductKey(id)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to evict cached product, stale price until TTL",
			slog.String("productId", id.String()), slog.Any("error", err))
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}
