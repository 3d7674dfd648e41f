package service

import (
	"context"
	"database/sql"
	stdErrors "errors"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService interface {
	GetCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	GetOrCreateCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	AddItem(ctx context.Context, owner models.CartOwner, productID uuid.UUID, quantity int) (*models.Cart, error)
	UpdateItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID, action models.CartAction) (*models.Cart, error)
	MergeCarts(ctx context.Context, customerID uuid.UUID, sessionKey string) error
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
	transactor  repository.Transactor
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository, transactor repository.Transactor) CartService {
	return &cartService{repo: repo, productRepo: productRepo, transactor: transactor}
}

func emptyCart(owner models.CartOwner) *models.Cart {
	cart := &models.Cart{Items: []models.CartItem{}, Total: decimal.Zero}

	if owner.IsCustomer() {
		id := owner.CustomerID
		cart.CustomerID = &id
	}

	return cart
}

// GetCart returns the owner's active cart with its totals. An owner without a cart gets an empty one.
func (s *cartService) GetCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {

	if err := owner.Validate(); err != nil {
		return nil, errors.BadRequestError("Cart owner is required").WithError(err)
	}

	cart, err := s.repo.GetCartWithTotals(ctx, owner)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return emptyCart(owner), nil
		}
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) GetOrCreateCart(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {

	if err := owner.Validate(); err != nil {
		return nil, errors.BadRequestError("Cart owner is required").WithError(err)
	}

	cart, err := s.getOrCreate(ctx, owner)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) getOrCreate(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {

	cart, err := s.repo.GetActiveCart(ctx, owner)
	if err == nil {
		return cart, nil
	}

	if !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return s.repo.CreateCart(ctx, owner)
}

func (s *cartService) AddItem(ctx context.Context, owner models.CartOwner, productID uuid.UUID, quantity int) (*models.Cart, error) {

	if err := owner.Validate(); err != nil {
		return nil, errors.BadRequestError("Cart owner is required").WithError(err)
	}

	if quantity < 1 {
		return nil, errors.AddValidationError("quantity", "must be at least 1")
	}

	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.getOrCreate(ctx, owner)
		if err != nil {
			return err
		}

		_, err = s.repo.UpsertItem(ctx, cart.ID, productID, quantity)

		return err
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.GetCart(ctx, owner)
}

// UpdateItem applies action to an item of the owner's active cart. Items of other carts are reported as missing.
func (s *cartService) UpdateItem(ctx context.Context, owner models.CartOwner, itemID uuid.UUID, action models.CartAction) (*models.Cart, error) {

	if err := owner.Validate(); err != nil {
		return nil, errors.BadRequestError("Cart owner is required").WithError(err)
	}

	if _, err := models.ParseCartAction(string(action)); err != nil {
		return nil, errors.BadRequestError("Unknown cart action").WithError(err)
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetOwnedItem(ctx, owner, itemID)
		if err != nil {
			return err
		}

		switch {
		case action == models.CartActionIncrement:
			return s.repo.SetItemQuantity(ctx, item.ID, item.Quantity+1)
		case action == models.CartActionDecrement && item.Quantity > 1:
			return s.repo.SetItemQuantity(ctx, item.ID, item.Quantity-1)
		default:
			// remove, or decrement of the last unit
			return s.repo.DeleteItem(ctx, item.ID)
		}
	})
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Cart item not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return s.GetCart(ctx, owner)
}

// MergeCarts folds the anonymous cart of sessionKey into the customer's active cart in one transaction.
func (s *cartService) MergeCarts(ctx context.Context, customerID uuid.UUID, sessionKey string) error {

	if customerID == uuid.Nil || sessionKey == "" {
		return nil
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		anonymous, err := s.repo.GetActiveCart(ctx, models.SessionOwner(sessionKey))
		if err != nil {
			if stdErrors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}

		customerCart, err := s.repo.GetActiveCart(ctx, models.CustomerOwner(customerID))
		if err != nil {
			if stdErrors.Is(err, sql.ErrNoRows) {
				return s.repo.ReassignToCustomer(ctx, anonymous.ID, customerID)
			}
			return err
		}

		existing, err := s.repo.ListItems(ctx, customerCart.ID)
		if err != nil {
			return err
		}

		owned := make(map[uuid.UUID]bool, len(existing))
		for _, item := range existing {
			owned[item.ProductID] = true
		}

		incoming, err := s.repo.ListItems(ctx, anonymous.ID)
		if err != nil {
			return err
		}

		for _, item := range incoming {
			if owned[item.ProductID] {
				// the anonymous row goes away with its cart
				if _, err := s.repo.UpsertItem(ctx, customerCart.ID, item.ProductID, item.Quantity); err != nil {
					return err
				}
				continue
			}

			if err := s.repo.MoveItem(ctx, item.ID, customerCart.ID); err != nil {
				return err
			}
		}

		return s.repo.DeleteCart(ctx, anonymous.ID)
	})
	if err != nil {
		return errors.DatabaseError("Failed to merge carts").WithError(err)
	}

	return nil
}
