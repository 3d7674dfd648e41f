package service

import (
	"context"
	"database/sql"
	stdErrors "errors"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/google/uuid"
)

type OrderService interface {
	Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, customerID, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) (*models.OrderListResponse, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	profileRepo repository.ProfileRepository
	locations   LocationService
	transactor  repository.Transactor
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, profileRepo repository.ProfileRepository, locations LocationService, transactor repository.Transactor) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		profileRepo: profileRepo,
		locations:   locations,
		transactor:  transactor,
	}
}

// Checkout turns the customer's cart into a NEW order. Item prices are taken from the cart,
// the submitted lines only confirm what the customer saw.
func (s *orderService) Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {

	cart, err := s.cartRepo.GetCartWithTotals(ctx, models.CustomerOwner(customerID))
	if err != nil && !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if cart == nil || len(cart.Items) == 0 {
		return nil, errors.BadRequestError("Your cart is empty")
	}

	if err := matchCartLines(cart, req.Items); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetProfile(ctx, customerID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Customer profile not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch customer profile").WithError(err)
	}

	order := &models.Order{
		ID:             uuid.New(),
		CustomerID:     &customerID,
		Email:          req.Email,
		Phone:          req.Phone,
		Status:         models.OrderStatusNew,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: req.DeliveryMethod,
	}

	if err := applyContact(order, profile, req); err != nil {
		return nil, err
	}

	if err := s.applyDelivery(ctx, order, req); err != nil {
		return nil, err
	}

	order.Items = make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
		})
	}
	order.Total = order.ComputeTotal()

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
			return err
		}

		return s.cartRepo.DeleteCart(ctx, cart.ID)
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	return order, nil
}

// matchCartLines requires the submitted lines to mirror the cart: same products, quantities and prices.
func matchCartLines(cart *models.Cart, lines []models.CheckoutItem) error {

	changed := errors.ConflictError("Your cart has changed, please review your order")

	if len(lines) != len(cart.Items) {
		return changed.WithDetail("number of order lines differs from the cart")
	}

	pending := make(map[uuid.UUID]models.CartItem, len(cart.Items))
	for _, item := range cart.Items {
		pending[item.ProductID] = item
	}

	for _, line := range lines {
		if line.Quantity < 1 {
			return errors.AddValidationError("quantity", "must be at least 1")
		}

		item, ok := pending[line.ProductID]
		if !ok {
			return changed.WithDetail("product " + line.ProductID.String() + " is not in the cart")
		}

		if item.Quantity != line.Quantity || !item.UnitPrice.Equal(line.Price) {
			return changed.WithDetail("product " + line.ProductID.String() + " has a different quantity or price")
		}

		delete(pending, line.ProductID)
	}

	return nil
}

func applyContact(order *models.Order, profile *models.CustomerProfile, req *models.CheckoutRequest) error {

	if profile.IsBusiness() {
		order.CompanyName = utils.SanitizeText(req.CompanyName)
		order.ContactPerson = utils.SanitizeText(req.ContactPerson)

		if order.CompanyName == "" {
			return errors.AddValidationError("company_name", "required for business customers")
		}
		if order.ContactPerson == "" {
			return errors.AddValidationError("contact_person", "required for business customers")
		}

		return nil
	}

	order.FullName = utils.SanitizeText(req.FullName)
	if order.FullName == "" {
		return errors.AddValidationError("full_name", "required")
	}

	return nil
}

func (s *orderService) applyDelivery(ctx context.Context, order *models.Order, req *models.CheckoutRequest) error {

	switch req.DeliveryMethod {
	case models.DeliveryNovaPoshta:
		if req.DeliveryCountryID == nil {
			return errors.AddValidationError("delivery_country_id", "required for Nova Poshta delivery")
		}
		if req.DeliveryRegionID == nil {
			return errors.AddValidationError("delivery_region_id", "required for Nova Poshta delivery")
		}

		if _, err := s.locations.ValidateRegion(ctx, *req.DeliveryCountryID, *req.DeliveryRegionID); err != nil {
			return err
		}

		order.DeliveryCountryID = req.DeliveryCountryID
		order.DeliveryRegionID = req.DeliveryRegionID
		// Nova Poshta delivers to a branch, the street address is dropped
		order.DeliveryAddress = ""

	case models.DeliveryCourier:
		order.DeliveryAddress = utils.SanitizeText(req.DeliveryAddress)
		if order.DeliveryAddress == "" {
			return errors.AddValidationError("delivery_address", "required for courier delivery")
		}

	case models.DeliveryPickup:
		// nothing to deliver to

	default:
		return errors.AddValidationError("delivery_method", "unknown delivery method")
	}

	return nil
}

func (s *orderService) GetOrderByID(ctx context.Context, customerID, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.CustomerID == nil || *order.CustomerID != customerID {
		return nil, errors.ForbiddenError("You do not have access to this order")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) (*models.OrderListResponse, error) {

	page, size = models.NormalizePage(page, size)

	orders, total, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.OrderListResponse{
		Orders: orders,
		Total:  total,
		Page:   page,
		Size:   size,
	}, nil
}
