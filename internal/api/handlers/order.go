package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	service "github.com/aaravmahajanofficial/nuts-storefront/internal/services"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: utils.NewValidator()}
}

// Checkout godoc
//	@Summary		Place an order from the cart
//	@Description	Turns the customer's active cart into an order. The submitted lines and prices must match the current cart. Requires authentication.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CheckoutRequest	true	"Contact, delivery and payment details with the cart lines"
//	@Success		201		{object}	models.Order			"Order placed"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse	"Cart changed since the checkout page was rendered"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}
		logger = logger.With(slog.String("userID", claims.UserID.String()))

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		order, err := h.orderService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to place order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed successfully", slog.String("orderId", order.ID.String()))
		w.Header().Set("HX-Trigger", CartUpdatedTrigger)
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Retrieves an order placed by the authenticated customer. Requires authentication.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Successfully retrieved order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Order belongs to another customer"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order access attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("orderId", id.String()))

		order, err := h.orderService.GetOrderByID(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Error("Failed to get order", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order retrieved successfully")
		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//	@Summary		Order history
//	@Description	Paginated list of the authenticated customer's orders, newest first. Requires authentication.
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int							false	"Page number (default: 1)"					minimum(1)
//	@Param			pageSize	query		int							false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.OrderListResponse	"Orders"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order history attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		page, pageSize := utils.ParsePagination(r)

		orders, err := h.orderService.ListOrders(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Orders listed", slog.Int("total", orders.Total))
		response.Success(w, http.StatusOK, orders)
	}
}
