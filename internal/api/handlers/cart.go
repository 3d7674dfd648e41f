package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	service "github.com/aaravmahajanofficial/nuts-storefront/internal/services"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CartUpdatedTrigger is sent in HX-Trigger after every cart mutation so widgets refresh.
const CartUpdatedTrigger = "cartUpdated"

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: utils.NewValidator()}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds the product to the active cart of the customer or guest session; quantity defaults to 1.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			productId	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Param			item		body		models.AddItemRequest	false	"Quantity to add"
//	@Success		200			{object}	models.Cart				"Cart after the change"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product id or quantity"
//	@Failure		404			{object}	response.ErrorResponse	"Product not found"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/items/{productId} [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		owner, err := cartOwner(r)
		if err != nil {
			logger.Warn("Cart request without owner")
			response.Error(w, err)
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("productId", productID.String()))

		var req models.AddItemRequest
		if !utils.ParseOptionalAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}

		cart, err := h.cartService.AddItem(r.Context(), owner, productID, quantity)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int("quantity", quantity))
		w.Header().Set("HX-Trigger", CartUpdatedTrigger)
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateItem godoc
//	@Summary		Change a cart line
//	@Description	Applies plus, minus or remove to a line of the caller's active cart; minus on a single unit removes the line.
//	@Tags			Cart
//	@Produce		json
//	@Param			itemId	path		string					true	"Cart item ID (UUID)"	Format(uuid)
//	@Param			action	path		string					true	"Action"	Enums(plus, minus, remove)
//	@Success		200		{object}	models.Cart				"Cart after the change"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid item id or unknown action"
//	@Failure		404		{object}	response.ErrorResponse	"Item not in the caller's cart"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/items/{itemId}/{action} [post]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		owner, err := cartOwner(r)
		if err != nil {
			logger.Warn("Cart request without owner")
			response.Error(w, err)
			return
		}

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			logger.Warn("Invalid cart item id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		action, err := models.ParseCartAction(r.PathValue("action"))
		if err != nil {
			logger.Warn("Unknown cart action", slog.String("action", r.PathValue("action")))
			response.Error(w, errors.BadRequestError(fmt.Sprintf("Unknown action %q", r.PathValue("action"))))
			return
		}

		logger = logger.With(slog.String("itemId", itemID.String()), slog.String("action", string(action)))

		cart, err := h.cartService.UpdateItem(r.Context(), owner, itemID, action)
		if err != nil {
			logger.Error("Failed to update cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item updated")
		w.Header().Set("HX-Trigger", CartUpdatedTrigger)
		response.Success(w, http.StatusOK, cart)
	}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Returns the active cart with per-line and overall totals; an absent cart is returned empty.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart				"Current cart"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		owner, err := cartOwner(r)
		if err != nil {
			logger.Warn("Cart request without owner")
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), owner)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// Counter godoc
//	@Summary		Cart item counter
//	@Description	Plain-text total quantity of the active cart, used by the header badge.
//	@Tags			Cart
//	@Produce		plain
//	@Success		200	{string}	string					"Item count"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/counter [get]
func (h *CartHandler) Counter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		owner, err := cartOwner(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), owner)
		if err != nil {
			logger.Error("Failed to count cart items", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Text(w, http.StatusOK, strconv.Itoa(cart.ItemCount))
	}
}
