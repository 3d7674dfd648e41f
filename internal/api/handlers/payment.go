package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	service "github.com/aaravmahajanofficial/nuts-storefront/internal/services"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils/response"
)

// Stripe caps event payloads well below this.
const maxWebhookBytes = 1 << 16

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListTransactions godoc
//	@Summary		Transaction history
//	@Description	Paginated payment transactions of the authenticated customer's orders. Requires authentication.
//	@Tags			Payments
//	@Produce		json
//	@Param			page		query		int								false	"Page number (default: 1)"					minimum(1)
//	@Param			pageSize	query		int								false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.TransactionListResponse	"Transactions"
//	@Failure		401			{object}	response.ErrorResponse			"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/transactions [get]
func (h *PaymentHandler) ListTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized transaction history attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		page, pageSize := utils.ParsePagination(r)

		transactions, err := h.paymentService.ListTransactions(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list transactions", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, transactions)
	}
}

// HandleStripeWebhook godoc
//	@Summary		Payment gateway webhook
//	@Description	Verifies the Stripe signature and settles the matching PROCESSING transaction.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string						true	"Stripe webhook signature"
//	@Success		200					{object}	models.GatewayWebhookResult	"Event handled or ignored"
//	@Failure		400					{object}	response.ErrorResponse		"Missing or invalid signature"
//	@Failure		404					{object}	response.ErrorResponse		"Unknown transaction"
//	@Failure		500					{object}	response.ErrorResponse		"Internal server error"
//	@Router			/payments/webhook [post]
func (h *PaymentHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))
			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Warn("Missing Stripe signature")
			response.Error(w, errors.BadRequestError("Stripe Signature is required"))
			return
		}

		result, err := h.paymentService.HandleGatewayWebhook(r.Context(), payload, signature)
		if err != nil {
			logger.Error("Failed to process payment webhook", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment webhook processed",
			slog.String("eventType", result.EventType),
			slog.Bool("ignored", result.Ignored))
		response.Success(w, http.StatusOK, result)
	}
}
