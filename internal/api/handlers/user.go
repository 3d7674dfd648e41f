package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	service "github.com/aaravmahajanofficial/nuts-storefront/internal/services"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
	cartService service.CartService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService, cartService service.CartService) *UserHandler {
	return &UserHandler{userService: userService, cartService: cartService, validator: utils.NewValidator()}
}

// mergeGuestCart moves the guest session cart into the customer's cart.
// A failed merge leaves the session cart untouched for the next sign-in, so it never fails the request.
func (h *UserHandler) mergeGuestCart(ctx context.Context, logger *slog.Logger, customerID uuid.UUID) {
	sessionKey := middleware.SessionKeyFromContext(ctx)
	if sessionKey == "" {
		return
	}

	if err := h.cartService.MergeCarts(ctx, customerID, sessionKey); err != nil {
		logger.Error("Failed to merge guest cart", slog.Any("error", err))
		return
	}

	logger.Info("Guest cart merged")
}

// RegisterIndividual godoc
//	@Summary		Register an individual customer
//	@Description	Creates the user, contact address and profile, signs the customer in and merges the guest cart.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterIndividualRequest	true	"Registration details"
//	@Success		201		{object}	models.RegisterResponse				"Registered"
//	@Failure		400		{object}	response.ErrorResponse				"Validation error"
//	@Failure		409		{object}	response.ErrorResponse				"Email or phone already registered"
//	@Failure		500		{object}	response.ErrorResponse				"Internal server error"
//	@Router			/auth/register/individual [post]
func (h *UserHandler) RegisterIndividual() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterIndividualRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		resp, err := h.userService.RegisterIndividual(r.Context(), &req)
		if err != nil {
			logger.Warn("User registration failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("userId", resp.Profile.UserID.String()))
		h.mergeGuestCart(r.Context(), logger, resp.Profile.UserID)

		logger.Info("User registered")
		response.Success(w, http.StatusCreated, resp)
	}
}

// RegisterBusiness godoc
//	@Summary		Register a business customer
//	@Description	Registers a legal entity or FOP with its registry code and optional business address.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterBusinessRequest	true	"Registration details"
//	@Success		201		{object}	models.RegisterResponse			"Registered"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		409		{object}	response.ErrorResponse			"Email or phone already registered"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Router			/auth/register/business [post]
func (h *UserHandler) RegisterBusiness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterBusinessRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid business registration input")
			return
		}

		resp, err := h.userService.RegisterBusiness(r.Context(), &req)
		if err != nil {
			logger.Warn("Business registration failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("userId", resp.Profile.UserID.String()))
		h.mergeGuestCart(r.Context(), logger, resp.Profile.UserID)

		logger.Info("Business customer registered", slog.String("businessType", string(req.BusinessType)))
		response.Success(w, http.StatusCreated, resp)
	}
}

// Login godoc
//	@Summary		Sign in
//	@Description	Email and password sign-in for customers. Attempts are rate limited per email. The guest cart is merged on success.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Credentials"
//	@Success		200			{object}	models.LoginResponse	"Signed in"
//	@Failure		401			{object}	models.LoginResponse	"Invalid email or password"
//	@Failure		429			{object}	models.LoginResponse	"Too many attempts"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/auth/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, user, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			logger.Warn("Login rejected", slog.Int("status", status))
			response.WriteJson(w, status, resp)
			return
		}

		logger = logger.With(slog.String("userId", user.ID.String()))
		h.mergeGuestCart(r.Context(), logger, user.ID)

		logger.Info("User logged in")
		response.Success(w, http.StatusOK, resp)
	}
}

// ForgotPassword godoc
//	@Summary		Request a password reset
//	@Description	Issues a signed, expiring reset token bound to the current password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.ForgotPasswordRequest	true	"Account email"
//	@Success		200		{object}	models.ForgotPasswordResponse	"Reset token"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		404		{object}	response.ErrorResponse			"No customer with this email"
//	@Router			/auth/password/forgot [post]
func (h *UserHandler) ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ForgotPasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid forgot password input")
			return
		}

		resp, err := h.userService.ForgotPassword(r.Context(), &req)
		if err != nil {
			logger.Warn("Password reset request failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Password reset token issued")
		response.Success(w, http.StatusOK, resp)
	}
}

// ResetPassword godoc
//	@Summary		Reset the password
//	@Description	Sets a new password using a reset token. The token stops working once the password changes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	models.ResetPasswordRequest	true	"Token and new password"
//	@Success		204
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		401	{object}	response.ErrorResponse	"Invalid or expired token"
//	@Router			/auth/password/reset [post]
func (h *UserHandler) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ResetPasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid reset password input")
			return
		}

		if err := h.userService.ResetPassword(r.Context(), &req); err != nil {
			logger.Warn("Password reset failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Password reset")
		response.NoContent(w)
	}
}
