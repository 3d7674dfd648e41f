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

type ProfileHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewProfileHandler(userService service.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService, validator: utils.NewValidator()}
}

// GetProfile godoc
//	@Summary		Customer profile
//	@Tags			Profile
//	@Produce		json
//	@Success		200	{object}	models.CustomerProfile	"Profile"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Profile not found"
//	@Security		BearerAuth
//	@Router			/profile [get]
func (h *ProfileHandler) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized profile access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		profile, err := h.userService.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Failed to get profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}

// UpdateContact godoc
//	@Summary		Update contact details
//	@Description	Name, email, phone and, for business customers, company name. Email and phone must stay unique.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			contact	body		models.UpdateContactRequest	true	"Contact details"
//	@Success		200		{object}	models.CustomerProfile		"Updated profile"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse		"Email or phone already in use"
//	@Security		BearerAuth
//	@Router			/profile/contact [put]
func (h *ProfileHandler) UpdateContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized contact update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateContactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid contact input")
			return
		}

		profile, err := h.userService.UpdateContact(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to update contact", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Contact details updated")
		response.Success(w, http.StatusOK, profile)
	}
}

// UpdateAddress godoc
//	@Summary		Update addresses
//	@Description	Contact address, plus registry code and business address for business customers.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			address	body		models.UpdateAddressRequest	true	"Addresses"
//	@Success		200		{object}	models.CustomerProfile		"Updated profile"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Security		BearerAuth
//	@Router			/profile/address [put]
func (h *ProfileHandler) UpdateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized address update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateAddressRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid address input")
			return
		}

		profile, err := h.userService.UpdateAddress(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to update address", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Address updated")
		response.Success(w, http.StatusOK, profile)
	}
}

// ChangePassword godoc
//	@Summary		Change the password
//	@Tags			Profile
//	@Accept			json
//	@Param			passwords	body	models.ChangePasswordRequest	true	"Old and new password"
//	@Success		204
//	@Failure		400	{object}	response.ErrorResponse	"Validation error or wrong old password"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/profile/password [put]
func (h *ProfileHandler) ChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized password change attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.ChangePasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid change password input")
			return
		}

		if err := h.userService.ChangePassword(r.Context(), claims.UserID, &req); err != nil {
			logger.Warn("Password change failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Password changed")
		response.NoContent(w)
	}
}
