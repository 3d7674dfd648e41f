package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	individualBody = `{
		"full_name": "Olena Koval",
		"email": "olena@example.com",
		"phone": "+38 (050) 123-45-67",
		"address": {"country_id": 1, "region_id": 12, "city": "Lviv"},
		"password": "Walnut-Harvest42",
		"password_confirm": "Walnut-Harvest42",
		"agreed_to_terms": true
	}`

	businessBody = `{
		"full_name": "Taras Melnyk",
		"email": "orders@horikh.ua",
		"phone": "+38 (067) 111-22-33",
		"address": {"country_id": 1, "region_id": 3, "city": "Kyiv"},
		"password": "Walnut-Harvest42",
		"password_confirm": "Walnut-Harvest42",
		"agreed_to_terms": true,
		"company_name": "Horikh LLC",
		"business_type": "LEGAL_ENTITY",
		"code": "41234567"
	}`

	loginBody = `{"email": "olena@example.com", "password": "Walnut-Harvest42"}`
)

type userHandlerMocks struct {
	users *mocks.UserService
	carts *mocks.CartService
}

func setupUserTest(t *testing.T) (userHandlerMocks, *handlers.UserHandler) {
	m := userHandlerMocks{users: mocks.NewUserService(t), carts: mocks.NewCartService(t)}
	return m, handlers.NewUserHandler(m.users, m.carts)
}

func registered(userID uuid.UUID) *models.RegisterResponse {
	return &models.RegisterResponse{
		Profile: &models.CustomerProfile{UserID: userID, Email: "olena@example.com", FullName: "Olena Koval", Kind: models.Individual{}},
		Token:   "jwt-token",
	}
}

func TestRegisterIndividual(t *testing.T) {

	t.Run("Success - Guest Cart Merged", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		userID := uuid.New()
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/auth/register/individual", strings.NewReader(individualBody), testSession, nil)
		rr := httptest.NewRecorder()

		m.users.On("RegisterIndividual", mock.Anything, mock.MatchedBy(func(req *models.RegisterIndividualRequest) bool {
			return req.Email == "olena@example.com" && req.Address.RegionID == 12
		})).Return(registered(userID), nil).Once()
		m.carts.On("MergeCarts", mock.Anything, userID, testSession).Return(nil).Once()

		// Act
		userHandler.RegisterIndividual().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "jwt-token", dataField(t, decodeResponse(t, rr), "token"))
	})

	t.Run("Success - No Session Skips Merge", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/register/individual", strings.NewReader(individualBody), nil)
		rr := httptest.NewRecorder()

		m.users.On("RegisterIndividual", mock.Anything, mock.AnythingOfType("*models.RegisterIndividualRequest")).Return(registered(uuid.New()), nil).Once()

		// Act
		userHandler.RegisterIndividual().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Terms Not Accepted", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest(t)
		body := strings.Replace(individualBody, `"agreed_to_terms": true`, `"agreed_to_terms": false`, 1)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/register/individual", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.RegisterIndividual().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeResponse(t, rr).Error.Fields, "agreed_to_terms")
	})

	t.Run("Failure - Single Word Name", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest(t)
		body := strings.Replace(individualBody, "Olena Koval", "OlenaKovalenko", 1)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/register/individual", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.RegisterIndividual().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeResponse(t, rr).Error.Fields["full_name"], "2 or 3 words")
	})

	t.Run("Failure - Email Taken", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/auth/register/individual", strings.NewReader(individualBody), testSession, nil)
		rr := httptest.NewRecorder()

		m.users.On("RegisterIndividual", mock.Anything, mock.AnythingOfType("*models.RegisterIndividualRequest")).
			Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()

		// Act
		userHandler.RegisterIndividual().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestRegisterBusiness(t *testing.T) {

	t.Run("Success - Legal Entity", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		userID := uuid.New()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/register/business", strings.NewReader(businessBody), nil)
		rr := httptest.NewRecorder()

		m.users.On("RegisterBusiness", mock.Anything, mock.MatchedBy(func(req *models.RegisterBusinessRequest) bool {
			return req.BusinessType == models.BusinessLegalEntity && req.CompanyName == "Horikh LLC"
		})).Return(registered(userID), nil).Once()

		// Act
		userHandler.RegisterBusiness().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Unknown Business Type", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest(t)
		body := strings.Replace(businessBody, "LEGAL_ENTITY", "NGO", 1)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/register/business", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.RegisterBusiness().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Field business_type must be one of: LEGAL_ENTITY FOP", decodeResponse(t, rr).Error.Fields["business_type"])
	})
}

func TestLogin(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "olena@example.com", IsActive: true}

	t.Run("Success - Guest Cart Merged", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/auth/login", strings.NewReader(loginBody), testSession, nil)
		rr := httptest.NewRecorder()

		m.users.On("Login", mock.Anything, &models.LoginRequest{Email: "olena@example.com", Password: "Walnut-Harvest42"}).
			Return(&models.LoginResponse{Success: true, Token: "jwt-token", ExpiresIn: 86400}, user, nil).Once()
		m.carts.On("MergeCarts", mock.Anything, user.ID, testSession).Return(nil).Once()

		// Act
		userHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "jwt-token", dataField(t, decodeResponse(t, rr), "token"))
	})

	t.Run("Success - Merge Failure Keeps Sign In", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/auth/login", strings.NewReader(loginBody), testSession, nil)
		rr := httptest.NewRecorder()

		m.users.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.LoginResponse{Success: true, Token: "jwt-token"}, user, nil).Once()
		m.carts.On("MergeCarts", mock.Anything, user.ID, testSession).Return(errors.New("deadlock detected")).Once()

		// Act
		userHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/auth/login", strings.NewReader(loginBody), testSession, nil)
		rr := httptest.NewRecorder()

		m.users.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.LoginResponse{Success: false, Message: "Invalid email or password", RemainingTries: 2}, nil, nil).Once()

		// Act
		userHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"success": false, "message": "Invalid email or password", "remaining_tries": 2}`, rr.Body.String())
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login", strings.NewReader(loginBody), nil)
		rr := httptest.NewRecorder()

		m.users.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.LoginResponse{Success: false, RetryAfter: 540}, nil, nil).Once()

		// Act
		userHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email": "olena", "password": "x"}`), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeResponse(t, rr).Error.Code)
	})

	t.Run("Failure - Bad JSON", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":`), nil)
		rr := httptest.NewRecorder()

		// Act
		userHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, decodeResponse(t, rr).Error.Code)
	})

	t.Run("Failure - Rate Limiter Down", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/login", strings.NewReader(loginBody), nil)
		rr := httptest.NewRecorder()

		m.users.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(nil, nil, appErrors.ThirdPartyError("Rate limit check failed")).Once()

		// Act
		userHandler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, decodeResponse(t, rr).Error.Code)
	})
}

func TestPasswordReset(t *testing.T) {

	t.Run("Success - Token Issued", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/password/forgot", strings.NewReader(`{"email": "olena@example.com"}`), nil)
		rr := httptest.NewRecorder()

		m.users.On("ForgotPassword", mock.Anything, &models.ForgotPasswordRequest{Email: "olena@example.com"}).
			Return(&models.ForgotPasswordResponse{ResetToken: "reset-token", ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()

		// Act
		userHandler.ForgotPassword().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "reset-token", dataField(t, decodeResponse(t, rr), "reset_token"))
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/password/forgot", strings.NewReader(`{"email": "nobody@example.com"}`), nil)
		rr := httptest.NewRecorder()

		m.users.On("ForgotPassword", mock.Anything, mock.AnythingOfType("*models.ForgotPasswordRequest")).
			Return(nil, appErrors.NotFoundError("No customer with this email")).Once()

		// Act
		userHandler.ForgotPassword().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Success - Password Reset", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		body := `{"token": "reset-token", "password": "Hazel-Grove77", "password_confirm": "Hazel-Grove77"}`
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/password/reset", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		m.users.On("ResetPassword", mock.Anything, &models.ResetPasswordRequest{Token: "reset-token", Password: "Hazel-Grove77", PasswordConfirm: "Hazel-Grove77"}).
			Return(nil).Once()

		// Act
		userHandler.ResetPassword().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("Failure - Stale Token", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest(t)
		body := `{"token": "used-token", "password": "Hazel-Grove77", "password_confirm": "Hazel-Grove77"}`
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/auth/password/reset", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		m.users.On("ResetPassword", mock.Anything, mock.AnythingOfType("*models.ResetPasswordRequest")).
			Return(appErrors.UnauthorizedError("Invalid or expired reset token")).Once()

		// Act
		userHandler.ResetPassword().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
