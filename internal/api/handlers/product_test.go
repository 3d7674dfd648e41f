package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupProductTest(t *testing.T) (*mocks.ProductService, *handlers.ProductHandler) {
	mockProductService := mocks.NewProductService(t)
	return mockProductService, handlers.NewProductHandler(mockProductService)
}

func TestGetProduct(t *testing.T) {
	id := uuid.New()
	params := map[string]string{"id": id.String()}

	t.Run("Success - Product Found", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+id.String(), nil, params)
		rr := httptest.NewRecorder()

		discounted := decimal.RequireFromString("49.00")
		mockProductService.On("GetProductByID", mock.Anything, id).
			Return(&models.Product{ID: id, Name: "Almonds", Price: decimal.RequireFromString("54.00"), DiscountedPrice: &discounted}, nil).Once()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Almonds", dataField(t, decodeResponse(t, rr), "name"))
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+id.String(), nil, params)
		rr := httptest.NewRecorder()

		mockProductService.On("GetProductByID", mock.Anything, id).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		_, productHandler := setupProductTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/almonds", nil, map[string]string{"id": "almonds"})
		rr := httptest.NewRecorder()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListProducts(t *testing.T) {

	t.Run("Success - Paginated", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?page=2&pageSize=5", nil, nil)
		rr := httptest.NewRecorder()

		products := []*models.Product{{ID: uuid.New(), Name: "Pecans"}, {ID: uuid.New(), Name: "Walnuts"}}
		mockProductService.On("ListProducts", mock.Anything, 2, 5).Return(products, 7, nil).Once()

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.EqualValues(t, 7, dataField(t, resp, "total"))
		assert.EqualValues(t, 5, dataField(t, resp, "pageSize"))
		assert.Len(t, dataField(t, resp, "data"), 2)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockProductService, productHandler := setupProductTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products", nil, nil)
		rr := httptest.NewRecorder()

		mockProductService.On("ListProducts", mock.Anything, 1, 10).Return(nil, 0, appErrors.DatabaseError("Failed to list products")).Once()

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
