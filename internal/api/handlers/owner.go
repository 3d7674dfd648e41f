package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
)

// cartOwner resolves the cart scope of the request: the signed-in customer, else the guest session.
func cartOwner(r *http.Request) (models.CartOwner, error) {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return models.CustomerOwner(claims.UserID), nil
	}

	if key := middleware.SessionKeyFromContext(r.Context()); key != "" {
		return models.SessionOwner(key), nil
	}

	return models.CartOwner{}, errors.BadRequestError("Session is required")
}
