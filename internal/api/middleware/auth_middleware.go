package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/models"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {

	return &AuthMiddleware{jwtKey: jwtKey}

}

// ClaimsFromContext returns the claims stored by Authenticate or Optional.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)
	return claims, ok && claims != nil
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		claims, err := m.parseHeader(logger, authHeader)
		if err != nil {
			response.Error(w, err)
			return
		}

		next.ServeHTTP(w, m.authenticated(r, logger, claims))
	}
}

// Optional lets anonymous requests through; a token that is present must still be valid.
func (m *AuthMiddleware) Optional(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.parseHeader(logger, authHeader)
		if err != nil {
			response.Error(w, err)
			return
		}

		next.ServeHTTP(w, m.authenticated(r, logger, claims))
	}
}

func (m *AuthMiddleware) authenticated(r *http.Request, logger *slog.Logger, claims *models.Claims) *http.Request {

	ctx := WithClaims(r.Context(), claims)

	requestScopedLogger := logger.With(slog.String("userId", claims.UserID.String()))
	ctx = WithLogger(ctx, requestScopedLogger)

	requestScopedLogger.Info("User authenticated")

	return r.WithContext(ctx)
}

func (m *AuthMiddleware) parseHeader(logger *slog.Logger, authHeader string) (*models.Claims, error) {

	// Token is of format : "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")

	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		logger.Warn("Invalid authorization header format")
		return nil, errors.UnauthorizedError("Invalid authorization format")
	}

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
		return m.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
		return nil, errors.UnauthorizedError("Invalid or expired token")
	}

	if !token.Valid || claims.UserID == uuid.Nil {
		logger.Warn("Invalid token")
		return nil, errors.UnauthorizedError("Invalid token")
	}

	return claims, nil
}
