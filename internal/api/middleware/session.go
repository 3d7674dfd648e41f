package middleware

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/config"
	"github.com/google/uuid"
)

type sessionContextKey struct{}

// SessionMiddleware issues the anonymous session cookie that scopes guest carts.
type SessionMiddleware struct {
	cfg config.Session
}

func NewSessionMiddleware(cfg config.Session) *SessionMiddleware {
	return &SessionMiddleware{cfg: cfg}
}

func (m *SessionMiddleware) Handle(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		key := ""
		if cookie, err := r.Cookie(m.cfg.CookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				key = cookie.Value
			}
		}

		if key == "" {
			key = uuid.NewString()

			http.SetCookie(w, &http.Cookie{
				Name:     m.cfg.CookieName,
				Value:    key,
				Path:     "/",
				MaxAge:   int(m.cfg.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   m.cfg.SecureCookie(),
				SameSite: http.SameSiteLaxMode,
			})

			LoggerFromContext(r.Context()).Debug("Issued session cookie")
		}

		next.ServeHTTP(w, r.WithContext(WithSessionKey(r.Context(), key)))
	}
}

func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, key)
}

// SessionKeyFromContext returns the anonymous session key, or "" outside SessionMiddleware.
func SessionKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(sessionContextKey{}).(string)
	return key
}

