package httpx

import (
	"context"
	"net/http"

	"github.com/radtech/authd/pkg/jwtx"
	"github.com/radtech/authd/pkg/slogx"
)

// SessionMiddleware extracts the session token from the named HTTP-only
// cookie, verifies it and injects the resolved user id into the request
// context. Any failure short-circuits with 401 before the handler runs.
// Verification is stateless; nothing is cached across requests.
func SessionMiddleware(v jwtx.Verifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				WriteJSON(w, http.StatusUnauthorized, Envelope{
					Success: false,
					Message: "Unauthorized: Token not found. Please login again.",
				})
				return
			}

			claims, err := v.Verify(cookie.Value)
			if err != nil {
				log.Warn("session token rejected", "err", err)
				WriteJSON(w, http.StatusUnauthorized, Envelope{
					Success: false,
					Message: "Invalid or expired token. Please login again.",
				})
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithSession(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithSession(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
