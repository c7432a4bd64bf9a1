package http

import (
	"net/http"

	"github.com/radtech/authd/pkg/httpx"
)

// LogoutHandler clears the session cookie. Idempotent: logging out without a
// session still reports success.
func LogoutHandler(cookies CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookies.Clear(w)
		httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{
			Success: true,
			Message: "Logged out successfully.",
		})
	}
}
