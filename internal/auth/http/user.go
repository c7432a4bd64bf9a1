package http

import (
	"errors"
	"net/http"

	"github.com/radtech/authd/internal/auth/service"
	"github.com/radtech/authd/pkg/httpx"
	"github.com/radtech/authd/pkg/jwtx"
	"github.com/radtech/authd/pkg/slogx"
)

// UserDataHandler serves the public projection of the authenticated user.
// It sits behind SessionMiddleware, which resolved the user id already.
type UserDataHandler struct {
	UserService *service.UserService
}

func (h *UserDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromCtx(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, httpx.Envelope{
			Success: false,
			Message: "Unauthorized: Token not found. Please login again.",
		})
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, httpx.Envelope{
				Success: false,
				Message: "User not found.",
			})
			return
		}
		log.Error("failed to load user data", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, httpx.Envelope{
			Success: false,
			Message: "Server error while retrieving user data.",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse{
		Success: true,
		User:    publicUser(user),
	})
}

// AuthCheckHandler answers "is this browser logged in?". It reads the cookie
// itself instead of sitting behind the session guard so it can answer with a
// clean envelope either way.
type AuthCheckHandler struct {
	UserService *service.UserService
	Verifier    jwtx.Verifier
	Cookies     CookieOptions
}

func (h *AuthCheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cookie, err := r.Cookie(h.Cookies.Name)
	if err != nil || cookie.Value == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, httpx.Envelope{
			Success: false,
			Message: "Unauthorized: Token not found. Please login again.",
		})
		return
	}

	claims, err := h.Verifier.Verify(cookie.Value)
	if err != nil {
		httpx.WriteJSON(w, http.StatusUnauthorized, httpx.Envelope{
			Success: false,
			Message: "Invalid or expired token. Please login again.",
		})
		return
	}

	user, err := h.UserService.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, httpx.Envelope{
				Success: false,
				Message: "User not found.",
			})
			return
		}
		log.Error("failed to load user data", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, httpx.Envelope{
			Success: false,
			Message: "Server error while retrieving user data.",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse{
		Success: true,
		User:    publicUser(user),
	})
}
