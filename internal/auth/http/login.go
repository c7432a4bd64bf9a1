package http

import (
	"errors"
	"net/http"

	"github.com/radtech/authd/internal/auth/service"
	"github.com/radtech/authd/pkg/httpx"
	"github.com/radtech/authd/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
	Cookies     CookieOptions
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
				Success: false,
				Message: "Please provide email, and password.",
			})
		case errors.Is(err, service.ErrUnknownEmail):
			// Unknown account is a credential failure here, not a 404.
			httpx.WriteJSON(w, http.StatusUnauthorized, httpx.Envelope{
				Success: false,
				Message: "Invalid email.",
			})
		case errors.Is(err, service.ErrWrongPassword):
			httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
				Success: false,
				Message: "Invalid password.",
			})
		default:
			log.Error("login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, httpx.Envelope{
				Success: false,
				Message: "Server error. Please try again later.",
			})
		}
		return
	}

	h.Cookies.Set(w, token)
	httpx.WriteJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "User logged in successfully.",
		User:    publicUser(user),
	})
}
