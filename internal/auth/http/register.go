package http

import (
	"errors"
	"net/http"

	"github.com/radtech/authd/internal/auth/service"
	"github.com/radtech/authd/pkg/httpx"
	"github.com/radtech/authd/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
	Cookies     CookieOptions
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
				Success: false,
				Message: "Please provide name, email, and password.",
			})
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusConflict, httpx.Envelope{
				Success: false,
				Message: "User with this email already exists.",
			})
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, httpx.Envelope{
				Success: false,
				Message: "Server error. Please try again later.",
			})
		}
		return
	}

	h.Cookies.Set(w, token)
	httpx.WriteJSON(w, http.StatusCreated, userResponse{
		Success: true,
		Message: "User registered successfully.",
		User:    registeredUser(user),
	})
}
