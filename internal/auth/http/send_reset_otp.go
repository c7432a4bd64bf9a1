package http

import (
	"errors"
	"net/http"

	"github.com/radtech/authd/internal/auth/service"
	"github.com/radtech/authd/pkg/httpx"
	"github.com/radtech/authd/pkg/slogx"
)

type SendResetOTPHandler struct {
	ResetService *service.ResetService
}

type sendResetOTPRequest struct {
	Email string `json:"email"`
}

func (h *SendResetOTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req sendResetOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Missing email reports failure inside a 200. Long-standing quirk of
	// this endpoint; clients key off the success flag, not the status.
	if req.Email == "" {
		httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{
			Success: false,
			Message: "Email is required.",
		})
		return
	}

	if err := h.ResetService.SendResetOTP(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, httpx.Envelope{
				Success: false,
				Message: "User not found.",
			})
		default:
			log.Error("failed to issue reset otp", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, httpx.Envelope{
				Success: false,
				Message: "Server error. Please try again later.",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, httpx.Envelope{
		Success: true,
		Message: "Reset OTP sent to your email.",
	})
}
