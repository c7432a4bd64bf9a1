package http

import (
	"errors"
	"net/http"

	"github.com/radtech/authd/internal/auth/service"
	"github.com/radtech/authd/pkg/httpx"
	"github.com/radtech/authd/pkg/slogx"
)

type ResetPasswordHandler struct {
	ResetService *service.ResetService
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.ResetService.ResetPassword(ctx, req.Email, req.OTP, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			// Same soft failure shape as send-reset-otp: 200 with
			// success false.
			httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{
				Success: false,
				Message: "Email, OTP and new password are required.",
			})
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, httpx.Envelope{
				Success: false,
				Message: "User not found.",
			})
		case errors.Is(err, service.ErrOTPExpired):
			httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
				Success: false,
				Message: "OTP has expired. Please request a new one.",
			})
		case errors.Is(err, service.ErrOTPInvalid):
			httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
				Success: false,
				Message: "Invalid OTP. Please check and try again.",
			})
		default:
			log.Error("password reset failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, httpx.Envelope{
				Success: false,
				Message: "Server error. Please try again later.",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{
		Success: true,
		Message: "Password has been reset successfully.",
	})
}
