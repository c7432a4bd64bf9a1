package http

import (
	"errors"
	"net/http"

	"github.com/radtech/authd/internal/auth/service"
	"github.com/radtech/authd/pkg/httpx"
	"github.com/radtech/authd/pkg/slogx"
)

type VerifyEmailHandler struct {
	VerificationService *service.VerificationService
}

type verifyEmailRequest struct {
	OTP string `json:"otp"`
}

func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromCtx(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
			Success: false,
			Message: "User ID is required.",
		})
		return
	}

	var req verifyEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.VerificationService.VerifyEmail(ctx, userID, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
				Success: false,
				Message: "OTP is required.",
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
				Message: "Invalid OTP.",
			})
		default:
			log.Error("email verification failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, httpx.Envelope{
				Success: false,
				Message: "Server error. Please try again later.",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "Email verified successfully.",
		User:    publicUser(user),
	})
}
