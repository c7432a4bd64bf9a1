package http

import (
	"errors"
	"net/http"

	"github.com/radtech/authd/internal/auth/service"
	"github.com/radtech/authd/pkg/httpx"
	"github.com/radtech/authd/pkg/slogx"
)

type SendVerifyOTPHandler struct {
	VerificationService *service.VerificationService
}

func (h *SendVerifyOTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	if err := h.VerificationService.SendVerifyOTP(ctx, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, httpx.Envelope{
				Success: false,
				Message: "User not found.",
			})
		case errors.Is(err, service.ErrAlreadyVerified):
			httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{
				Success: false,
				Message: "Account is already verified.",
			})
		default:
			log.Error("failed to issue verification otp", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, httpx.Envelope{
				Success: false,
				Message: "Server error. Please try again later.",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope{
		Success: true,
		Message: "Verification OTP sent to email.",
	})
}
