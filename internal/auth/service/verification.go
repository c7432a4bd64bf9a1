package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/radtech/authd/internal/auth/domain"
	"github.com/radtech/authd/internal/auth/mail"
	"github.com/radtech/authd/internal/auth/store"
	"github.com/radtech/authd/pkg/cryptox"
	"github.com/radtech/authd/pkg/slogx"
)

// VerifyOTPTTL is how long an email-verification code stays valid. The expiry
// is stored as an absolute timestamp computed at issuance.
const VerifyOTPTTL = 24 * time.Hour

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyVerified = errors.New("account already verified")
	ErrOTPInvalid      = errors.New("invalid otp")
	ErrOTPExpired      = errors.New("otp expired")
)

// VerificationService issues and consumes email-verification codes.
type VerificationService struct {
	Store  store.Store
	Mailer mail.Mailer
}

// SendVerifyOTP generates a fresh code for the user and emails it. Concurrent
// issuance is last-write-wins on the stored code; only the most recently
// issued code redeems.
func (s *VerificationService) SendVerifyOTP(ctx context.Context, userID string) error {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return err
	}

	if user.Verified {
		return ErrAlreadyVerified
	}

	code, err := cryptox.GenerateOTP()
	if err != nil {
		log.Error("failed to generate verification otp", slog.Any("error", err))
		return err
	}

	expiresAt := time.Now().Add(VerifyOTPTTL)
	if err := s.Store.Users().SetVerifyOTP(ctx, userID, code, expiresAt); err != nil {
		log.Error("failed to store verification otp", slog.Any("error", err))
		return err
	}

	if err := s.Mailer.SendVerifyOTP(ctx, user.Email, user.Name, code); err != nil {
		log.Error("failed to send verification otp email",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return fmt.Errorf("send verification email: %w", err)
	}

	log.Debug("verification otp issued",
		slog.String("user_id", userID),
		slog.Time("expires_at", expiresAt),
	)
	return nil
}

// VerifyEmail consumes a verification code. The check-and-clear runs inside a
// transaction so a code can only ever redeem once. Expired beats invalid when
// reporting the failure, matching the message contract.
func (s *VerificationService) VerifyEmail(
	ctx context.Context,
	userID, code string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if code == "" {
		return domain.User{}, ErrMissingFields
	}

	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if !u.VerifyOTPSet() {
			return ErrOTPInvalid
		}
		if time.Now().After(*u.VerifyOTPExpiresAt) {
			return ErrOTPExpired
		}
		if *u.VerifyOTP != code {
			return ErrOTPInvalid
		}

		if err := tx.Users().MarkVerified(ctx, userID); err != nil {
			return err
		}

		u.Verified = true
		u.VerifyOTP = nil
		u.VerifyOTPExpiresAt = nil
		user = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Debug("email verified", slog.String("user_id", userID))
	return user, nil
}
