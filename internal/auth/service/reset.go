package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/radtech/authd/internal/auth/mail"
	"github.com/radtech/authd/internal/auth/store"
	"github.com/radtech/authd/pkg/cryptox"
	"github.com/radtech/authd/pkg/slogx"
)

// ResetOTPTTL is how long a password-reset code stays valid. Much shorter
// than the verification window: a reset code is a credential.
const ResetOTPTTL = 15 * time.Minute

// ResetService issues password-reset codes and applies password resets.
type ResetService struct {
	Store  store.Store
	Mailer mail.Mailer
}

// SendResetOTP generates a reset code for the account with the given email
// and mails it. The caller validates presence of the email field.
func (s *ResetService) SendResetOTP(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return err
	}

	code, err := cryptox.GenerateOTP()
	if err != nil {
		log.Error("failed to generate reset otp", slog.Any("error", err))
		return err
	}

	expiresAt := time.Now().Add(ResetOTPTTL)
	if err := s.Store.Users().SetResetOTP(ctx, user.ID, code, expiresAt); err != nil {
		log.Error("failed to store reset otp", slog.Any("error", err))
		return err
	}

	if err := s.Mailer.SendResetOTP(ctx, user.Email, user.Name, code); err != nil {
		log.Error("failed to send reset otp email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return fmt.Errorf("send reset email: %w", err)
	}

	log.Debug("reset otp issued",
		slog.String("user_id", user.ID),
		slog.Time("expires_at", expiresAt),
	)
	return nil
}

// ResetPassword consumes a reset code and replaces the password. Like
// VerifyEmail, the check-and-clear is transactional so a code cannot redeem
// twice, and expiry takes precedence over mismatch in the reported error.
func (s *ResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	log := slogx.FromContext(ctx)

	if email == "" || code == "" || newPassword == "" {
		return ErrMissingFields
	}

	var userID string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		userID = u.ID

		if !u.ResetOTPSet() {
			return ErrOTPInvalid
		}
		if time.Now().After(*u.ResetOTPExpiresAt) {
			return ErrOTPExpired
		}
		if *u.ResetOTP != code {
			return ErrOTPInvalid
		}

		hash, err := cryptox.HashPassword(newPassword)
		if err != nil {
			return err
		}

		// Clears the reset code pair in the same statement.
		return tx.Users().UpdatePasswordHash(ctx, u.ID, hash)
	})
	if err != nil {
		return err
	}

	log.Debug("password reset", slog.String("user_id", userID))
	return nil
}
