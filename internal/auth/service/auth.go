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
	"github.com/radtech/authd/pkg/idx"
	"github.com/radtech/authd/pkg/jwtx"
	"github.com/radtech/authd/pkg/slogx"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUnknownEmail  = errors.New("invalid email")
	ErrWrongPassword = errors.New("invalid password")
)

// AuthService handles registration and credential login. Both mint a session
// token on success; the HTTP layer is responsible for setting it as a cookie.
type AuthService struct {
	Store    store.Store
	Mailer   mail.Mailer
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration
}

// Register creates a new user with a hashed password and sends the welcome
// email. The user is NOT rolled back when the welcome email fails; the error
// still propagates so the caller reports a server failure. Known trade-off,
// matching how the flow has always behaved.
func (s *AuthService) Register(
	ctx context.Context,
	name, email, password string,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	if name == "" || email == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Verified:     false,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("registration with taken email", slog.String("email", email))
			return domain.User{}, "", ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	token, err := s.signSession(user.ID)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return domain.User{}, "", err
	}

	if err := s.Mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
		log.Error("failed to send welcome email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return domain.User{}, "", fmt.Errorf("send welcome email: %w", err)
	}

	log.Debug("user registered", slog.String("user_id", user.ID))
	return user, token, nil
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password are reported as distinct errors, matching the messages the
// frontend has always shown.
func (s *AuthService) Login(
	ctx context.Context,
	email, password string,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login with unknown email", slog.String("email", email))
			return domain.User{}, "", ErrUnknownEmail
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login with wrong password", slog.String("user_id", user.ID))
		return domain.User{}, "", ErrWrongPassword
	}

	token, err := s.signSession(user.ID)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Debug("user logged in", slog.String("user_id", user.ID))
	return user, token, nil
}

func (s *AuthService) signSession(userID string) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return s.Signer.Sign(jwtx.NewSessionClaims(userID, s.Issuer, ttl, time.Now().UTC()))
}
