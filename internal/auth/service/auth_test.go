package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radtech/authd/pkg/cryptox"
)

func TestRegister(t *testing.T) {
	s := newTestStore(t)
	mailer := newFakeMailer()
	svc := newAuthService(t, s, mailer)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Ana", "ana@x.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "ana@x.com", user.Email)
	require.False(t, user.Verified)
	require.NotEmpty(t, token)

	// Token carries the user id as subject.
	claims, err := newTestSigner(t).Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)

	// Password is stored hashed, never plain.
	stored, err := s.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", stored.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("hunter22", stored.PasswordHash))

	require.Equal(t, []string{"ana@x.com"}, mailer.welcomes)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t, newTestStore(t), newFakeMailer())
	ctx := context.Background()

	for _, tc := range []struct {
		name, userName, email, password string
	}{
		{"missing name", "", "ana@x.com", "hunter22"},
		{"missing email", "Ana", "", "hunter22"},
		{"missing password", "Ana", "ana@x.com", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tc.userName, tc.email, tc.password)
			require.ErrorIs(t, err, ErrMissingFields)
		})
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	svc := newAuthService(t, newTestStore(t), newFakeMailer())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ana", "ana@x.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Other", "ana@x.com", "different")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterWelcomeMailFailure(t *testing.T) {
	s := newTestStore(t)
	mailer := newFakeMailer()
	svc := newAuthService(t, s, mailer)
	ctx := context.Background()

	boom := errors.New("smtp down")
	mailer.failNext = boom

	_, _, err := svc.Register(ctx, "Ana", "ana@x.com", "hunter22")
	require.ErrorIs(t, err, boom)

	// The account still exists: registration is not rolled back on a
	// failed welcome email.
	_, err = s.Users().GetUserByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	s := newTestStore(t)
	mailer := newFakeMailer()
	svc := newAuthService(t, s, mailer)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "Ana", "ana@x.com", "hunter22")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "ana@x.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthService(t, newTestStore(t), newFakeMailer())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Ana", "ana@x.com", "hunter22")
	require.NoError(t, err)

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "hunter22")
		require.ErrorIs(t, err, ErrMissingFields)

		_, _, err = svc.Login(ctx, "ana@x.com", "")
		require.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@x.com", "hunter22")
		require.ErrorIs(t, err, ErrUnknownEmail)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ana@x.com", "wrong")
		require.ErrorIs(t, err, ErrWrongPassword)
	})
}

func TestGetUserByID(t *testing.T) {
	s := newTestStore(t)
	authSvc := newAuthService(t, s, newFakeMailer())
	userSvc := &UserService{Store: s}
	ctx := context.Background()

	registered, _, err := authSvc.Register(ctx, "Ana", "ana@x.com", "hunter22")
	require.NoError(t, err)

	user, err := userSvc.GetUserByID(ctx, registered.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", user.Name)

	_, err = userSvc.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}
