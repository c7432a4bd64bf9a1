package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestNewHS256(t *testing.T) {
	t.Parallel()

	t.Run("accepts 32 byte secret", func(t *testing.T) {
		_, err := NewHS256(testSecret, "authd")
		require.NoError(t, err)
	})

	t.Run("rejects short secret", func(t *testing.T) {
		_, err := NewHS256([]byte("too-short"), "authd")
		require.Error(t, err)
	})
}

func TestHS256RoundTrip(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret, "authd")
	require.NoError(t, err)

	token, err := h.Sign(NewSessionClaims("user-1", "authd", time.Hour, time.Now().UTC()))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "authd", claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestHS256RejectsBadTokens(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret, "authd")
	require.NoError(t, err)

	good, err := h.Sign(NewSessionClaims("user-1", "authd", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(good, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1][:len(parts[1])-2] + "xx." + parts[2]

		_, err := h.Verify(tampered)
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewHS256([]byte("fedcba9876543210fedcba9876543210"), "authd")
		require.NoError(t, err)

		_, err = other.Verify(good)
		require.ErrorIs(t, err, ErrInvalidSig)
	})

	t.Run("expired", func(t *testing.T) {
		issued := time.Now().UTC().Add(-2 * time.Hour)
		token, err := h.Sign(NewSessionClaims("user-1", "authd", time.Hour, issued))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		issued := time.Now().UTC().Add(time.Hour)
		token, err := h.Sign(NewSessionClaims("user-1", "authd", time.Hour, issued))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, ErrNotYetValid)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		other, err := NewHS256(testSecret, "someone-else")
		require.NoError(t, err)

		_, err = other.Verify(good)
		require.ErrorIs(t, err, ErrIssuer)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := h.Verify("not.a.token")
		require.ErrorIs(t, err, ErrMalformed)

		_, err = h.Verify("")
		require.ErrorIs(t, err, ErrMalformed)
	})
}
