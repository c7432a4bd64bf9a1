package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/radtech/authd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newGuardedHandler(t *testing.T) (http.Handler, *jwtx.HS256) {
	t.Helper()

	h, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "authd")
	require.NoError(t, err)

	handler := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromCtx(r.Context())
			require.True(t, ok)
			WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: userID})
		}),
		SessionMiddleware(h, "token"),
	)
	return handler, h
}

func TestSessionMiddleware(t *testing.T) {
	t.Parallel()

	handler, signer := newGuardedHandler(t)

	t.Run("resolves user id from valid cookie", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewSessionClaims("user-42", "authd", time.Hour, time.Now().UTC()))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "user-42")
	})

	t.Run("rejects missing cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewSessionClaims("user-42", "authd", time.Hour, time.Now().UTC()))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token + "x"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		issued := time.Now().UTC().Add(-2 * time.Hour)
		token, err := signer.Sign(jwtx.NewSessionClaims("user-42", "authd", time.Hour, issued))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
