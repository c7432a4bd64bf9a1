package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserDataEndpoint(t *testing.T) {
	env := newTestEnv(t)
	reg := env.register(t, "Ana", "ana@x.com", "hunter22")

	resp, body := env.get(t, "/api/user/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body.Success)
	require.NotNil(t, body.User)
	require.Equal(t, reg.User.ID, body.User.ID)
	require.Equal(t, "Ana", body.User.Name)
	require.NotNil(t, body.User.Verified)
	require.False(t, *body.User.Verified)
}

func TestUserDataRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/user/")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Unauthorized: Token not found. Please login again.", body.Message)
}

func TestAuthCheckEndpoint(t *testing.T) {
	env := newTestEnv(t)

	t.Run("anonymous", func(t *testing.T) {
		resp, body := env.get(t, "/api/user/check")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.False(t, body.Success)
	})

	reg := env.register(t, "Ana", "ana@x.com", "hunter22")

	t.Run("logged in", func(t *testing.T) {
		resp, body := env.get(t, "/api/user/check")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, body.Success)
		require.Equal(t, reg.User.ID, body.User.ID)
	})

	t.Run("tampered token", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/user/check", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-token"})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body := decodeEnvelope(t, resp)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Invalid or expired token. Please login again.", body.Message)
	})
}
