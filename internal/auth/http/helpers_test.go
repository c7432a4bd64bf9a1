package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/radtech/authd/internal/auth/service"
	"github.com/radtech/authd/internal/auth/store"
	"github.com/radtech/authd/internal/auth/store/drivers/sqlite"
	"github.com/radtech/authd/pkg/cryptox"
	"github.com/radtech/authd/pkg/jwtx"
	"github.com/radtech/authd/pkg/slogx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "authd-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// fakeMailer records sends so tests can fish out OTP codes.
type fakeMailer struct {
	mu       sync.Mutex
	verifies map[string]string
	resets   map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		verifies: make(map[string]string),
		resets:   make(map[string]string),
	}
}

func (m *fakeMailer) SendWelcome(context.Context, string, string) error { return nil }

func (m *fakeMailer) SendVerifyOTP(_ context.Context, toEmail, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifies[toEmail] = code
	return nil
}

func (m *fakeMailer) SendResetOTP(_ context.Context, toEmail, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[toEmail] = code
	return nil
}

func (m *fakeMailer) lastVerifyCode(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verifies[email]
}

func (m *fakeMailer) lastResetCode(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets[email]
}

type testEnv struct {
	server *httptest.Server
	client *http.Client
	mailer *fakeMailer
	store  store.Store
	signer *jwtx.HS256
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "authd.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "authd-test")
	require.NoError(t, err)

	mailer := newFakeMailer()
	logger := slogx.New(slogx.Config{Service: "authd-test", Level: "error", Format: "text"})

	router := NewRouter(signer, NewCookieOptions("dev"), "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:    st,
		Mailer:   mailer,
		Signer:   signer,
		Issuer:   "authd-test",
		TokenTTL: time.Hour,
	}
	router.VerificationService = &service.VerificationService{Store: st, Mailer: mailer}
	router.ResetService = &service.ResetService{Store: st, Mailer: mailer}
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		server: server,
		client: &http.Client{Jar: jar},
		mailer: mailer,
		store:  st,
		signer: signer,
	}
}

// envelope is the superset of every response body the API produces.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Verified *bool  `json:"isAccountVerified"`
	} `json:"user"`
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) (*http.Response, envelope) {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := e.client.Post(e.server.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp, decodeEnvelope(t, resp)
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, envelope) {
	t.Helper()

	resp, err := e.client.Get(e.server.URL + path)
	require.NoError(t, err)
	return resp, decodeEnvelope(t, resp)
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return env
}

func (e *testEnv) register(t *testing.T, name, email, password string) envelope {
	t.Helper()

	resp, env := e.postJSON(t, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)
	return env
}
