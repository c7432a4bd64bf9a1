package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/radtech/authd/internal/auth/service"
	"github.com/radtech/authd/internal/auth/store"
	"github.com/radtech/authd/pkg/httpx"
	"github.com/radtech/authd/pkg/jwtx"
	"github.com/radtech/authd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	cookies      CookieOptions
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	AuthService         *service.AuthService
	VerificationService *service.VerificationService
	ResetService        *service.ResetService
	UserService         *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	cookies CookieOptions,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		cookies:      cookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerVerification()
	r.registerReset()
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /register - strict rate limit by IP (account creation)
	registerHandler := &RegisterHandler{AuthService: r.AuthService, Cookies: r.cookies}
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP (credential guessing)
	loginHandler := &LoginHandler{AuthService: r.AuthService, Cookies: r.cookies}
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - lenient, it only clears a cookie
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(LogoutHandler(r.cookies),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerVerification() {
	// POST /send-verify-otp - authenticated, moderate limit per user
	// (each request sends an email)
	sendHandler := &SendVerifyOTPHandler{VerificationService: r.VerificationService}
	r.Mux.Handle("POST /api/auth/send-verify-otp",
		httpx.Chain(sendHandler,
			httpx.SessionMiddleware(r.verifier, r.cookies.Name),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /verify-email - authenticated, strict limit per user
	// (OTP submission is guessable)
	verifyHandler := &VerifyEmailHandler{VerificationService: r.VerificationService}
	r.Mux.Handle("POST /api/auth/verify-email",
		httpx.Chain(verifyHandler,
			httpx.SessionMiddleware(r.verifier, r.cookies.Name),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerReset() {
	// POST /send-reset-otp - public, moderate limit by IP (sends an email)
	sendHandler := &SendResetOTPHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /api/auth/send-reset-otp",
		httpx.Chain(sendHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /reset-password - public, strict limit by IP (OTP submission)
	resetHandler := &ResetPasswordHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /api/auth/reset-password",
		httpx.Chain(resetHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	// GET /api/user/ - authenticated read, lenient limit per user
	dataHandler := &UserDataHandler{UserService: r.UserService}
	r.Mux.Handle("GET /api/user/{$}",
		httpx.Chain(dataHandler,
			httpx.SessionMiddleware(r.verifier, r.cookies.Name),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /api/user/check - reads the cookie itself so an anonymous
	// browser gets a 401 envelope instead of the guard's short-circuit
	checkHandler := &AuthCheckHandler{
		UserService: r.UserService,
		Verifier:    r.verifier,
		Cookies:     r.cookies,
	}
	r.Mux.Handle("GET /api/user/check",
		httpx.Chain(checkHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
