package http

import (
	"net/http"
	"time"

	"github.com/radtech/authd/pkg/jwtx"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "token"

// CookieOptions fixes the attributes of the session cookie. Secure and the
// cross-site policy toggle together with the deployment environment: behind
// TLS the frontend lives on another origin, so cross-site delivery needs
// SameSite=None, which browsers only honour with Secure set.
type CookieOptions struct {
	Name     string
	MaxAge   time.Duration
	Secure   bool
	SameSite http.SameSite
}

// NewCookieOptions derives cookie attributes from the environment name.
func NewCookieOptions(env string) CookieOptions {
	opts := CookieOptions{
		Name:     SessionCookieName,
		MaxAge:   jwtx.DefaultSessionTTL,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
	if env == "production" || env == "prod" {
		opts.Secure = true
		opts.SameSite = http.SameSiteNoneMode
	}
	return opts
}

// Set writes the session cookie carrying the token.
func (o CookieOptions) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(o.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	})
}

// Clear expires the session cookie. The attributes must match the ones the
// cookie was set with or browsers keep the old copy around.
func (o CookieOptions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	})
}
