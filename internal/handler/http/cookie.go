package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/nitesh01487/natours/models"
)

const (
	jwtCookieName = "jwt"

	// loggedOutValue replaces the session cookie on logout.
	loggedOutValue = "loggedout"
	logoutLifetime = 10 * time.Second
)

// secureRequest reports whether the cookie must be marked secure: always in
// production, otherwise when TLS is terminated here or by a proxy.
func (h *Handler) secureRequest(r *http.Request) bool {
	if h.app.IsProduction() || r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, r *http.Request, token models.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  time.Now().Add(h.app.CookieDuration),
		HttpOnly: true,
		Secure:   h.secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearTokenCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookieName,
		Value:    loggedOutValue,
		Path:     "/",
		Expires:  time.Now().Add(logoutLifetime),
		HttpOnly: true,
		Secure:   h.secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// sendToken sets the session cookie and answers with the token and the user.
func (h *Handler) sendToken(w http.ResponseWriter, r *http.Request, status int, res models.AuthResult) {
	h.setTokenCookie(w, r, res.Token)
	h.write(w, r, status, models.Envelope{
		Status: models.StatusSuccess,
		Token:  res.Token.SignedString,
		Data:   map[string]any{"user": res.User},
	})
}
