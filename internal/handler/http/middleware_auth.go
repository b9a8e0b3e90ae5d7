package http

import (
	"net/http"
	"slices"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/utils"
	"github.com/nitesh01487/natours/models"
)

// accessPolicy lists the roles allowed through [Handler.require].
type accessPolicy []models.Role

var (
	adminOnly      = accessPolicy{models.RoleAdmin}
	usersOnly      = accessPolicy{models.RoleUser}
	usersAndAdmins = accessPolicy{models.RoleUser, models.RoleAdmin}
	staffOnly      = accessPolicy{models.RoleAdmin, models.RoleLeadGuide}
	staffAndGuides = accessPolicy{models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide}
)

// authorize reports whether user passes policy.
func authorize(user models.User, policy accessPolicy) error {
	if slices.Contains(policy, user.Role) {
		return nil
	}
	return apperr.ErrForbidden
}

// sessionToken returns the bearer token of the request, falling back to the
// session cookie.
func sessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			return token
		}
	}
	if cookie, err := r.Cookie(jwtCookieName); err == nil && cookie.Value != loggedOutValue {
		return cookie.Value
	}
	return ""
}

// protect rejects requests without a valid session and stores the principal
// in the request context.
func (h *Handler) protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := sessionToken(r)
		if tokenString == "" {
			h.writeError(w, r, apperr.ErrNotLoggedIn)
			return
		}

		user, err := h.services.TokenService.Verify(r.Context(), tokenString)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.protect").Msg("token rejected")
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), &user)))
	})
}

// isLoggedIn resolves the principal when a valid session exists and never
// rejects the request. Rendered pages use it to show the account menu.
func (h *Handler) isLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(jwtCookieName)
		if err != nil || cookie.Value == loggedOutValue {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.services.TokenService.Verify(r.Context(), cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), &user)))
	})
}

// require must run after protect.
func (h *Handler) require(policy accessPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				h.writeError(w, r, apperr.ErrNotLoggedIn)
				return
			}
			if err := authorize(*user, policy); err != nil {
				h.writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// principal returns the user stored by protect. Handlers mounted behind
// protect may rely on it being present.
func principal(r *http.Request) (models.User, error) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return models.User{}, apperr.ErrNotLoggedIn
	}
	return *user, nil
}
