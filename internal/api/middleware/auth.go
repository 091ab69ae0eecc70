package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

// Context keys set by Session.
const (
	ContextKeySessionID = "session_id"
	ContextKeyUser      = "user"
)

// Session validates the bearer session token, resolves the user signed in to
// that session and injects both into the echo context. The user is nil for an
// anonymous session.
func Session(sessions ports.SessionService, identity ports.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request())
			if err != nil {
				return err
			}

			sid, err := sessions.Parse(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			user, err := identity.CurrentUser(c.Request().Context(), sid)
			if err != nil {
				return err
			}

			c.Set(ContextKeySessionID, sid)
			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// bearerToken reads the token from the Authorization header. Browsers cannot
// set headers on WebSocket upgrades, so the access_token query parameter is
// accepted as a fallback.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if q := r.URL.Query().Get("access_token"); q != "" {
			return q, nil
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

// SessionID returns the session id injected by Session.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ContextKeySessionID).(string)
	return sid
}

// CurrentUser returns the signed-in user injected by Session, or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ContextKeyUser).(*domain.User)
	return user
}
