package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/api/middleware"
	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware and
// fails fast when it is missing. The user is nil for anonymous sessions.
func ctxSession(c echo.Context) (sessionID string, user *domain.User, err error) {
	sessionID = middleware.SessionID(c)
	if sessionID == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sessionID, middleware.CurrentUser(c), nil
}

// seesAllOrders reports whether user may read every order rather than only
// their own.
func seesAllOrders(user *domain.User) bool {
	return user != nil &&
		user.Role != domain.RoleCustomer &&
		domain.CheckPermission(user, domain.ActionRead, domain.ResourceOrder)
}

// ownerID is the userId recorded on orders placed by user.
func ownerID(user *domain.User) string {
	if user == nil {
		return domain.GuestUserID
	}
	return user.ID
}
