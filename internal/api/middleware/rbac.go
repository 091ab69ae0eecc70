package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/core/domain"
)

// RequirePermission rejects the request unless the session user may perform
// action on resource. Anonymous sessions get ErrUnauthenticated, signed-in
// users without the grant get ErrForbidden.
func RequirePermission(action domain.Action, resource domain.Resource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domain.ErrUnauthenticated
			}
			if !domain.CheckPermission(user, action, resource) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
