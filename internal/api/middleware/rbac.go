package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/dimermichel/quickbite/internal/core/domain"
)

// RequireRoles guards a single route or group on top of the global policy.
// The caller needs at least one of allowedRoles.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	roles := append([]domain.Role(nil), allowedRoles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := domain.IdentityFrom(c.Request().Context())
			if err := domain.RequireRole(identity, roles...); err != nil {
				return deny(err)
			}
			return next(c)
		}
	}
}
