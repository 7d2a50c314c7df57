package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-system/internal/core/policy"
)

// Authorize runs the endpoint-level policy check for (kind, action) before
// the request body is read, so 401 and 403 take precedence over 400. The
// object-level check stays with the service once the target is loaded.
func Authorize(kind policy.Kind, action policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := policy.Decide(policy.Request{
				Identity: IdentityFrom(c),
				Action:   action,
				Kind:     kind,
			})
			if !d.Allowed {
				return d.Err
			}
			return next(c)
		}
	}
}
