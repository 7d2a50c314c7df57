package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

const identityKey = "identity"

// Authorization header keywords, compared case-insensitively.
var keywords = []string{"token", "bearer"}

// Authenticate resolves the Authorization header into a domain.Identity and
// stores it on the context. A missing header, or one using another scheme,
// leaves the caller anonymous. A malformed or unknown token is rejected.
func Authenticate(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(identityKey, domain.Anonymous())

			parts := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization))
			if len(parts) == 0 || !isKeyword(parts[0]) {
				return next(c)
			}
			if len(parts) != 2 {
				return domain.ErrInvalidToken
			}

			id, err := resolver.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Authenticate, or an anonymous
// identity when the middleware did not run.
func IdentityFrom(c echo.Context) domain.Identity {
	id, ok := c.Get(identityKey).(domain.Identity)
	if !ok {
		return domain.Anonymous()
	}
	return id
}

func isKeyword(s string) bool {
	for _, k := range keywords {
		if strings.EqualFold(s, k) {
			return true
		}
	}
	return false
}
