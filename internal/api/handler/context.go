package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-system/internal/api/middleware"
	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// ctxIdentity returns the caller resolved by the Authenticate middleware.
func ctxIdentity(c echo.Context) domain.Identity {
	return middleware.IdentityFrom(c)
}
