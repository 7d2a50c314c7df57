package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/api/handler"
	"github.com/99minutos/marketplace-system/internal/api/metrics"
	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// Messages rendered in the detail envelope.
const (
	MsgNotAuthenticated   = "Authentication credentials were not provided."
	MsgInvalidToken       = "Invalid token."
	MsgInactiveAccount    = "User inactive or deleted."
	MsgInvalidCredentials = "Invalid email or password."
	MsgForbidden          = "You do not have permission to perform this action."
	MsgNotFound           = "Not found."
	MsgServerError        = "A server error occurred."
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders field errors as {"<field>": ["<message>"]}.
//   - Maps known domain errors to their HTTP status and a {"detail": ...} body.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			_ = c.JSON(http.StatusBadRequest, verr.Fields)
			return
		}
		var cerr *domain.ConflictError
		if errors.As(err, &cerr) {
			_ = c.JSON(http.StatusConflict, cerr.Fields)
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Token")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.DetailResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
		return http.StatusUnauthorized, MsgNotAuthenticated
	case errors.Is(err, domain.ErrInvalidToken):
		metrics.AccessDeniedTotal.WithLabelValues("invalid_token").Inc()
		return http.StatusUnauthorized, MsgInvalidToken
	case errors.Is(err, domain.ErrInactiveAccount):
		metrics.AccessDeniedTotal.WithLabelValues("inactive_account").Inc()
		return http.StatusUnauthorized, MsgInactiveAccount
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidCredentials
	case errors.Is(err, domain.ErrForbidden):
		metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
		return http.StatusForbidden, MsgForbidden
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, MsgNotFound
	}

	// Echo's own errors (bind failures, unknown routes, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, MsgNotFound
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, MsgServerError
}
