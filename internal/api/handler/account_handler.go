package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-system/internal/api/metrics"
	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register creates a buyer or seller account.
//
// @Summary      Register an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  map[string][]string
// @Failure      409   {object}  map[string][]string
// @Router       /accounts [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	view, err := h.accounts.Register(c.Request().Context(), ctxIdentity(c), toRegisterInput(req))
	if err != nil {
		return err
	}

	role := domain.RoleBuyer
	if view.IsSeller != nil && *view.IsSeller {
		role = domain.RoleSeller
	}
	metrics.AccountsRegisteredTotal.WithLabelValues(role).Inc()

	return c.JSON(http.StatusCreated, toAccountResponse(*view))
}

// List returns every account, masked for the caller.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}  accountResponse
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	views, err := h.accounts.List(c.Request().Context(), ctxIdentity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponses(views))
}

// Newest returns the most recently joined accounts.
//
// @Summary      Newest accounts
// @Tags         accounts
// @Produce      json
// @Param        num  path      int  true  "Number of accounts"
// @Success      200  {array}   accountResponse
// @Failure      400  {object}  map[string][]string
// @Router       /accounts/newest/{num} [get]
func (h *AccountHandler) Newest(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("num"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	views, err := h.accounts.Newest(c.Request().Context(), ctxIdentity(c), n)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponses(views))
}

// Update edits the caller's own account.
//
// @Summary      Update own account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string                true  "Account ID"
// @Param        body  body      updateAccountRequest  true  "Fields to change"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  DetailResponse
// @Failure      403   {object}  DetailResponse
// @Failure      404   {object}  DetailResponse
// @Router       /accounts/{id} [patch]
func (h *AccountHandler) Update(c echo.Context) error {
	var req updateAccountRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	view, err := h.accounts.Update(c.Request().Context(), ctxIdentity(c), toUpdateAccountInput(c.Param("id"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(*view))
}

// Manage lets an admin activate, deactivate or change the seller flag of any account.
//
// @Summary      Manage an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string                true  "Account ID"
// @Param        body  body      manageAccountRequest  true  "Flags to set"
// @Success      200   {object}  accountResponse
// @Failure      401   {object}  DetailResponse
// @Failure      403   {object}  DetailResponse
// @Failure      404   {object}  DetailResponse
// @Router       /accounts/{id}/management [patch]
func (h *AccountHandler) Manage(c echo.Context) error {
	var req manageAccountRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	view, err := h.accounts.Manage(c.Request().Context(), ctxIdentity(c), toManageAccountInput(c.Param("id"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(*view))
}
