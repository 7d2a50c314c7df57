package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

type stubAccountService struct {
	registerFn func(ctx context.Context, caller domain.Identity, in ports.RegisterAccountInput) (*ports.AccountView, error)
	listFn     func(ctx context.Context, caller domain.Identity) ([]ports.AccountView, error)
	newestFn   func(ctx context.Context, caller domain.Identity, n int) ([]ports.AccountView, error)
	updateFn   func(ctx context.Context, caller domain.Identity, in ports.UpdateAccountInput) (*ports.AccountView, error)
	manageFn   func(ctx context.Context, caller domain.Identity, in ports.ManageAccountInput) (*ports.AccountView, error)
}

func (s *stubAccountService) Register(ctx context.Context, caller domain.Identity, in ports.RegisterAccountInput) (*ports.AccountView, error) {
	return s.registerFn(ctx, caller, in)
}

func (s *stubAccountService) List(ctx context.Context, caller domain.Identity) ([]ports.AccountView, error) {
	return s.listFn(ctx, caller)
}

func (s *stubAccountService) Newest(ctx context.Context, caller domain.Identity, n int) ([]ports.AccountView, error) {
	return s.newestFn(ctx, caller, n)
}

func (s *stubAccountService) Update(ctx context.Context, caller domain.Identity, in ports.UpdateAccountInput) (*ports.AccountView, error) {
	return s.updateFn(ctx, caller, in)
}

func (s *stubAccountService) Manage(ctx context.Context, caller domain.Identity, in ports.ManageAccountInput) (*ports.AccountView, error) {
	return s.manageFn(ctx, caller, in)
}

type stubProductService struct {
	createFn func(ctx context.Context, caller domain.Identity, in ports.CreateProductInput) (*ports.ProductView, error)
	listFn   func(ctx context.Context, caller domain.Identity, in ports.ListProductsInput) (*ports.ProductPage, error)
	getFn    func(ctx context.Context, caller domain.Identity, id string) (*ports.ProductView, error)
	updateFn func(ctx context.Context, caller domain.Identity, in ports.UpdateProductInput) (*ports.ProductView, error)
}

func (s *stubProductService) Create(ctx context.Context, caller domain.Identity, in ports.CreateProductInput) (*ports.ProductView, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubProductService) List(ctx context.Context, caller domain.Identity, in ports.ListProductsInput) (*ports.ProductPage, error) {
	return s.listFn(ctx, caller, in)
}

func (s *stubProductService) Get(ctx context.Context, caller domain.Identity, id string) (*ports.ProductView, error) {
	return s.getFn(ctx, caller, id)
}

func (s *stubProductService) Update(ctx context.Context, caller domain.Identity, in ports.UpdateProductInput) (*ports.ProductView, error) {
	return s.updateFn(ctx, caller, in)
}

// newContext builds an echo context for method/target with an optional JSON body.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func boolPtr(b bool) *bool { return &b }
