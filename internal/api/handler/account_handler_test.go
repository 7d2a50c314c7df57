package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

func TestAccountHandler_Register_Success(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, caller domain.Identity, in ports.RegisterAccountInput) (*ports.AccountView, error) {
			if caller.IsAuthenticated() {
				t.Fatalf("caller should be anonymous")
			}
			if *in.Email != "ana@example.com" || !in.IsSeller {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AccountView{ID: "a-1", Email: *in.Email, FirstName: "Ana", LastName: "Lima", IsSeller: boolPtr(true)}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/accounts",
		`{"email":"ana@example.com","password":"secret","first_name":"ana","last_name":"lima","is_seller":true}`)

	if err := NewAccountHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "a-1" || resp["is_seller"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatalf("password must never be rendered")
	}
	if _, ok := resp["is_staff"]; ok {
		t.Fatalf("unreadable fields must be omitted: %+v", resp)
	}
}

func TestAccountHandler_Register_TypeMismatch(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, caller domain.Identity, in ports.RegisterAccountInput) (*ports.AccountView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/accounts", `{"email":42}`)

	err := NewAccountHandler(stub).Register(c)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := verr.Fields["email"]; len(got) != 1 || got[0] != "Not a valid string." {
		t.Fatalf("unexpected field errors: %+v", verr.Fields)
	}
}

func TestAccountHandler_Register_Conflict(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, caller domain.Identity, in ports.RegisterAccountInput) (*ports.AccountView, error) {
			return nil, domain.NewEmailConflict()
		},
	}
	c, _ := newContext(http.MethodPost, "/accounts", `{"email":"ana@example.com"}`)

	err := NewAccountHandler(stub).Register(c)

	var cerr *domain.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestAccountHandler_List(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(ctx context.Context, caller domain.Identity) ([]ports.AccountView, error) {
			return []ports.AccountView{{ID: "a-1"}, {ID: "a-2"}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/accounts", "")

	if err := NewAccountHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[1]["id"] != "a-2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAccountHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(ctx context.Context, caller domain.Identity) ([]ports.AccountView, error) {
			return nil, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/accounts", "")

	if err := NewAccountHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestAccountHandler_Newest(t *testing.T) {
	var gotN int
	stub := &stubAccountService{
		newestFn: func(ctx context.Context, caller domain.Identity, n int) ([]ports.AccountView, error) {
			gotN = n
			return []ports.AccountView{{ID: "a-9"}}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newContext(http.MethodGet, "/accounts/newest/3", "")
	c.SetParamNames("num")
	c.SetParamValues("3")
	if err := h.Newest(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotN != 3 || rec.Code != http.StatusOK {
		t.Fatalf("expected n=3 and 200, got n=%d code=%d", gotN, rec.Code)
	}

	c, _ = newContext(http.MethodGet, "/accounts/newest/abc", "")
	c.SetParamNames("num")
	c.SetParamValues("abc")
	err := h.Newest(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-integer num, got %v", err)
	}
}

func TestAccountHandler_Update_PassesIDAndIgnoresRoleFlags(t *testing.T) {
	stub := &stubAccountService{
		updateFn: func(ctx context.Context, caller domain.Identity, in ports.UpdateAccountInput) (*ports.AccountView, error) {
			if in.ID != "a-1" {
				t.Fatalf("unexpected id %q", in.ID)
			}
			if in.FirstName == nil || *in.FirstName != "Bia" {
				t.Fatalf("first_name not forwarded: %+v", in)
			}
			return &ports.AccountView{ID: "a-1", FirstName: "Bia"}, nil
		},
	}
	c, rec := newContext(http.MethodPatch, "/accounts/a-1", `{"first_name":"Bia","is_seller":true,"is_active":false}`)
	c.SetParamNames("id")
	c.SetParamValues("a-1")

	if err := NewAccountHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Manage(t *testing.T) {
	stub := &stubAccountService{
		manageFn: func(ctx context.Context, caller domain.Identity, in ports.ManageAccountInput) (*ports.AccountView, error) {
			if in.ID != "a-2" || in.IsActive == nil || *in.IsActive || in.IsSeller != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AccountView{ID: "a-2", IsActive: boolPtr(false)}, nil
		},
	}
	c, rec := newContext(http.MethodPatch, "/accounts/a-2/management", `{"is_active":false}`)
	c.SetParamNames("id")
	c.SetParamValues("a-2")

	if err := NewAccountHandler(stub).Manage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["is_active"] != false {
		t.Fatalf("expected is_active=false, got %+v", resp)
	}
}

func TestAccountHandler_Manage_Forbidden(t *testing.T) {
	stub := &stubAccountService{
		manageFn: func(ctx context.Context, caller domain.Identity, in ports.ManageAccountInput) (*ports.AccountView, error) {
			return nil, domain.ErrForbidden
		},
	}
	c, _ := newContext(http.MethodPatch, "/accounts/a-2/management", `{"is_seller":true}`)

	if err := NewAccountHandler(stub).Manage(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
