package ports

import (
	"context"
	"time"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// RegisterAccountInput is the payload of POST /accounts.
type RegisterAccountInput struct {
	Email     *string `json:"email"      validate:"required,notblank,email,max=150"`
	Password  *string `json:"password"   validate:"required,notblank,max=128"`
	FirstName *string `json:"first_name" validate:"required,notblank,max=50"`
	LastName  *string `json:"last_name"  validate:"required,notblank,max=50"`
	IsSeller  bool    `json:"is_seller"`
}

// UpdateAccountInput is a partial self-update. Nil fields are left untouched.
type UpdateAccountInput struct {
	ID        string  `json:"-"`
	Email     *string `json:"email"      validate:"omitnil,notblank,email,max=150"`
	Password  *string `json:"password"   validate:"omitnil,notblank,max=128"`
	FirstName *string `json:"first_name" validate:"omitnil,notblank,max=50"`
	LastName  *string `json:"last_name"  validate:"omitnil,notblank,max=50"`
}

// ManageAccountInput is the admin-only management payload.
type ManageAccountInput struct {
	ID       string `json:"-"`
	IsActive *bool  `json:"is_active"`
	IsSeller *bool  `json:"is_seller"`
}

// AccountView is an account filtered by the caller's read mask. Fields the
// caller may not read stay nil or empty.
type AccountView struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	IsSeller    *bool
	DateJoined  *time.Time
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

// AccountService defines the account use cases exposed over HTTP.
type AccountService interface {
	Register(ctx context.Context, caller domain.Identity, in RegisterAccountInput) (*AccountView, error)
	List(ctx context.Context, caller domain.Identity) ([]AccountView, error)
	// Newest returns the n most recently joined accounts.
	Newest(ctx context.Context, caller domain.Identity, n int) ([]AccountView, error)
	Update(ctx context.Context, caller domain.Identity, in UpdateAccountInput) (*AccountView, error)
	Manage(ctx context.Context, caller domain.Identity, in ManageAccountInput) (*AccountView, error)
}
