package ports

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// LoginInput carries the credentials posted to /login. Pointers distinguish
// a missing field from an empty one.
type LoginInput struct {
	Email    *string `json:"email"    validate:"required,notblank,email"`
	Password *string `json:"password" validate:"required,notblank"`
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token     string
	AccountID string
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

// IdentityResolver turns a presented bearer token into the caller's identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, key string) (domain.Identity, error)
}
