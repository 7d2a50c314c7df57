package ports

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// TokenRepository stores one bearer token per account.
type TokenRepository interface {
	// GetOrCreate atomically returns the account's existing token or stores
	// candidate as its token. Concurrent callers for the same account all
	// receive the same token.
	GetOrCreate(ctx context.Context, candidate *domain.Token) (*domain.Token, error)
	// FindByKey returns domain.ErrTokenNotFound for unknown keys.
	FindByKey(ctx context.Context, key string) (*domain.Token, error)
}
