package ports

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// ListOptions pages a repository listing. Limit <= 0 means no limit.
type ListOptions struct {
	Offset      int
	Limit       int
	NewestFirst bool
}

// AccountRepository persists accounts. Email uniqueness is enforced by the
// store itself: Insert and Update return domain.ErrEmailTaken on violation.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	// List returns a page of accounts ordered by date_joined and the total count.
	List(ctx context.Context, opts ListOptions) ([]*domain.Account, int64, error)
}
