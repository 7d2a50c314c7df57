package ports

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// ProductRepository persists products.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	// Update writes description, price, quantity and is_active. SellerID is
	// never written after Insert.
	Update(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, opts ListOptions) ([]*domain.Product, int64, error)
}
